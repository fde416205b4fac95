package message

import (
	"io"
	"strings"

	"github.com/go-httpcore/httpcore/pkg/errors"
	"github.com/go-httpcore/httpcore/pkg/header"
	"github.com/go-httpcore/httpcore/pkg/uri"
)

// Attributes is an immutable, string-keyed side channel attached to a
// message; it never appears on the wire. Builder operations return a new
// Attributes value holding a copy of every entry; the receiver is unchanged.
type Attributes map[string]any

// With returns a copy of a with key set to value.
func (a Attributes) With(key string, value any) Attributes {
	out := make(Attributes, len(a)+1)
	for k, v := range a {
		out[k] = v
	}
	out[key] = value
	return out
}

// WithAll merges additions into a copy of a.
func (a Attributes) WithAll(additions Attributes) Attributes {
	out := make(Attributes, len(a)+len(additions))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range additions {
		out[k] = v
	}
	return out
}

// Without returns a copy of a with the named keys removed.
func (a Attributes) Without(keys ...string) Attributes {
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		drop[k] = true
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		if !drop[k] {
			out[k] = v
		}
	}
	return out
}

// Get returns the raw value for key.
func (a Attributes) Get(key string) (any, bool) {
	v, ok := a[key]
	return v, ok
}

// Well-known attribute keys the wire engine attaches.
const (
	AttrSocket          = "scamper.client.message.socket"
	AttrCorrelate       = "scamper.client.message.correlate"
	AttrAbsoluteTarget  = "scamper.client.message.absoluteTarget"
	AttrClient          = "scamper.client.message.client"
	AttrResponseRequest = "scamper.client.response.request"
)

// StartLine is the shared shape of a request-line or status-line: just the
// version, since method/target and status live on the concrete message
// types (keeps RequestLine/StatusLine from needing a common interface
// with divergent fields).
type StartLine struct {
	Version HttpVersion
}

// HttpRequest is (RequestLine{method, target, version}, headers, entity,
// attributes). Target is the URI-reference form the wire engine rewrites
// to origin-form before transmission; Path/Query are derived from it.
type HttpRequest struct {
	Method     RequestMethod
	Target     uri.Uri
	Version    HttpVersion
	Headers    header.List
	Body       Entity
	Attributes Attributes
}

// NewRequest builds a request with the given method and absolute (or
// already origin-form) target, HTTP/1.1, no headers, and an empty body.
func NewRequest(method RequestMethod, target uri.Uri) HttpRequest {
	return HttpRequest{
		Method:  method,
		Target:  target,
		Version: Version11,
		Body:    EmptyEntity,
	}
}

// Path returns the normalized request path: target.Path, or "/" (or "*"
// for OPTIONS) when absent.
func (r HttpRequest) Path() string {
	if r.Target.Path != "" {
		return r.Target.Path
	}
	if r.Method.Name == MethodOptions.Name {
		return "*"
	}
	return "/"
}

// Query lazily parses target.RawQuery.
func (r HttpRequest) Query() (uri.QueryString, error) {
	return uri.ParseQuery(r.Target.RawQuery)
}

// SetHeaders replaces r.Headers wholesale.
func (r HttpRequest) SetHeaders(h header.List) HttpRequest { r.Headers = h; return r }

// PutHeaders applies header.List.Put to r.Headers.
func (r HttpRequest) PutHeaders(h ...header.Header) HttpRequest {
	r.Headers = r.Headers.Put(h...)
	return r
}

// RemoveHeaders applies header.List.Remove to r.Headers.
func (r HttpRequest) RemoveHeaders(names ...string) HttpRequest {
	r.Headers = r.Headers.Remove(names...)
	return r
}

// SetBody replaces r.Body.
func (r HttpRequest) SetBody(body Entity) HttpRequest { r.Body = body; return r }

// SetAttributes replaces r.Attributes wholesale.
func (r HttpRequest) SetAttributes(a Attributes) HttpRequest { r.Attributes = a; return r }

// PutAttributes merges additions into r.Attributes.
func (r HttpRequest) PutAttributes(additions Attributes) HttpRequest {
	r.Attributes = r.Attributes.WithAll(additions)
	return r
}

// RemoveAttributes drops the named keys from r.Attributes.
func (r HttpRequest) RemoveAttributes(keys ...string) HttpRequest {
	r.Attributes = r.Attributes.Without(keys...)
	return r
}

// Drain reads and discards the entity, failing with ReadLimitExceeded if
// more than maxLength bytes are produced.
func (r HttpRequest) Drain(maxLength int64) error {
	return drain(r.Body, maxLength)
}

// RequestLine renders "METHOD target HTTP/version".
func (r HttpRequest) RequestLine() string {
	return r.Method.String() + " " + r.Target.OriginForm() + " " + r.Version.String()
}

// HttpResponse is (StatusLine{version, status}, headers, entity,
// attributes).
type HttpResponse struct {
	Version    HttpVersion
	Status     ResponseStatus
	Headers    header.List
	Body       Entity
	Attributes Attributes
}

// NewResponse builds a response with the given status, HTTP/1.1, no
// headers, and an empty body.
func NewResponse(status ResponseStatus) HttpResponse {
	return HttpResponse{Version: Version11, Status: status, Body: EmptyEntity}
}

func (r HttpResponse) SetHeaders(h header.List) HttpResponse { r.Headers = h; return r }

func (r HttpResponse) PutHeaders(h ...header.Header) HttpResponse {
	r.Headers = r.Headers.Put(h...)
	return r
}

func (r HttpResponse) RemoveHeaders(names ...string) HttpResponse {
	r.Headers = r.Headers.Remove(names...)
	return r
}

func (r HttpResponse) SetBody(body Entity) HttpResponse { r.Body = body; return r }

func (r HttpResponse) SetAttributes(a Attributes) HttpResponse { r.Attributes = a; return r }

func (r HttpResponse) PutAttributes(additions Attributes) HttpResponse {
	r.Attributes = r.Attributes.WithAll(additions)
	return r
}

func (r HttpResponse) RemoveAttributes(keys ...string) HttpResponse {
	r.Attributes = r.Attributes.Without(keys...)
	return r
}

// Drain reads and discards the entity, failing with ReadLimitExceeded if
// more than maxLength bytes are produced.
func (r HttpResponse) Drain(maxLength int64) error {
	return drain(r.Body, maxLength)
}

// StatusLine renders "HTTP/version status-code reason".
func (r HttpResponse) StatusLine() string {
	return r.Version.String() + " " + r.Status.String()
}

// Request returns the final outgoing request attached to this response
// under AttrResponseRequest, or false if none was attached.
func (r HttpResponse) Request() (HttpRequest, bool) {
	v, ok := r.Attributes.Get(AttrResponseRequest)
	if !ok {
		return HttpRequest{}, false
	}
	req, ok := v.(HttpRequest)
	return req, ok
}

func drain(body Entity, maxLength int64) error {
	defer body.Close()
	buf := make([]byte, 32*1024)
	var total int64
	for {
		n, err := body.Reader().Read(buf)
		total += int64(n)
		if total > maxLength {
			return errors.ReadLimitExceeded(maxLength)
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return errors.IO("drain", err)
		}
	}
}

// HeaderValueOrNotFound returns the first value of name, or a
// HeaderNotFound error if absent. Used by typed accessors built on top
// of a raw List.
func HeaderValueOrNotFound(h header.List, name string) (string, error) {
	v, ok := h.Get(name)
	if !ok {
		return "", errors.HeaderNotFound(name)
	}
	return v, nil
}

// IsWebSocketScheme reports whether scheme is ws or wss, case-insensitive.
func IsWebSocketScheme(scheme string) bool {
	s := strings.ToLower(scheme)
	return s == "ws" || s == "wss"
}
