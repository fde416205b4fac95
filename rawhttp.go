// Package httpcore provides an HTTP/1.1 client built from immutable
// request/response values, a small decoder for content and transfer
// codings, and a wire engine that frames, writes, and reads exactly one
// exchange per connection.
package httpcore

import (
	"github.com/go-httpcore/httpcore/pkg/client"
	"github.com/go-httpcore/httpcore/pkg/message"
	"github.com/go-httpcore/httpcore/pkg/uri"
)

// Re-export the primary types so callers who only need the common path
// can depend on this package alone.
type (
	// Client is the engine that drives request/response exchanges.
	Client = client.HttpClient

	// Option configures a Client at construction time.
	Option = client.Option

	// Request is an immutable, copy-on-write HTTP request value.
	Request = message.HttpRequest

	// Response is an immutable HTTP response value.
	Response = message.HttpResponse

	// Target is a parsed absolute-form URI.
	Target = uri.Uri
)

// NewClient builds a Client with the given options layered over the
// documented defaults.
func NewClient(opts ...Option) *Client {
	return client.NewClient(opts...)
}

// ParseTarget parses an absolute URI string into a Target.
func ParseTarget(raw string) (Target, error) {
	return uri.Parse(raw)
}

// NewRequest builds a Request for method and target with no headers and
// an empty body.
func NewRequest(method message.RequestMethod, target Target) Request {
	return message.NewRequest(method, target)
}

var (
	// MethodGet and friends are re-exported for convenience so callers
	// building requests don't need to import pkg/message directly.
	MethodGet     = message.MethodGet
	MethodHead    = message.MethodHead
	MethodPost    = message.MethodPost
	MethodPut     = message.MethodPut
	MethodPatch   = message.MethodPatch
	MethodDelete  = message.MethodDelete
	MethodOptions = message.MethodOptions
	MethodTrace   = message.MethodTrace
	MethodConnect = message.MethodConnect
)
