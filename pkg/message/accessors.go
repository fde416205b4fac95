package message

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-httpcore/httpcore/pkg/errors"
	"github.com/go-httpcore/httpcore/pkg/grammar"
	"github.com/go-httpcore/httpcore/pkg/header"
)

// Headers is implemented by both HttpRequest and HttpResponse so typed
// accessors can be written once and used against either, taking the
// message as their first argument.
type Headers interface {
	HeaderList() header.List
}

func (r HttpRequest) HeaderList() header.List  { return r.Headers }
func (r HttpResponse) HeaderList() header.List { return r.Headers }

// HasHeader reports whether name is present on m.
func HasHeader(m Headers, name string) bool { return m.HeaderList().Has(name) }

// HeaderValue returns the first value of name, or errors.HeaderNotFound.
func HeaderValue(m Headers, name string) (string, error) {
	return HeaderValueOrNotFound(m.HeaderList(), name)
}

// HeaderValueOption returns the first value of name, or ("", false).
func HeaderValueOption(m Headers, name string) (string, bool) {
	return m.HeaderList().Get(name)
}

// ContentType / ContentTypeOption
func ContentType(m Headers) (header.MediaType, error) {
	v, err := HeaderValue(m, "Content-Type")
	if err != nil {
		return header.MediaType{}, err
	}
	return header.ParseMediaType(v)
}

func ContentTypeOption(m Headers) (header.MediaType, bool) {
	v, ok := HeaderValueOption(m, "Content-Type")
	if !ok {
		return header.MediaType{}, false
	}
	mt, err := header.ParseMediaType(v)
	return mt, err == nil
}

// ContentLength / ContentLengthOption. A value that does not parse as an
// integer is an InvalidSyntax error, or (0, false) from the Option form; a
// negative value is returned as parsed and is not rejected here.
func ContentLength(m Headers) (int64, error) {
	v, err := HeaderValue(m, "Content-Length")
	if err != nil {
		return 0, err
	}
	n, perr := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if perr != nil {
		return 0, errors.InvalidSyntax("content-length: " + v)
	}
	return n, nil
}

func ContentLengthOption(m Headers) (int64, bool) {
	n, err := ContentLength(m)
	return n, err == nil
}

// TransferEncoding parses the (possibly repeated, comma-joined) Transfer-
// Encoding header into ordered codings.
func TransferEncoding(m Headers) ([]header.TransferCoding, error) {
	vals := m.HeaderList().GetFlat("Transfer-Encoding")
	if len(vals) == 0 {
		return nil, errors.HeaderNotFound("Transfer-Encoding")
	}
	var out []header.TransferCoding
	for _, v := range vals {
		c, err := header.ParseTransferCoding(v)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func HasTransferEncoding(m Headers) bool { return m.HeaderList().Has("Transfer-Encoding") }

func IsChunked(m Headers) bool {
	codings, err := TransferEncoding(m)
	if err != nil || len(codings) == 0 {
		return false
	}
	return strings.EqualFold(codings[len(codings)-1].Name, "chunked")
}

// ContentEncoding parses the Content-Encoding header into ordered codings.
func ContentEncoding(m Headers) ([]header.ContentCoding, error) {
	vals := m.HeaderList().GetFlat("Content-Encoding")
	if len(vals) == 0 {
		return nil, errors.HeaderNotFound("Content-Encoding")
	}
	var out []header.ContentCoding
	for _, v := range vals {
		c, err := header.ParseContentCoding(v)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Connection returns the Connection header's flattened tokens.
func Connection(m Headers) []string { return m.HeaderList().GetFlat("Connection") }

func HasConnectionToken(m Headers, token string) bool {
	for _, t := range Connection(m) {
		if strings.EqualFold(t, token) {
			return true
		}
	}
	return false
}

// Host returns the Host header value.
func Host(m Headers) (string, error) { return HeaderValue(m, "Host") }

// UserAgent returns the User-Agent header, parsed into products.
func UserAgent(m Headers) ([]header.ProductType, error) {
	v, err := HeaderValue(m, "User-Agent")
	if err != nil {
		return nil, err
	}
	return header.ParseProductTypes(v)
}

// Accept parses the Accept header into media ranges.
func Accept(m Headers) ([]header.MediaRange, error) {
	v, err := HeaderValue(m, "Accept")
	if err != nil {
		return nil, err
	}
	return header.ParseMediaRanges(v)
}

// AcceptEncoding parses the Accept-Encoding header into coding ranges.
func AcceptEncoding(m Headers) ([]header.ContentCodingRange, error) {
	v, err := HeaderValue(m, "Accept-Encoding")
	if err != nil {
		return nil, err
	}
	return header.ParseContentCodingRanges(v)
}

// Authorization parses the Authorization header into Credentials.
func Authorization(m Headers) (header.Credentials, error) {
	v, err := HeaderValue(m, "Authorization")
	if err != nil {
		return header.Credentials{}, err
	}
	return header.ParseCredentials(v)
}

// WWWAuthenticate parses the WWW-Authenticate header into Challenges.
func WWWAuthenticate(m Headers) ([]header.Challenge, error) {
	v, err := HeaderValue(m, "WWW-Authenticate")
	if err != nil {
		return nil, err
	}
	return header.ParseChallenges(v)
}

// ETag parses the ETag header into an EntityTag.
func ETag(m Headers) (header.EntityTag, error) {
	v, err := HeaderValue(m, "ETag")
	if err != nil {
		return header.EntityTag{}, err
	}
	return header.ParseEntityTag(v)
}

// IfNoneMatch parses the If-None-Match header into entity tags.
func IfNoneMatch(m Headers) ([]header.EntityTag, error) {
	v, err := HeaderValue(m, "If-None-Match")
	if err != nil {
		return nil, err
	}
	return header.ParseEntityTags(v)
}

// Range parses the Range header into byte ranges.
func Range(m Headers) ([]header.ByteRange, error) {
	v, err := HeaderValue(m, "Range")
	if err != nil {
		return nil, err
	}
	return header.ParseByteRanges(v)
}

// ContentRange parses the Content-Range header.
func ContentRange(m Headers) (header.ByteContentRange, error) {
	v, err := HeaderValue(m, "Content-Range")
	if err != nil {
		return header.ByteContentRange{}, err
	}
	return header.ParseByteContentRange(v)
}

// Date parses the Date header per RFC 5322 §3.3.
func Date(m Headers) (time.Time, error) {
	v, err := HeaderValue(m, "Date")
	if err != nil {
		return time.Time{}, err
	}
	parsed, ok := grammar.ParseDate(v)
	if !ok {
		return time.Time{}, errors.InvalidSyntax("date: " + v)
	}
	return parsed, nil
}

// CacheControl parses the Cache-Control header into directives.
func CacheControl(m Headers) ([]header.CacheDirective, error) {
	v, err := HeaderValue(m, "Cache-Control")
	if err != nil {
		return nil, err
	}
	return header.ParseCacheDirectives(v)
}

// Link parses the Link header into link types.
func Link(m Headers) ([]header.LinkType, error) {
	v, err := HeaderValue(m, "Link")
	if err != nil {
		return nil, err
	}
	return header.ParseLinkTypes(v)
}

// Via parses the Via header into via types.
func Via(m Headers) ([]header.ViaType, error) {
	v, err := HeaderValue(m, "Via")
	if err != nil {
		return nil, err
	}
	return header.ParseViaTypes(v)
}

// Warning parses the Warning header into warning types.
func Warning(m Headers) ([]header.WarningType, error) {
	v, err := HeaderValue(m, "Warning")
	if err != nil {
		return nil, err
	}
	return header.ParseWarningTypes(v)
}

// KeepAlive parses the Keep-Alive header.
func KeepAlive(m Headers) (header.KeepAliveParameters, error) {
	v, err := HeaderValue(m, "Keep-Alive")
	if err != nil {
		return header.KeepAliveParameters{}, err
	}
	return header.ParseKeepAliveParameters(v)
}

// Upgrade parses the Upgrade header into protocols.
func Upgrade(m Headers) ([]header.Protocol, error) {
	v, err := HeaderValue(m, "Upgrade")
	if err != nil {
		return nil, err
	}
	return header.ParseProtocols(v)
}

// HasExpectContinue reports whether the Expect header carries
// "100-continue", case-insensitively.
func HasExpectContinue(m Headers) bool {
	v, ok := HeaderValueOption(m, "Expect")
	return ok && strings.EqualFold(strings.TrimSpace(v), "100-continue")
}

// TE parses the TE header into transfer-coding ranges.
func TE(m Headers) ([]header.TransferCodingRange, error) {
	v, err := HeaderValue(m, "TE")
	if err != nil {
		return nil, err
	}
	var out []header.TransferCodingRange
	for _, part := range grammar.SplitList(v) {
		r, perr := header.ParseTransferCodingRange(part)
		if perr != nil {
			return nil, perr
		}
		out = append(out, r)
	}
	return out, nil
}
