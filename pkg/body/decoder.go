// Package body implements the body decoder and materializing parsers:
// applying transfer and content codings to a message's raw entity, then
// adapting the decoded stream into bytes, strings, query strings, readers,
// or files.
package body

import (
	"compress/flate"
	"compress/gzip"
	"io"

	"github.com/go-httpcore/httpcore/pkg/errors"
	"github.com/go-httpcore/httpcore/pkg/header"
	"github.com/go-httpcore/httpcore/pkg/message"
	"github.com/go-httpcore/httpcore/pkg/stream"
)

// Decoder decodes a message's raw entity into its final byte stream,
// honoring transfer and content codings, bounded to maxLength.
type Decoder struct {
	MaxLength int64
}

// NewDecoder builds a Decoder bounding decoded output to maxLength bytes.
func NewDecoder(maxLength int64) *Decoder {
	return &Decoder{MaxLength: maxLength}
}

type headerSet header.List

func (h headerSet) HeaderList() header.List { return header.List(h) }

// DecodeRequest decodes req's entity per the same rules as DecodeResponse,
// except a response-only status short-circuit never applies and a missing
// Content-Length with no transfer encoding defaults the raw bound to 0.
func (d *Decoder) DecodeRequest(req message.HttpRequest) (io.ReadCloser, error) {
	return d.decode(req.Headers, req.Body, true, false)
}

// DecodeResponse decodes resp's entity, short-circuiting to an empty
// stream for 1xx/204/304 statuses regardless of framing headers.
func (d *Decoder) DecodeResponse(resp message.HttpResponse) (io.ReadCloser, error) {
	return d.decode(resp.Headers, resp.Body, false, resp.Status.HasNoBody())
}

func (d *Decoder) decode(headers header.List, body message.Entity, isRequest, forceEmpty bool) (io.ReadCloser, error) {
	if forceEmpty || body.IsKnownEmpty() {
		body.Close()
		return io.NopCloser(noBytes{}), nil
	}

	hs := headerSet(headers)
	hasTE := message.HasTransferEncoding(hs)

	var raw io.Reader = body.Reader()
	if !hasTE {
		cl, ok := message.ContentLengthOption(hs)
		var bound int64
		switch {
		case ok && cl < d.MaxLength:
			bound = cl
		case ok:
			bound = d.MaxLength
		case isRequest:
			bound = 0
		default:
			bound = d.MaxLength
		}
		raw = stream.NewBoundedInputStream(raw, bound, bound)
	}

	decoded, chunked, err := d.applyTransferCodings(hs, raw, hasTE)
	if err != nil {
		body.Close()
		return nil, err
	}
	decoded, err = d.applyContentCodings(hs, decoded)
	if err != nil {
		body.Close()
		return nil, err
	}

	return &decodedReadCloser{r: decoded, underlying: body, chunked: chunked}, nil
}

// applyTransferCodings applies the Transfer-Encoding codings right-to-left
// (wire order is left-to-right application order, so decoding undoes the
// last-applied coding first). At most the last six codings are honored.
// The returned *stream.ChunkedInputStream, if any, lets the caller surface
// trailer headers once the body has been read to EOF.
func (d *Decoder) applyTransferCodings(hs headerSet, raw io.Reader, hasTE bool) (io.Reader, *stream.ChunkedInputStream, error) {
	if !hasTE {
		return raw, nil, nil
	}
	codings, err := message.TransferEncoding(hs)
	if err != nil {
		return nil, nil, err
	}
	if len(codings) > 6 {
		codings = codings[len(codings)-6:]
	}
	var chunked *stream.ChunkedInputStream
	decoded := raw
	for i := len(codings) - 1; i >= 0; i-- {
		switch codings[i].Name {
		case "chunked":
			cis := stream.NewChunkedInputStream(decoded)
			chunked = cis
			decoded = cis
		case "gzip":
			gr, err := gzip.NewReader(decoded)
			if err != nil {
				return nil, nil, errors.Wrap(errors.KindInvalidSyntax, "decode", "malformed gzip transfer-coding", err)
			}
			decoded = gr
		case "deflate":
			decoded = flate.NewReader(decoded)
		default:
			return nil, nil, errors.UnsupportedEncoding(codings[i].Name)
		}
	}
	return stream.NewBoundedInputStream(decoded, d.MaxLength, d.MaxLength), chunked, nil
}

// applyContentCodings applies Content-Encoding codings right-to-left,
// accepting gzip, deflate, and identity.
func (d *Decoder) applyContentCodings(hs headerSet, raw io.Reader) (io.Reader, error) {
	if !hs.HeaderList().Has("Content-Encoding") {
		return raw, nil
	}
	codings, err := message.ContentEncoding(hs)
	if err != nil {
		return nil, err
	}
	decoded := raw
	for i := len(codings) - 1; i >= 0; i-- {
		switch codings[i].Name {
		case "identity":
			// no-op
		case "gzip":
			gr, err := gzip.NewReader(decoded)
			if err != nil {
				return nil, errors.Wrap(errors.KindInvalidSyntax, "decode", "malformed gzip content-coding", err)
			}
			decoded = gr
		case "deflate":
			decoded = flate.NewReader(decoded)
		default:
			return nil, errors.UnsupportedEncoding(codings[i].Name)
		}
	}
	return decoded, nil
}

type decodedReadCloser struct {
	r          io.Reader
	underlying message.Entity
	chunked    *stream.ChunkedInputStream
}

func (d *decodedReadCloser) Read(p []byte) (int, error) {
	n, err := d.r.Read(p)
	if err != nil && err != io.EOF {
		if _, ok := err.(*errors.Error); !ok {
			err = errors.IO("read", err)
		}
	}
	return n, err
}

func (d *decodedReadCloser) Close() error {
	if c, ok := d.r.(io.Closer); ok {
		c.Close()
	}
	return d.underlying.Close()
}

// Trailer returns the trailer headers captured off the wire once the
// chunked body has been read to EOF, or nil if the body wasn't chunked.
func (d *decodedReadCloser) Trailer() header.List {
	if d.chunked == nil {
		return nil
	}
	return d.chunked.Trailer()
}

type noBytes struct{}

func (noBytes) Read(p []byte) (int, error) { return 0, io.EOF }
