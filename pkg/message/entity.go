package message

import (
	"io"

	"github.com/go-httpcore/httpcore/pkg/header"
)

// Entity is a lazily-consumed byte source with an optional known size. It
// is a one-shot resource: once Reader() has been read to EOF or Close has
// been called, it must not be read again. The carrying HttpMessage owns
// it until handed to a filter or handler, at which point ownership
// transfers with the message.
type Entity struct {
	reader    io.ReadCloser
	knownSize int64
	hasSize   bool
}

// EmptyEntity is the canonical zero-length entity.
var EmptyEntity = NewEntityWithSize(io.NopCloser(noBytesReader{}), 0)

type noBytesReader struct{}

func (noBytesReader) Read(p []byte) (int, error) { return 0, io.EOF }

// NewEntity wraps a reader whose length is not known ahead of time.
func NewEntity(r io.ReadCloser) Entity {
	return Entity{reader: r}
}

// NewEntityWithSize wraps a reader whose length is known (e.g. a file or
// an in-memory buffer), letting the wire engine prefer Content-Length
// framing over chunked.
func NewEntityWithSize(r io.ReadCloser, size int64) Entity {
	return Entity{reader: r, knownSize: size, hasSize: true}
}

// NewBytesEntity wraps a byte slice as a known-size entity.
func NewBytesEntity(b []byte) Entity {
	return NewEntityWithSize(io.NopCloser(&byteReader{b: b}), int64(len(b)))
}

type byteReader struct {
	b   []byte
	pos int
}

func (r *byteReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.b) {
		return 0, io.EOF
	}
	n := copy(p, r.b[r.pos:])
	r.pos += n
	return n, nil
}

// Reader returns the underlying byte source. Callers must Close it (or
// close the Entity) when done.
func (e Entity) Reader() io.Reader {
	if e.reader == nil {
		return noBytesReader{}
	}
	return e.reader
}

// Close releases the underlying resource, if any.
func (e Entity) Close() error {
	if e.reader == nil {
		return nil
	}
	return e.reader.Close()
}

// KnownSize returns the entity's size and true if it is known ahead of
// read, else (0, false).
func (e Entity) KnownSize() (int64, bool) { return e.knownSize, e.hasSize }

// IsKnownEmpty reports whether KnownSize() == (0, true).
func (e Entity) IsKnownEmpty() bool { return e.hasSize && e.knownSize == 0 }

// trailerReader is implemented by decoded readers that captured trailer
// headers off a chunked transfer-coding once Read reached EOF.
type trailerReader interface {
	Trailer() header.List
}

// Trailer returns the trailer headers captured after a chunked body has
// been read to EOF, or nil if the entity's stream was never chunked or
// hasn't finished reading yet.
func (e Entity) Trailer() header.List {
	if tr, ok := e.reader.(trailerReader); ok {
		return tr.Trailer()
	}
	return nil
}
