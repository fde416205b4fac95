// Package stream implements the low-level streaming primitives the body
// decoder and wire engine compose: a read-ceiling enforcer, a chunked
// transfer-coding reader, and a CRLF header-line reader with continuation
// folding.
package stream

import (
	"bufio"
	"io"

	"github.com/go-httpcore/httpcore/pkg/errors"
)

// BoundedInputStream returns at most capacity bytes from source, raising
// ReadLimitExceeded(limit) if source yields more than limit bytes before
// EOF. When limit == capacity this rejects any over-long input; a read
// that would cross the limit fails even if the final requested byte would
// itself be within the limit.
type BoundedInputStream struct {
	source   io.Reader
	limit    int64
	capacity int64
	read     int64
	done     bool
}

// NewBoundedInputStream wraps source with the given limit and capacity.
// capacity <= 0 means "no cap on bytes returned beyond limit itself".
func NewBoundedInputStream(source io.Reader, limit, capacity int64) *BoundedInputStream {
	if capacity <= 0 || capacity > limit {
		capacity = limit
	}
	return &BoundedInputStream{source: source, limit: limit, capacity: capacity}
}

func (b *BoundedInputStream) Read(p []byte) (int, error) {
	if b.done {
		return 0, io.EOF
	}
	if b.read >= b.capacity {
		// Already returned capacity bytes; consume the rest of the source,
		// up to one byte past the limit, to decide whether it was exceeded.
		rest := b.limit - b.read + 1
		if rest < 1 {
			rest = 1
		}
		_, err := io.CopyN(io.Discard, b.source, rest)
		if err == nil {
			return 0, errors.ReadLimitExceeded(b.limit)
		}
		if err == io.EOF {
			b.done = true
			return 0, io.EOF
		}
		return 0, err
	}
	max := b.capacity - b.read
	if int64(len(p)) > max {
		p = p[:max]
	}
	n, err := b.source.Read(p)
	b.read += int64(n)
	if err == io.EOF {
		b.done = true
		return n, io.EOF
	}
	if err != nil {
		return n, errors.IO("read", err)
	}
	if b.read == b.capacity && b.capacity == b.limit {
		// At the exact ceiling: confirm no more bytes exist, since limit ==
		// capacity means "reject over-long inputs" rather than truncate.
		probe := make([]byte, 1)
		pn, perr := b.source.Read(probe)
		if pn > 0 {
			return n, errors.ReadLimitExceeded(b.limit)
		}
		if perr == io.EOF {
			b.done = true
		}
	}
	return n, nil
}

// ReadAll drains b fully, returning the accumulated bytes or a
// ReadLimitExceeded/IO error.
func ReadAll(r io.Reader) ([]byte, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			return nil, e
		}
		return nil, errors.IO("read", err)
	}
	return buf, nil
}

// bufioReader adapts an io.Reader to *bufio.Reader when the caller needs
// line-oriented access (chunk sizes, header lines) without double-
// buffering an already-buffered source.
func bufioReader(r io.Reader) *bufio.Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReaderSize(r, 4096)
}
