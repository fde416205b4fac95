package stream

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/go-httpcore/httpcore/pkg/errors"
	"github.com/go-httpcore/httpcore/pkg/header"
)

// ChunkedInputStream decodes an RFC 7230 §4.1 chunked transfer-coding:
// "hex-size [;ext]* CRLF data CRLF ... 0 CRLF CRLF". EOF mid-chunk is
// TruncationDetected. Trailers between the terminating zero chunk and the
// final blank line are read and exposed via Trailer() once Read reaches
// EOF.
type ChunkedInputStream struct {
	r         *bufio.Reader
	remaining int64
	finished  bool
	trailer   header.List
}

// NewChunkedInputStream wraps source for chunked decoding.
func NewChunkedInputStream(source io.Reader) *ChunkedInputStream {
	return &ChunkedInputStream{r: bufioReader(source)}
}

// Trailer returns any trailer headers captured after the terminating
// chunk; only populated once Read has returned io.EOF.
func (c *ChunkedInputStream) Trailer() header.List { return c.trailer }

func (c *ChunkedInputStream) Read(p []byte) (int, error) {
	if c.finished {
		return 0, io.EOF
	}
	if c.remaining == 0 {
		if err := c.nextChunk(); err != nil {
			return 0, err
		}
		if c.finished {
			return 0, io.EOF
		}
	}
	if int64(len(p)) > c.remaining {
		p = p[:c.remaining]
	}
	n, err := io.ReadFull(c.r, p)
	c.remaining -= int64(n)
	if err != nil {
		return n, errors.TruncationDetected("chunk data")
	}
	if c.remaining == 0 {
		if _, err := c.readCRLF(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (c *ChunkedInputStream) nextChunk() error {
	line, err := c.readLine()
	if err != nil {
		return errors.TruncationDetected("chunk size")
	}
	sizeText, _, _ := strings.Cut(line, ";")
	size, err := strconv.ParseInt(strings.TrimSpace(sizeText), 16, 64)
	if err != nil || size < 0 {
		return errors.InvalidSyntax("chunk size: " + line)
	}
	if size == 0 {
		trailer, err := c.readTrailer()
		if err != nil {
			return err
		}
		c.trailer = trailer
		c.finished = true
		return nil
	}
	c.remaining = size
	return nil
}

func (c *ChunkedInputStream) readTrailer() (header.List, error) {
	var list header.List
	var lastIdx = -1
	for {
		line, err := c.readLine()
		if err != nil {
			return nil, errors.TruncationDetected("trailer")
		}
		if line == "" {
			return list, nil
		}
		if (line[0] == ' ' || line[0] == '\t') && lastIdx >= 0 {
			list[lastIdx].Value += " " + strings.TrimSpace(line)
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		list = append(list, header.Header{Name: strings.TrimSpace(name), Value: strings.TrimSpace(value)})
		lastIdx = len(list) - 1
	}
}

func (c *ChunkedInputStream) readCRLF() (bool, error) {
	crlf := make([]byte, 2)
	if _, err := io.ReadFull(c.r, crlf); err != nil {
		return false, errors.TruncationDetected("chunk terminator")
	}
	return true, nil
}

// readLine reads one CRLF- or LF-terminated line, with the terminator
// stripped.
func (c *ChunkedInputStream) readLine() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
