package stream

import (
	"io"
	"strings"

	"github.com/go-httpcore/httpcore/pkg/errors"
	"github.com/go-httpcore/httpcore/pkg/header"
)

// HeaderStreamReader reads CRLF-terminated header lines from source until
// an empty line, folding leading-whitespace continuation lines into the
// previous header's value with a single space separator. A first line that
// starts with whitespace is InvalidSyntax, since there is no prior header
// to continue.
type HeaderStreamReader struct {
	r *readLineReader
}

// NewHeaderStreamReader wraps source for header-block reading.
func NewHeaderStreamReader(source io.Reader) *HeaderStreamReader {
	return &HeaderStreamReader{r: &readLineReader{r: bufioReader(source)}}
}

// ReadHeaders consumes lines through the terminating blank line and
// returns them as a header.List in wire order.
func (h *HeaderStreamReader) ReadHeaders() (header.List, error) {
	var list header.List
	lastIdx := -1
	for {
		line, err := h.r.readLine()
		if err != nil {
			return nil, errors.TruncationDetected("header block")
		}
		if line == "" {
			return list, nil
		}
		if line[0] == ' ' || line[0] == '\t' {
			if lastIdx < 0 {
				return nil, errors.InvalidSyntax("header continuation with no prior header")
			}
			list[lastIdx].Value += " " + strings.TrimSpace(line)
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, errors.InvalidSyntax("header line: " + line)
		}
		name = strings.TrimSpace(name)
		if name == "" || strings.ContainsAny(name, " \t") {
			return nil, errors.InvalidSyntax("header name: " + name)
		}
		list = append(list, header.Header{Name: name, Value: strings.TrimSpace(value)})
		lastIdx = len(list) - 1
	}
}

// ReadStartLine reads a single CRLF-terminated line ahead of the header
// block (the request-line or status-line). An error here is returned
// unwrapped, since a read that fails having consumed zero bytes (a closed
// or idle connection, a read timeout) is not a mid-message truncation —
// callers that care about timeouts can still inspect it with
// errors.IsTimeout.
func (h *HeaderStreamReader) ReadStartLine() (string, error) {
	return h.r.readLine()
}

type readLineReader struct {
	r interface {
		ReadString(delim byte) (string, error)
	}
}

func (l *readLineReader) readLine() (string, error) {
	line, err := l.r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
