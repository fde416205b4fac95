package uri

import (
	"strings"

	"github.com/go-httpcore/httpcore/pkg/errors"
)

// QueryPair is a single (name, value) element of a query string, in the
// order it appeared on the wire.
type QueryPair struct {
	Name  string
	Value string
}

// QueryString is an ordered sequence of query pairs, preserving duplicates.
// The zero value is the distinguished empty query string.
type QueryString []QueryPair

// IsEmpty reports whether the query string carries no pairs.
func (q QueryString) IsEmpty() bool { return len(q) == 0 }

// ToMap keeps the first value seen for each name.
func (q QueryString) ToMap() map[string]string {
	m := make(map[string]string, len(q))
	for _, p := range q {
		if _, ok := m[p.Name]; !ok {
			m[p.Name] = p.Value
		}
	}
	return m
}

// ToMultiMap groups values by name, preserving per-name order.
func (q QueryString) ToMultiMap() map[string][]string {
	m := make(map[string][]string, len(q))
	for _, p := range q {
		m[p.Name] = append(m[p.Name], p.Value)
	}
	return m
}

// Get returns the first value for name, if any.
func (q QueryString) Get(name string) (string, bool) {
	for _, p := range q {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Add appends a pair, returning a new QueryString.
func (q QueryString) Add(name, value string) QueryString {
	return append(q, QueryPair{Name: name, Value: value})
}

// ParseQuery decodes an x-www-form-urlencoded query string (without a
// leading '?'), preserving order and duplicates. A bare "name" (no "=")
// yields (name, ""), and "name=" also yields (name, "").
func ParseQuery(raw string) (QueryString, error) {
	if raw == "" {
		return nil, nil
	}
	var out QueryString
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		n, err := formDecode(name)
		if err != nil {
			return nil, errors.InvalidSyntax("query: " + raw)
		}
		v, err := formDecode(value)
		if err != nil {
			return nil, errors.InvalidSyntax("query: " + raw)
		}
		out = append(out, QueryPair{Name: n, Value: v})
	}
	return out, nil
}

// String encodes q back to x-www-form-urlencoded form.
func (q QueryString) String() string {
	parts := make([]string, 0, len(q))
	for _, p := range q {
		parts = append(parts, formEncode(p.Name)+"="+formEncode(p.Value))
	}
	return strings.Join(parts, "&")
}

func formEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_', c == '.', c == '*':
			b.WriteByte(c)
		case c == ' ':
			b.WriteByte('+')
		default:
			b.WriteByte('%')
			b.WriteByte(hexDigit(c >> 4))
			b.WriteByte(hexDigit(c & 0xf))
		}
	}
	return b.String()
}

func hexDigit(n byte) byte {
	if n < 10 {
		return '0' + n
	}
	return 'A' + n - 10
}

func formDecode(s string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '+':
			b.WriteByte(' ')
		case '%':
			if i+2 >= len(s) {
				return "", errors.InvalidSyntax("percent-encoding: " + s)
			}
			hi, ok1 := fromHex(s[i+1])
			lo, ok2 := fromHex(s[i+2])
			if !ok1 || !ok2 {
				return "", errors.InvalidSyntax("percent-encoding: " + s)
			}
			b.WriteByte(hi<<4 | lo)
			i += 2
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String(), nil
}

func fromHex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
