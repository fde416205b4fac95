// Package header models the untyped header list shared by every HTTP
// message and the small language of typed header value types layered on
// top of it: media types and ranges, codings, entity tags, byte ranges,
// cache/pragma directives, auth challenges and credentials, products,
// links, warnings, vias, and keep-alive parameters.
package header

import "strings"

// Header is a single (name, value) pair. Name matches the RFC 7230 token
// grammar; comparisons and lookups are case-insensitive by name.
type Header struct {
	Name  string
	Value string
}

// List is an ordered sequence of headers. Order is insertion order;
// duplicate names are preserved (e.g. repeated Set-Cookie).
type List []Header

// New builds a List from name/value pairs, e.g. New("A", "1", "B", "2").
func New(pairs ...string) List {
	l := make(List, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		l = append(l, Header{Name: pairs[i], Value: pairs[i+1]})
	}
	return l
}

// Add appends a header, preserving any existing header of the same name.
func (l List) Add(name, value string) List {
	return append(l, Header{Name: name, Value: value})
}

// Get returns the first value for name, case-insensitively, or "" if absent.
func (l List) Get(name string) (string, bool) {
	for _, h := range l {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}
	return "", false
}

// GetAll returns every value for name, case-insensitively, in order.
func (l List) GetAll(name string) []string {
	var out []string
	for _, h := range l {
		if strings.EqualFold(h.Name, name) {
			out = append(out, h.Value)
		}
	}
	return out
}

// GetFlat returns every value for name, with any individual comma-list
// value split into its elements, flattening repeated headers and
// comma-joined single headers into one sequence.
func (l List) GetFlat(name string) []string {
	var out []string
	for _, v := range l.GetAll(name) {
		for _, part := range splitList(v) {
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Has reports whether name is present, case-insensitively.
func (l List) Has(name string) bool {
	_, ok := l.Get(name)
	return ok
}

// Set replaces every existing header named name with a single header
// carrying value, inserted at the position of the first existing
// occurrence (or appended if none existed).
func (l List) Set(name, value string) List {
	out := make(List, 0, len(l)+1)
	replaced := false
	for _, h := range l {
		if strings.EqualFold(h.Name, name) {
			if !replaced {
				out = append(out, Header{Name: name, Value: value})
				replaced = true
			}
			continue
		}
		out = append(out, h)
	}
	if !replaced {
		out = append(out, Header{Name: name, Value: value})
	}
	return out
}

// Remove drops every header whose name is in names, case-insensitively.
func (l List) Remove(names ...string) List {
	out := make(List, 0, len(l))
	for _, h := range l {
		drop := false
		for _, n := range names {
			if strings.EqualFold(h.Name, n) {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, h)
		}
	}
	return out
}

// Put replaces headers matching any name found in replacements (preserving
// the position of the first occurrence of each name, overall order
// otherwise intact), then appends any replacement whose name had no
// existing occurrence.
func (l List) Put(replacements ...Header) List {
	out := make(List, len(l))
	copy(out, l)
	seen := make(map[string]bool, len(replacements))
	for _, r := range replacements {
		key := strings.ToLower(r.Name)
		replaced := false
		for i, h := range out {
			if strings.EqualFold(h.Name, r.Name) && !seen[key] {
				out[i] = r
				replaced = true
				seen[key] = true
				break
			}
		}
		if !replaced {
			if seen[key] {
				out = append(out, r)
			} else {
				// first occurrence missing entirely: drop later same-name
				// originals (there are none, since Get found nothing) and
				// append.
				out = append(out, r)
				seen[key] = true
			}
		}
	}
	return out
}

// Clone returns an independent copy of l.
func (l List) Clone() List {
	out := make(List, len(l))
	copy(out, l)
	return out
}

// splitList splits on commas, honoring quoted strings. The List methods use
// it; the value-type parsers in this package use pkg/grammar instead.
func splitList(s string) []string {
	var out []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			cur.WriteByte(c)
		case !inQuotes && c == ',':
			out = append(out, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	out = append(out, strings.TrimSpace(cur.String()))
	return out
}
