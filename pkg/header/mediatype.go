package header

import (
	"strings"

	"github.com/go-httpcore/httpcore/pkg/errors"
	"github.com/go-httpcore/httpcore/pkg/grammar"
)

// MediaType is a Content-Type value: type/subtype plus parameters (e.g.
// charset, boundary).
type MediaType struct {
	Type    string
	Subtype string
	Params  []grammar.Param
}

// Full returns "type/subtype".
func (m MediaType) Full() string { return m.Type + "/" + m.Subtype }

// Param looks up a parameter case-insensitively by name.
func (m MediaType) Param(name string) (string, bool) {
	for _, p := range m.Params {
		if strings.EqualFold(p.Name, name) {
			return p.Value, true
		}
	}
	return "", false
}

// Charset returns the "charset" parameter, defaulting to "UTF-8".
func (m MediaType) Charset() string {
	if v, ok := m.Param("charset"); ok && v != "" {
		return v
	}
	return "UTF-8"
}

// ParseMediaType parses a single Content-Type-shaped value.
func ParseMediaType(s string) (MediaType, error) {
	typePart, rest, _ := strings.Cut(s, ";")
	typePart = strings.TrimSpace(typePart)
	t, sub, ok := strings.Cut(typePart, "/")
	t = strings.TrimSpace(t)
	sub = strings.TrimSpace(sub)
	if !ok || !grammar.IsToken(t) || !grammar.IsToken(sub) {
		return MediaType{}, errors.InvalidSyntax("media-type: " + s)
	}
	return MediaType{
		Type:    strings.ToLower(t),
		Subtype: strings.ToLower(sub),
		Params:  grammar.ParseParams(rest),
	}, nil
}

func (m MediaType) String() string {
	return m.Full() + grammar.FormatParams(m.Params)
}

// MediaRange is an Accept value: a MediaType (with "*" allowed for either
// half) plus a quality weight.
type MediaRange struct {
	Type    string
	Subtype string
	Weight  float64
	Params  []grammar.Param
}

// ParseMediaRange parses a single Accept-header element.
func ParseMediaRange(s string) (MediaRange, error) {
	typePart, rest, _ := strings.Cut(s, ";")
	typePart = strings.TrimSpace(typePart)
	t, sub, ok := strings.Cut(typePart, "/")
	t = strings.TrimSpace(t)
	sub = strings.TrimSpace(sub)
	if !ok || (t != "*" && !grammar.IsToken(t)) || (sub != "*" && !grammar.IsToken(sub)) {
		return MediaRange{}, errors.InvalidSyntax("media-range: " + s)
	}
	params := grammar.ParseParams(rest)
	weight := 1.0
	var kept []grammar.Param
	for _, p := range params {
		if strings.EqualFold(p.Name, "q") {
			weight = grammar.ParseQuality(p.Value)
			continue
		}
		kept = append(kept, p)
	}
	return MediaRange{Type: strings.ToLower(t), Subtype: strings.ToLower(sub), Weight: weight, Params: kept}, nil
}

// ParseMediaRanges parses a comma-separated Accept header value.
func ParseMediaRanges(s string) ([]MediaRange, error) {
	var out []MediaRange
	for _, part := range grammar.SplitList(s) {
		r, err := ParseMediaRange(part)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Matches reports whether m matches the media range, ignoring weight.
func (r MediaRange) Matches(m MediaType) bool {
	if r.Type != "*" && !strings.EqualFold(r.Type, m.Type) {
		return false
	}
	if r.Subtype != "*" && !strings.EqualFold(r.Subtype, m.Subtype) {
		return false
	}
	return true
}

func (r MediaRange) String() string {
	s := r.Type + "/" + r.Subtype + grammar.FormatParams(r.Params)
	if r.Weight != 1.0 {
		s += ";q=" + grammar.FormatQuality(r.Weight)
	}
	return s
}
