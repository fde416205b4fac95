package header

import (
	"strings"

	"github.com/go-httpcore/httpcore/pkg/errors"
	"github.com/go-httpcore/httpcore/pkg/grammar"
)

// CacheDirective is one element of a Cache-Control header: a name, with an
// optional value (e.g. "max-age=3600" or bare "no-cache"). Unknown
// directive names are preserved verbatim.
type CacheDirective struct {
	Name     string
	Value    string
	HasValue bool
}

func parseDirective(s string) (name, value string, hasValue bool, err error) {
	s = strings.TrimSpace(s)
	n, v, found := strings.Cut(s, "=")
	n = strings.TrimSpace(n)
	if !grammar.IsToken(n) {
		return "", "", false, errors.InvalidSyntax("directive: " + s)
	}
	if found {
		return strings.ToLower(n), grammar.Unquote(strings.TrimSpace(v)), true, nil
	}
	return strings.ToLower(n), "", false, nil
}

// ParseCacheDirective parses a single Cache-Control element.
func ParseCacheDirective(s string) (CacheDirective, error) {
	n, v, has, err := parseDirective(s)
	if err != nil {
		return CacheDirective{}, err
	}
	return CacheDirective{Name: n, Value: v, HasValue: has}, nil
}

// ParseCacheDirectives parses a full Cache-Control header value.
func ParseCacheDirectives(s string) ([]CacheDirective, error) {
	var out []CacheDirective
	for _, part := range grammar.SplitList(s) {
		d, err := ParseCacheDirective(part)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (d CacheDirective) String() string {
	if !d.HasValue {
		return d.Name
	}
	return d.Name + "=" + grammar.QuoteIfNeeded(d.Value)
}

// PragmaDirective is one element of a Pragma header; same shape as
// CacheDirective but a distinct type.
type PragmaDirective struct {
	Name     string
	Value    string
	HasValue bool
}

func ParsePragmaDirective(s string) (PragmaDirective, error) {
	n, v, has, err := parseDirective(s)
	if err != nil {
		return PragmaDirective{}, err
	}
	return PragmaDirective{Name: n, Value: v, HasValue: has}, nil
}

func ParsePragmaDirectives(s string) ([]PragmaDirective, error) {
	var out []PragmaDirective
	for _, part := range grammar.SplitList(s) {
		d, err := ParsePragmaDirective(part)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (d PragmaDirective) String() string {
	if !d.HasValue {
		return d.Name
	}
	return d.Name + "=" + grammar.QuoteIfNeeded(d.Value)
}

// Preference is one element of a Prefer/Preference-Applied header:
// "name" or "name=value".
type Preference struct {
	Name     string
	Value    string
	HasValue bool
	Params   []grammar.Param
}

func ParsePreference(s string) (Preference, error) {
	head, rest, _ := strings.Cut(s, ";")
	n, v, has, err := parseDirective(head)
	if err != nil {
		return Preference{}, err
	}
	return Preference{Name: n, Value: v, HasValue: has, Params: grammar.ParseParams(rest)}, nil
}

func ParsePreferences(s string) ([]Preference, error) {
	var out []Preference
	for _, part := range grammar.SplitList(s) {
		p, err := ParsePreference(part)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (p Preference) String() string {
	s := p.Name
	if p.HasValue {
		s += "=" + grammar.QuoteIfNeeded(p.Value)
	}
	return s + grammar.FormatParams(p.Params)
}

// Protocol is an Upgrade header element: a name with an optional version,
// e.g. "websocket" or "HTTP/2.0".
type Protocol struct {
	Name    string
	Version string // "" if unversioned
}

func ParseProtocol(s string) (Protocol, error) {
	s = strings.TrimSpace(s)
	name, version, ok := strings.Cut(s, "/")
	name = strings.TrimSpace(name)
	if !grammar.IsToken(name) {
		return Protocol{}, errors.InvalidSyntax("protocol: " + s)
	}
	if ok {
		return Protocol{Name: name, Version: strings.TrimSpace(version)}, nil
	}
	return Protocol{Name: name}, nil
}

func ParseProtocols(s string) ([]Protocol, error) {
	var out []Protocol
	for _, part := range grammar.SplitList(s) {
		p, err := ParseProtocol(part)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (p Protocol) String() string {
	if p.Version == "" {
		return p.Name
	}
	return p.Name + "/" + p.Version
}

// DispositionType is a Content-Disposition value: "attachment"/"inline"/
// extension, plus parameters (filename, name, etc).
type DispositionType struct {
	Name   string
	Params []grammar.Param
}

func ParseDispositionType(s string) (DispositionType, error) {
	head, rest, _ := strings.Cut(s, ";")
	name := strings.TrimSpace(head)
	if !grammar.IsToken(name) {
		return DispositionType{}, errors.InvalidSyntax("disposition-type: " + s)
	}
	return DispositionType{Name: strings.ToLower(name), Params: grammar.ParseParams(rest)}, nil
}

func (d DispositionType) Param(name string) (string, bool) {
	for _, p := range d.Params {
		if strings.EqualFold(p.Name, name) {
			return p.Value, true
		}
	}
	return "", false
}

func (d DispositionType) String() string { return d.Name + grammar.FormatParams(d.Params) }

// ProductType is a single User-Agent/Server product token, e.g.
// "go-httpcore/1.0".
type ProductType struct {
	Name    string
	Version string // "" if absent
}

func ParseProductType(s string) (ProductType, error) {
	s = strings.TrimSpace(s)
	name, version, ok := strings.Cut(s, "/")
	name = strings.TrimSpace(name)
	if !grammar.IsToken(name) {
		return ProductType{}, errors.InvalidSyntax("product: " + s)
	}
	if ok {
		return ProductType{Name: name, Version: strings.TrimSpace(version)}, nil
	}
	return ProductType{Name: name}, nil
}

// ParseProductTypes parses a space-separated product sequence, e.g. a
// User-Agent header's full value ("A/1.0 (comment) B/2.0").
func ParseProductTypes(s string) ([]ProductType, error) {
	var out []ProductType
	for _, tok := range strings.Fields(s) {
		if strings.HasPrefix(tok, "(") {
			continue // comment, skip
		}
		p, err := ParseProductType(tok)
		if err != nil {
			continue // tolerate stray tokens in free-form UA strings
		}
		out = append(out, p)
	}
	return out, nil
}

func (p ProductType) String() string {
	if p.Version == "" {
		return p.Name
	}
	return p.Name + "/" + p.Version
}

// KeepAliveParameters is the value of a Keep-Alive header:
// "timeout=5, max=1000".
type KeepAliveParameters struct {
	HasTimeout bool
	Timeout    int
	HasMax     bool
	Max        int
}

func ParseKeepAliveParameters(s string) (KeepAliveParameters, error) {
	var out KeepAliveParameters
	for _, part := range grammar.SplitList(s) {
		n, v, has, err := parseDirective(part)
		if err != nil {
			return KeepAliveParameters{}, err
		}
		if !has {
			continue
		}
		switch strings.ToLower(n) {
		case "timeout":
			out.HasTimeout = true
			out.Timeout = atoiOrZero(v)
		case "max":
			out.HasMax = true
			out.Max = atoiOrZero(v)
		}
	}
	return out, nil
}

func atoiOrZero(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0
		}
		n = n*10 + int(s[i]-'0')
	}
	return n
}

func (k KeepAliveParameters) String() string {
	var parts []string
	if k.HasTimeout {
		parts = append(parts, "timeout="+itoa(k.Timeout))
	}
	if k.HasMax {
		parts = append(parts, "max="+itoa(k.Max))
	}
	return strings.Join(parts, ", ")
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	if neg {
		b = append([]byte{'-'}, b...)
	}
	return string(b)
}
