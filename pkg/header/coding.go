package header

import (
	"strings"

	"github.com/go-httpcore/httpcore/pkg/errors"
	"github.com/go-httpcore/httpcore/pkg/grammar"
)

// ContentCoding names a Content-Encoding value. Name holds the token
// whether or not it is one of the recognized codings below.
type ContentCoding struct {
	Name string // "identity", "gzip", "deflate", "compress", "br", or any other token
}

const (
	CodingIdentity = "identity"
	CodingGzip     = "gzip"
	CodingDeflate  = "deflate"
	CodingCompress = "compress"
	CodingBrotli   = "br"
)

// ParseContentCoding parses a single Content-Encoding token.
func ParseContentCoding(s string) (ContentCoding, error) {
	s = strings.TrimSpace(s)
	if !grammar.IsToken(s) {
		return ContentCoding{}, errors.InvalidSyntax("content-coding: " + s)
	}
	return ContentCoding{Name: strings.ToLower(s)}, nil
}

func (c ContentCoding) String() string { return c.Name }

// ContentCodingRange is an Accept-Encoding element: a coding (or "*") with
// a quality weight.
type ContentCodingRange struct {
	Name   string
	Weight float64
}

// ParseContentCodingRange parses a single Accept-Encoding element.
func ParseContentCodingRange(s string) (ContentCodingRange, error) {
	namePart, rest, _ := strings.Cut(s, ";")
	name := strings.TrimSpace(namePart)
	if name != "*" && !grammar.IsToken(name) {
		return ContentCodingRange{}, errors.InvalidSyntax("content-coding-range: " + s)
	}
	weight := 1.0
	for _, p := range grammar.ParseParams(rest) {
		if strings.EqualFold(p.Name, "q") {
			weight = grammar.ParseQuality(p.Value)
		}
	}
	return ContentCodingRange{Name: strings.ToLower(name), Weight: weight}, nil
}

// ParseContentCodingRanges parses a comma-separated Accept-Encoding value.
func ParseContentCodingRanges(s string) ([]ContentCodingRange, error) {
	var out []ContentCodingRange
	for _, part := range grammar.SplitList(s) {
		r, err := ParseContentCodingRange(part)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Matches reports whether name matches the range, ignoring weight.
func (r ContentCodingRange) Matches(name string) bool {
	return r.Name == "*" || strings.EqualFold(r.Name, name)
}

func (r ContentCodingRange) String() string {
	if r.Weight == 1.0 {
		return r.Name
	}
	return r.Name + ";q=" + grammar.FormatQuality(r.Weight)
}

// TransferCoding names a Transfer-Encoding value: "chunked", "gzip",
// "deflate", "compress", or an extension token with parameters.
type TransferCoding struct {
	Name   string
	Params []grammar.Param
}

// ParseTransferCoding parses a single Transfer-Encoding element.
func ParseTransferCoding(s string) (TransferCoding, error) {
	namePart, rest, _ := strings.Cut(s, ";")
	name := strings.TrimSpace(namePart)
	if !grammar.IsToken(name) {
		return TransferCoding{}, errors.InvalidSyntax("transfer-coding: " + s)
	}
	return TransferCoding{Name: strings.ToLower(name), Params: grammar.ParseParams(rest)}, nil
}

// ParseTransferCodings parses a comma-separated Transfer-Encoding value,
// preserving header order (the decoder applies them right-to-left itself).
func ParseTransferCodings(s string) ([]TransferCoding, error) {
	var out []TransferCoding
	for _, part := range grammar.SplitList(s) {
		c, err := ParseTransferCoding(part)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (c TransferCoding) String() string { return c.Name + grammar.FormatParams(c.Params) }

// TransferCodingRange is a TE header element: a coding with a quality
// weight and parameters.
type TransferCodingRange struct {
	Name   string
	Weight float64
	Params []grammar.Param
}

// ParseTransferCodingRange parses a single TE header element.
func ParseTransferCodingRange(s string) (TransferCodingRange, error) {
	namePart, rest, _ := strings.Cut(s, ";")
	name := strings.TrimSpace(namePart)
	if !grammar.IsToken(name) {
		return TransferCodingRange{}, errors.InvalidSyntax("transfer-coding-range: " + s)
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
	return TransferCodingRange{Name: strings.ToLower(name), Weight: weight, Params: kept}, nil
}

func (r TransferCodingRange) String() string {
	s := r.Name + grammar.FormatParams(r.Params)
	if r.Weight != 1.0 {
		s += ";q=" + grammar.FormatQuality(r.Weight)
	}
	return s
}

// CharsetRange is an Accept-Charset element: a charset name (or "*") with a
// quality weight.
type CharsetRange struct {
	Name   string
	Weight float64
}

// ParseCharsetRange parses a single Accept-Charset element.
func ParseCharsetRange(s string) (CharsetRange, error) {
	namePart, rest, _ := strings.Cut(s, ";")
	name := strings.TrimSpace(namePart)
	if name != "*" && !grammar.IsToken(name) {
		return CharsetRange{}, errors.InvalidSyntax("charset-range: " + s)
	}
	weight := 1.0
	for _, p := range grammar.ParseParams(rest) {
		if strings.EqualFold(p.Name, "q") {
			weight = grammar.ParseQuality(p.Value)
		}
	}
	return CharsetRange{Name: name, Weight: weight}, nil
}

// ParseCharsetRanges parses a comma-separated Accept-Charset value.
func ParseCharsetRanges(s string) ([]CharsetRange, error) {
	var out []CharsetRange
	for _, part := range grammar.SplitList(s) {
		r, err := ParseCharsetRange(part)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (r CharsetRange) Matches(name string) bool {
	return r.Name == "*" || strings.EqualFold(r.Name, name)
}

func (r CharsetRange) String() string {
	if r.Weight == 1.0 {
		return r.Name
	}
	return r.Name + ";q=" + grammar.FormatQuality(r.Weight)
}

// LanguageTag is a Content-Language element, e.g. "en-US".
type LanguageTag struct {
	Tag string
}

func ParseLanguageTag(s string) (LanguageTag, error) {
	s = strings.TrimSpace(s)
	for _, part := range strings.Split(s, "-") {
		if !grammar.IsToken(part) {
			return LanguageTag{}, errors.InvalidSyntax("language-tag: " + s)
		}
	}
	return LanguageTag{Tag: s}, nil
}

func (t LanguageTag) String() string { return t.Tag }

// LanguageRange is an Accept-Language element: a language tag (or "*")
// with a quality weight.
type LanguageRange struct {
	Tag    string
	Weight float64
}

func ParseLanguageRange(s string) (LanguageRange, error) {
	namePart, rest, _ := strings.Cut(s, ";")
	tag := strings.TrimSpace(namePart)
	if tag != "*" {
		for _, part := range strings.Split(tag, "-") {
			if !grammar.IsToken(part) {
				return LanguageRange{}, errors.InvalidSyntax("language-range: " + s)
			}
		}
	}
	weight := 1.0
	for _, p := range grammar.ParseParams(rest) {
		if strings.EqualFold(p.Name, "q") {
			weight = grammar.ParseQuality(p.Value)
		}
	}
	return LanguageRange{Tag: tag, Weight: weight}, nil
}

func ParseLanguageRanges(s string) ([]LanguageRange, error) {
	var out []LanguageRange
	for _, part := range grammar.SplitList(s) {
		r, err := ParseLanguageRange(part)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (r LanguageRange) Matches(tag string) bool {
	return r.Tag == "*" || strings.EqualFold(r.Tag, tag) || strings.HasPrefix(strings.ToLower(tag), strings.ToLower(r.Tag)+"-")
}

func (r LanguageRange) String() string {
	if r.Weight == 1.0 {
		return r.Tag
	}
	return r.Tag + ";q=" + grammar.FormatQuality(r.Weight)
}
