package header

import (
	"strings"

	"github.com/go-httpcore/httpcore/pkg/errors"
	"github.com/go-httpcore/httpcore/pkg/grammar"
)

// LinkType is a single Link header element: a URI-reference plus
// parameters (rel, title, type, ...).
type LinkType struct {
	URI    string
	Params []grammar.Param
}

// ParseLinkType parses a single Link header element, e.g.
// `<https://example.com/page=2>; rel="next"`.
func ParseLinkType(s string) (LinkType, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "<") {
		return LinkType{}, errors.InvalidSyntax("link: " + s)
	}
	end := strings.IndexByte(s, '>')
	if end < 0 {
		return LinkType{}, errors.InvalidSyntax("link: " + s)
	}
	uri := s[1:end]
	rest := strings.TrimPrefix(s[end+1:], ";")
	return LinkType{URI: uri, Params: grammar.ParseParams(rest)}, nil
}

// ParseLinkTypes parses a comma-separated Link header value.
func ParseLinkTypes(s string) ([]LinkType, error) {
	var out []LinkType
	for _, part := range grammar.SplitList(s) {
		l, err := ParseLinkType(part)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// Rel returns the "rel" parameter, if present.
func (l LinkType) Rel() (string, bool) {
	for _, p := range l.Params {
		if strings.EqualFold(p.Name, "rel") {
			return p.Value, true
		}
	}
	return "", false
}

func (l LinkType) String() string {
	return "<" + l.URI + ">" + grammar.FormatParams(l.Params)
}

// WarningType is a single Warning header element: code, agent, quoted
// text, and an optional quoted RFC 5322 date.
type WarningType struct {
	Code  int
	Agent string
	Text  string
	Date  string // RFC 5322 wire format, "" if absent
}

// ParseWarningType parses a single Warning header element, e.g.
// `110 anderson/1.3.37 "Response is stale"`.
func ParseWarningType(s string) (WarningType, error) {
	fields := strings.SplitN(strings.TrimSpace(s), " ", 3)
	if len(fields) < 3 {
		return WarningType{}, errors.InvalidSyntax("warning: " + s)
	}
	code := 0
	for _, c := range fields[0] {
		if c < '0' || c > '9' {
			return WarningType{}, errors.InvalidSyntax("warning code: " + s)
		}
		code = code*10 + int(c-'0')
	}
	rest := fields[2]
	textEnd := -1
	if len(rest) > 0 && rest[0] == '"' {
		for i := 1; i < len(rest); i++ {
			if rest[i] == '"' && rest[i-1] != '\\' {
				textEnd = i
				break
			}
		}
	}
	if textEnd < 0 {
		return WarningType{}, errors.InvalidSyntax("warning text: " + s)
	}
	text := grammar.Unquote(rest[:textEnd+1])
	date := ""
	remainder := strings.TrimSpace(rest[textEnd+1:])
	if len(remainder) >= 2 && remainder[0] == '"' {
		date = grammar.Unquote(remainder)
	}
	return WarningType{Code: code, Agent: fields[1], Text: text, Date: date}, nil
}

// ParseWarningTypes parses a comma-separated Warning header value.
func ParseWarningTypes(s string) ([]WarningType, error) {
	var out []WarningType
	for _, part := range grammar.SplitList(s) {
		w, err := ParseWarningType(part)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func (w WarningType) String() string {
	s := itoa(w.Code) + " " + w.Agent + " " + grammar.Quote(w.Text)
	if w.Date != "" {
		s += " " + grammar.Quote(w.Date)
	}
	return s
}

// ViaType is a single Via header element: protocol, received-by, and an
// optional comment.
type ViaType struct {
	Protocol   Protocol
	ReceivedBy string
	Comment    string
}

// ParseViaType parses a single Via header element, e.g. "1.1 proxy.example".
func ParseViaType(s string) (ViaType, error) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return ViaType{}, errors.InvalidSyntax("via: " + s)
	}
	proto, err := ParseProtocol(fields[0])
	if err != nil {
		return ViaType{}, err
	}
	v := ViaType{Protocol: proto, ReceivedBy: fields[1]}
	if len(fields) > 2 {
		v.Comment = strings.Join(fields[2:], " ")
	}
	return v, nil
}

// ParseViaTypes parses a comma-separated Via header value.
func ParseViaTypes(s string) ([]ViaType, error) {
	var out []ViaType
	for _, part := range grammar.SplitList(s) {
		v, err := ParseViaType(part)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (v ViaType) String() string {
	s := v.Protocol.String() + " " + v.ReceivedBy
	if v.Comment != "" {
		s += " " + v.Comment
	}
	return s
}
