package header

import (
	"encoding/base64"
	"strings"

	"github.com/go-httpcore/httpcore/pkg/errors"
	"github.com/go-httpcore/httpcore/pkg/grammar"
)

// AuthParam is a single auth-scheme parameter (case-insensitive name).
type AuthParam struct {
	Name  string
	Value string
}

// formatAuthParams renders params with realm first, quoting any non-token
// value.
func formatAuthParams(params []AuthParam) string {
	ordered := make([]AuthParam, 0, len(params))
	var realm *AuthParam
	for i := range params {
		if strings.EqualFold(params[i].Name, "realm") && realm == nil {
			realm = &params[i]
			continue
		}
		ordered = append(ordered, params[i])
	}
	if realm != nil {
		ordered = append([]AuthParam{*realm}, ordered...)
	}
	parts := make([]string, 0, len(ordered))
	for _, p := range ordered {
		parts = append(parts, p.Name+"="+grammar.QuoteIfNeeded(p.Value))
	}
	return strings.Join(parts, ", ")
}

func authParam(params []AuthParam, name string) (string, bool) {
	for _, p := range params {
		if strings.EqualFold(p.Name, name) {
			return p.Value, true
		}
	}
	return "", false
}

// Challenge is a WWW-Authenticate/Proxy-Authenticate scheme: Basic, Bearer,
// or an unrecognized scheme carried as Default.
type Challenge struct {
	Scheme string
	Params []AuthParam
	Token  string // used by schemes whose challenge is a bare token68, rare
}

// Realm returns the "realm" parameter.
func (c Challenge) Realm() (string, bool) { return authParam(c.Params, "realm") }

// IsBasic/IsBearer classify the scheme case-insensitively.
func (c Challenge) IsBasic() bool  { return strings.EqualFold(c.Scheme, "basic") }
func (c Challenge) IsBearer() bool { return strings.EqualFold(c.Scheme, "bearer") }

// Error returns the Bearer "error" parameter.
func (c Challenge) Error() (string, bool) { return authParam(c.Params, "error") }

// IsInvalidRequest/IsInvalidToken/IsInsufficientScope classify a Bearer
// challenge's error parameter per RFC 6750 §3.1.
func (c Challenge) IsInvalidRequest() bool    { v, _ := c.Error(); return v == "invalid_request" }
func (c Challenge) IsInvalidToken() bool      { v, _ := c.Error(); return v == "invalid_token" }
func (c Challenge) IsInsufficientScope() bool { v, _ := c.Error(); return v == "insufficient_scope" }

// Scope returns the Bearer "scope" parameter split on spaces into its
// token list.
func (c Challenge) Scope() []string {
	v, ok := authParam(c.Params, "scope")
	if !ok || v == "" {
		return nil
	}
	return strings.Fields(v)
}

// ParseChallenge parses a single "scheme param=val, param=val" challenge.
func ParseChallenge(s string) (Challenge, error) {
	s = strings.TrimSpace(s)
	scheme, rest, ok := strings.Cut(s, " ")
	scheme = strings.TrimSpace(scheme)
	if !grammar.IsToken(scheme) {
		return Challenge{}, errors.InvalidSyntax("challenge: " + s)
	}
	ch := Challenge{Scheme: scheme}
	if !ok {
		if ch.IsBasic() {
			return Challenge{}, errors.InvalidSyntax("basic challenge requires realm: " + s)
		}
		return ch, nil
	}
	rest = strings.TrimSpace(rest)
	for _, part := range grammar.SplitQuoted(rest, ',') {
		if part == "" {
			continue
		}
		name, value, found := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		if !found {
			ch.Token = part
			continue
		}
		ch.Params = append(ch.Params, AuthParam{Name: name, Value: grammar.Unquote(strings.TrimSpace(value))})
	}
	if ch.IsBasic() {
		if _, ok := ch.Realm(); !ok {
			return Challenge{}, errors.InvalidSyntax("basic challenge requires realm: " + s)
		}
	}
	return ch, nil
}

// ParseChallenges splits a WWW-Authenticate value on scheme boundaries
// (each element starts with a token followed by a space and either another
// token= pair or end of string) and parses each.
func ParseChallenges(s string) ([]Challenge, error) {
	segments := splitAuthSchemes(s)
	out := make([]Challenge, 0, len(segments))
	for _, seg := range segments {
		c, err := ParseChallenge(seg)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// splitAuthSchemes splits a header value into one segment per auth scheme.
// A new scheme begins at a token that is followed by a space and is not
// itself the value half of a "name=value" pair (heuristically: the token
// before it, if any, ends with a comma after a balanced quote region).
func splitAuthSchemes(s string) []string {
	parts := grammar.SplitQuoted(s, ',')
	var segments []string
	var cur strings.Builder
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		fields := strings.SplitN(trimmed, " ", 2)
		looksLikeNewScheme := len(fields) >= 1 && grammar.IsToken(fields[0]) && !strings.Contains(fields[0], "=") &&
			(len(fields) == 1 || !strings.HasPrefix(strings.TrimSpace(fields[1]), "="))
		if looksLikeNewScheme && cur.Len() > 0 {
			segments = append(segments, strings.TrimSpace(cur.String()))
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteString(", ")
		}
		cur.WriteString(p)
	}
	if cur.Len() > 0 {
		segments = append(segments, strings.TrimSpace(cur.String()))
	}
	return segments
}

func (c Challenge) String() string {
	if len(c.Params) == 0 && c.Token == "" {
		return c.Scheme
	}
	if c.Token != "" {
		return c.Scheme + " " + c.Token
	}
	return c.Scheme + " " + formatAuthParams(c.Params)
}

// Credentials is an Authorization/Proxy-Authorization value: Basic,
// Bearer, or an unrecognized scheme carried with a raw token.
type Credentials struct {
	Scheme string
	Token  string
}

func (c Credentials) IsBasic() bool  { return strings.EqualFold(c.Scheme, "basic") }
func (c Credentials) IsBearer() bool { return strings.EqualFold(c.Scheme, "bearer") }

// User and Password decode Basic credentials (base64 of "user:password",
// exactly one ':' separator).
func (c Credentials) User() (string, error) {
	user, _, err := c.basicParts()
	return user, err
}

func (c Credentials) Password() (string, error) {
	_, pass, err := c.basicParts()
	return pass, err
}

func (c Credentials) basicParts() (string, string, error) {
	if !c.IsBasic() {
		return "", "", errors.InvalidSyntax("not basic credentials")
	}
	raw, err := base64.StdEncoding.DecodeString(c.Token)
	if err != nil {
		return "", "", errors.InvalidSyntax("basic credentials base64: " + c.Token)
	}
	user, pass, ok := strings.Cut(string(raw), ":")
	if !ok {
		return "", "", errors.InvalidSyntax("basic credentials missing ':' separator")
	}
	return user, pass, nil
}

// NewBasicCredentials builds Basic credentials from a user/password pair.
func NewBasicCredentials(user, password string) Credentials {
	raw := user + ":" + password
	return Credentials{Scheme: "Basic", Token: base64.StdEncoding.EncodeToString([]byte(raw))}
}

// NewBearerCredentials builds Bearer credentials from a token.
func NewBearerCredentials(token string) Credentials {
	return Credentials{Scheme: "Bearer", Token: token}
}

// ParseCredentials parses a single Authorization header value:
// "scheme token".
func ParseCredentials(s string) (Credentials, error) {
	s = strings.TrimSpace(s)
	scheme, token, ok := strings.Cut(s, " ")
	scheme = strings.TrimSpace(scheme)
	if !ok || !grammar.IsToken(scheme) {
		return Credentials{}, errors.InvalidSyntax("credentials: " + s)
	}
	token = strings.TrimSpace(token)
	if strings.EqualFold(scheme, "bearer") && !isBearerToken(token) {
		return Credentials{}, errors.InvalidSyntax("bearer token syntax: " + s)
	}
	return Credentials{Scheme: scheme, Token: token}, nil
}

// isBearerToken validates RFC 6750 §2.1 b64token syntax.
func isBearerToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '.', c == '_', c == '~', c == '+', c == '/', c == '=':
		default:
			return false
		}
	}
	return true
}

func (c Credentials) String() string { return c.Scheme + " " + c.Token }
