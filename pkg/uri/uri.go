// Package uri models the request target/URI-reference used throughout
// httpcore: scheme, authority (host, optional port), path, query string,
// and fragment, plus the x-www-form-urlencoded QueryString codec.
package uri

import (
	"strconv"
	"strings"

	"github.com/go-httpcore/httpcore/pkg/errors"
)

// Uri is a parsed, normalized URI or URI-reference.
type Uri struct {
	Scheme    string // "" for a relative reference
	Host      string // "" if no authority
	HasPort   bool
	Port      int
	Path      string
	RawQuery  string // without leading '?'
	Fragment  string // without leading '#', "" if absent
	HasFrag   bool
}

// DefaultPort returns the scheme's default port (80/443) and true, or
// (0, false) for an unrecognized scheme.
func DefaultPort(scheme string) (int, bool) {
	switch strings.ToLower(scheme) {
	case "http", "ws":
		return 80, true
	case "https", "wss":
		return 443, true
	}
	return 0, false
}

// IsAbsolute reports whether u carries a scheme and (per spec invariant)
// therefore must carry an authority.
func (u Uri) IsAbsolute() bool { return u.Scheme != "" }

// Authority renders "host[:port]", "" if there is no host.
func (u Uri) Authority() string {
	if u.Host == "" {
		return ""
	}
	if !u.HasPort {
		return u.Host
	}
	return u.Host + ":" + strconv.Itoa(u.Port)
}

// EffectivePort returns the explicit port, or the scheme's default.
func (u Uri) EffectivePort() int {
	if u.HasPort {
		return u.Port
	}
	if p, ok := DefaultPort(u.Scheme); ok {
		return p
	}
	return 0
}

// Parse parses an absolute URI or a relative reference. It does not
// attempt full RFC 3986 generality; it recognizes exactly the shapes the
// wire engine and message model need: scheme://host[:port][/path][?query]
// [#fragment], or a bare origin-form target (/path[?query]), or "*".
func Parse(s string) (Uri, error) {
	var u Uri
	rest := s

	if idx := strings.Index(rest, "://"); idx >= 0 && isSchemeToken(rest[:idx]) {
		u.Scheme = strings.ToLower(rest[:idx])
		rest = rest[idx+3:]

		authEnd := len(rest)
		for i, c := range rest {
			if c == '/' || c == '?' || c == '#' {
				authEnd = i
				break
			}
		}
		authority := rest[:authEnd]
		rest = rest[authEnd:]
		if authority == "" {
			return Uri{}, errors.InvalidSyntax("uri authority: " + s)
		}
		host, port, hasPort, err := splitAuthority(authority)
		if err != nil {
			return Uri{}, err
		}
		u.Host, u.Port, u.HasPort = host, port, hasPort
	}

	if u.IsAbsolute() && u.Host == "" {
		return Uri{}, errors.InvalidSyntax("authority required with scheme: " + s)
	}

	if idx := strings.IndexByte(rest, '#'); idx >= 0 {
		u.Fragment = rest[idx+1:]
		u.HasFrag = true
		rest = rest[:idx]
	}
	if idx := strings.IndexByte(rest, '?'); idx >= 0 {
		u.RawQuery = rest[idx+1:]
		rest = rest[:idx]
	}
	u.Path = rest
	return u, nil
}

func isSchemeToken(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		isAlpha := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		isDigit := c >= '0' && c <= '9'
		if i == 0 {
			if !isAlpha {
				return false
			}
			continue
		}
		if !isAlpha && !isDigit && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return true
}

func splitAuthority(authority string) (host string, port int, hasPort bool, err error) {
	if strings.HasPrefix(authority, "[") {
		end := strings.IndexByte(authority, ']')
		if end < 0 {
			return "", 0, false, errors.InvalidSyntax("ipv6 host: " + authority)
		}
		host = authority[:end+1]
		remainder := authority[end+1:]
		if strings.HasPrefix(remainder, ":") {
			p, err := strconv.Atoi(remainder[1:])
			if err != nil {
				return "", 0, false, errors.InvalidSyntax("port: " + authority)
			}
			return host, p, true, nil
		}
		return host, 0, false, nil
	}
	h, p, found := strings.Cut(authority, ":")
	if !found {
		return h, 0, false, nil
	}
	port, err2 := strconv.Atoi(p)
	if err2 != nil {
		return "", 0, false, errors.InvalidSyntax("port: " + authority)
	}
	return h, port, true, nil
}

// String renders u back to wire form.
func (u Uri) String() string {
	var b strings.Builder
	if u.Scheme != "" {
		b.WriteString(u.Scheme)
		b.WriteString("://")
		b.WriteString(u.Authority())
	}
	b.WriteString(u.Path)
	if u.RawQuery != "" {
		b.WriteByte('?')
		b.WriteString(u.RawQuery)
	}
	if u.HasFrag {
		b.WriteByte('#')
		b.WriteString(u.Fragment)
	}
	return b.String()
}

// OriginForm renders the origin-form target used on the wire: path+query,
// with "/" as the path when Path is empty. It never yields "*"; callers
// supply that themselves for OPTIONS.
func (u Uri) OriginForm() string {
	path := u.Path
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		return path + "?" + u.RawQuery
	}
	return path
}
