// Package cookiejar defines the cookie store collaborator the wire engine
// consults when sending requests and updates from Set-Cookie responses,
// plus a minimal in-memory reference implementation.
package cookiejar

import (
	"strings"
	"sync"
	"time"

	"github.com/go-httpcore/httpcore/pkg/grammar"
	"github.com/go-httpcore/httpcore/pkg/uri"
)

// PlainCookie is a name/value pair as sent on the wire in a Cookie header.
type PlainCookie struct {
	Name  string
	Value string
}

// SetCookie is a parsed Set-Cookie response header.
type SetCookie struct {
	Name     string
	Value    string
	Domain   string
	Path     string
	Expires  time.Time
	HasExp   bool
	MaxAge   int
	HasMaxAge bool
	Secure   bool
	HttpOnly bool
	SameSite string
}

// Store is the engine's cookie collaborator: Get supplies cookies to
// attach to an outbound request to target, Put records cookies from a
// response's Set-Cookie headers.
type Store interface {
	Get(target uri.Uri) []PlainCookie
	Put(target uri.Uri, cookies []SetCookie)
}

// NoopStore discards everything; the engine's default when no store is
// configured.
type NoopStore struct{}

func (NoopStore) Get(uri.Uri) []PlainCookie       { return nil }
func (NoopStore) Put(uri.Uri, []SetCookie) {}

// MemoryStore is a process-local cookie jar keyed by registered domain,
// with no persistence and no public-suffix handling beyond an exact or
// parent-domain match.
type MemoryStore struct {
	mu    sync.Mutex
	byKey map[string]map[string]SetCookie // domain -> name -> cookie
}

// NewMemoryStore builds an empty jar.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byKey: make(map[string]map[string]SetCookie)}
}

func (m *MemoryStore) Get(target uri.Uri) []PlainCookie {
	m.mu.Lock()
	defer m.mu.Unlock()
	host := strings.ToLower(target.Host)
	var out []PlainCookie
	now := time.Now()
	for domain, cookies := range m.byKey {
		if !domainMatches(host, domain) {
			continue
		}
		for name, c := range cookies {
			if c.HasExp && now.After(c.Expires) {
				continue
			}
			if c.Path != "" && !strings.HasPrefix(target.Path, c.Path) {
				continue
			}
			out = append(out, PlainCookie{Name: name, Value: c.Value})
		}
	}
	return out
}

func (m *MemoryStore) Put(target uri.Uri, cookies []SetCookie) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range cookies {
		domain := strings.ToLower(c.Domain)
		if domain == "" {
			domain = strings.ToLower(target.Host)
		}
		bucket, ok := m.byKey[domain]
		if !ok {
			bucket = make(map[string]SetCookie)
			m.byKey[domain] = bucket
		}
		if c.HasMaxAge && c.MaxAge <= 0 {
			delete(bucket, c.Name)
			continue
		}
		bucket[c.Name] = c
	}
}

func domainMatches(host, domain string) bool {
	if host == domain {
		return true
	}
	return strings.HasSuffix(host, "."+domain)
}

// ParseSetCookie parses a single Set-Cookie header value.
func ParseSetCookie(s string) SetCookie {
	parts := strings.Split(s, ";")
	var out SetCookie
	if len(parts) > 0 {
		name, value, _ := strings.Cut(parts[0], "=")
		out.Name = strings.TrimSpace(name)
		out.Value = strings.TrimSpace(value)
	}
	for _, attr := range parts[1:] {
		attr = strings.TrimSpace(attr)
		key, value, hasValue := strings.Cut(attr, "=")
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "domain":
			out.Domain = strings.TrimPrefix(strings.TrimSpace(value), ".")
		case "path":
			out.Path = strings.TrimSpace(value)
		case "expires":
			if t, ok := grammar.ParseDate(strings.TrimSpace(value)); ok {
				out.Expires = t
				out.HasExp = true
			}
		case "max-age":
			if hasValue {
				n := 0
				neg := false
				for i, c := range strings.TrimSpace(value) {
					if i == 0 && c == '-' {
						neg = true
						continue
					}
					if c < '0' || c > '9' {
						n = 0
						break
					}
					n = n*10 + int(c-'0')
				}
				if neg {
					n = -n
				}
				out.MaxAge = n
				out.HasMaxAge = true
			}
		case "secure":
			out.Secure = true
		case "httponly":
			out.HttpOnly = true
		case "samesite":
			out.SameSite = strings.TrimSpace(value)
		}
	}
	return out
}

// FormatCookieHeader renders cookies as a single Cookie header value.
func FormatCookieHeader(cookies []PlainCookie) string {
	parts := make([]string, len(cookies))
	for i, c := range cookies {
		parts[i] = c.Name + "=" + c.Value
	}
	return strings.Join(parts, "; ")
}
