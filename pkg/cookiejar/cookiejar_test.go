package cookiejar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-httpcore/httpcore/pkg/uri"
)

func TestParseSetCookieBasicAttributes(t *testing.T) {
	c := ParseSetCookie("session=abc123; Domain=.example.com; Path=/app; Secure; HttpOnly; SameSite=Lax")
	assert.Equal(t, "session", c.Name)
	assert.Equal(t, "abc123", c.Value)
	assert.Equal(t, "example.com", c.Domain)
	assert.Equal(t, "/app", c.Path)
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "Lax", c.SameSite)
}

func TestParseSetCookieMaxAge(t *testing.T) {
	c := ParseSetCookie("a=b; Max-Age=120")
	require.True(t, c.HasMaxAge)
	assert.Equal(t, 120, c.MaxAge)
}

func TestFormatCookieHeaderJoinsWithSemicolon(t *testing.T) {
	out := FormatCookieHeader([]PlainCookie{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}})
	assert.Equal(t, "a=1; b=2", out)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	target, err := uri.Parse("https://example.com/app/page")
	require.NoError(t, err)

	store.Put(target, []SetCookie{{Name: "session", Value: "abc", Domain: "example.com", Path: "/app"}})

	cookies := store.Get(target)
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Equal(t, "abc", cookies[0].Value)
}

func TestMemoryStoreMatchesSubdomain(t *testing.T) {
	store := NewMemoryStore()
	root, err := uri.Parse("https://example.com/")
	require.NoError(t, err)
	sub, err := uri.Parse("https://api.example.com/")
	require.NoError(t, err)

	store.Put(root, []SetCookie{{Name: "a", Value: "1", Domain: "example.com"}})
	assert.Len(t, store.Get(sub), 1)
}

func TestMemoryStoreExpiredCookieOmitted(t *testing.T) {
	store := NewMemoryStore()
	target, err := uri.Parse("https://example.com/")
	require.NoError(t, err)

	store.Put(target, []SetCookie{{
		Name: "a", Value: "1", Domain: "example.com",
		Expires: time.Now().Add(-time.Hour), HasExp: true,
	}})
	assert.Empty(t, store.Get(target))
}

func TestMemoryStoreMaxAgeZeroDeletes(t *testing.T) {
	store := NewMemoryStore()
	target, err := uri.Parse("https://example.com/")
	require.NoError(t, err)

	store.Put(target, []SetCookie{{Name: "a", Value: "1", Domain: "example.com"}})
	require.Len(t, store.Get(target), 1)

	store.Put(target, []SetCookie{{Name: "a", Value: "1", Domain: "example.com", MaxAge: 0, HasMaxAge: true}})
	assert.Empty(t, store.Get(target))
}

func TestNoopStoreDiscardsEverything(t *testing.T) {
	var s NoopStore
	target, _ := uri.Parse("https://example.com/")
	s.Put(target, []SetCookie{{Name: "a", Value: "1"}})
	assert.Nil(t, s.Get(target))
}
