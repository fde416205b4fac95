package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMethodCanonicalizesKnownMethods(t *testing.T) {
	m, err := ParseMethod("get")
	require.NoError(t, err)
	assert.Equal(t, MethodGet, m)

	m, err = ParseMethod("POST")
	require.NoError(t, err)
	assert.Equal(t, MethodPost, m)
}

func TestParseMethodAcceptsExtensionTokens(t *testing.T) {
	m, err := ParseMethod("PURGE")
	require.NoError(t, err)
	assert.Equal(t, "PURGE", m.Name)
}

func TestParseMethodRejectsNonToken(t *testing.T) {
	_, err := ParseMethod("GET /")
	assert.Error(t, err)
}

func TestMethodIsBodilessAndBodyAllowed(t *testing.T) {
	assert.True(t, MethodGet.IsBodiless())
	assert.True(t, MethodHead.IsBodiless())
	assert.True(t, MethodDelete.IsBodiless())
	assert.False(t, MethodPost.IsBodiless())

	assert.True(t, MethodPost.IsBodyAllowed())
	assert.True(t, MethodPut.IsBodyAllowed())
	assert.True(t, MethodPatch.IsBodyAllowed())
	assert.True(t, MethodOptions.IsBodyAllowed())
	assert.False(t, MethodGet.IsBodyAllowed())
}

func TestMethodString(t *testing.T) {
	assert.Equal(t, "GET", MethodGet.String())
}
