package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMediaTypeWithParams(t *testing.T) {
	m, err := ParseMediaType("Text/HTML; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, "text", m.Type)
	assert.Equal(t, "html", m.Subtype)
	assert.Equal(t, "text/html", m.Full())

	v, ok := m.Param("Charset")
	require.True(t, ok)
	assert.Equal(t, "utf-8", v)
	assert.Equal(t, "utf-8", m.Charset())
}

func TestMediaTypeCharsetDefaultsToUTF8(t *testing.T) {
	m, err := ParseMediaType("application/json")
	require.NoError(t, err)
	assert.Equal(t, "UTF-8", m.Charset())
}

func TestParseMediaTypeRejectsMissingSlash(t *testing.T) {
	_, err := ParseMediaType("application")
	assert.Error(t, err)
}

func TestMediaTypeString(t *testing.T) {
	m, err := ParseMediaType("text/plain; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", m.String())
}

func TestParseMediaRangeWithWildcards(t *testing.T) {
	r, err := ParseMediaRange("text/*;q=0.8")
	require.NoError(t, err)
	assert.Equal(t, "text", r.Type)
	assert.Equal(t, "*", r.Subtype)
	assert.Equal(t, 0.8, r.Weight)

	full, _ := ParseMediaType("text/html")
	assert.True(t, r.Matches(full))

	other, _ := ParseMediaType("application/json")
	assert.False(t, r.Matches(other))
}

func TestParseMediaRangesSplitsAcceptList(t *testing.T) {
	ranges, err := ParseMediaRanges("text/html, application/json;q=0.9, */*;q=0.1")
	require.NoError(t, err)
	require.Len(t, ranges, 3)
	assert.Equal(t, "*", ranges[2].Type)
	assert.Equal(t, "*", ranges[2].Subtype)
}

func TestMediaRangeString(t *testing.T) {
	r, err := ParseMediaRange("application/json;q=0.5")
	require.NoError(t, err)
	assert.Equal(t, "application/json;q=0.5", r.String())
}
