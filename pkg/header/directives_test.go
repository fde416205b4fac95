package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCacheDirectiveBareAndValued(t *testing.T) {
	d, err := ParseCacheDirective("no-cache")
	require.NoError(t, err)
	assert.Equal(t, CacheDirective{Name: "no-cache"}, d)
	assert.Equal(t, "no-cache", d.String())

	d, err = ParseCacheDirective(`max-age="3600"`)
	require.NoError(t, err)
	assert.Equal(t, CacheDirective{Name: "max-age", Value: "3600", HasValue: true}, d)
	assert.Equal(t, "max-age=3600", d.String())
}

func TestParseCacheDirectivesSplitsList(t *testing.T) {
	ds, err := ParseCacheDirectives("no-store, max-age=0, private")
	require.NoError(t, err)
	require.Len(t, ds, 3)
	assert.Equal(t, "no-store", ds[0].Name)
	assert.Equal(t, "max-age", ds[1].Name)
}

func TestParsePragmaDirective(t *testing.T) {
	d, err := ParsePragmaDirective("no-cache")
	require.NoError(t, err)
	assert.Equal(t, "no-cache", d.Name)
	assert.False(t, d.HasValue)
}

func TestParsePreferenceWithParams(t *testing.T) {
	p, err := ParsePreference(`respond-async; wait=10`)
	require.NoError(t, err)
	assert.Equal(t, "respond-async", p.Name)
	require.Len(t, p.Params, 1)
	assert.Equal(t, "wait", p.Params[0].Name)
	assert.Equal(t, "10", p.Params[0].Value)
}

func TestParsePreferencesList(t *testing.T) {
	ps, err := ParsePreferences("return=minimal, respond-async")
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "return", ps[0].Name)
	assert.True(t, ps[0].HasValue)
	assert.Equal(t, "minimal", ps[0].Value)
}

func TestParseProtocolWithAndWithoutVersion(t *testing.T) {
	p, err := ParseProtocol("websocket")
	require.NoError(t, err)
	assert.Equal(t, Protocol{Name: "websocket"}, p)
	assert.Equal(t, "websocket", p.String())

	p, err = ParseProtocol("HTTP/2.0")
	require.NoError(t, err)
	assert.Equal(t, Protocol{Name: "HTTP", Version: "2.0"}, p)
	assert.Equal(t, "HTTP/2.0", p.String())
}

func TestParseProtocolsList(t *testing.T) {
	ps, err := ParseProtocols("websocket, HTTP/2.0")
	require.NoError(t, err)
	require.Len(t, ps, 2)
}

func TestParseDispositionTypeWithFilenameParam(t *testing.T) {
	d, err := ParseDispositionType(`attachment; filename="report.pdf"`)
	require.NoError(t, err)
	assert.Equal(t, "attachment", d.Name)
	v, ok := d.Param("filename")
	require.True(t, ok)
	assert.Equal(t, "report.pdf", v)
	assert.Equal(t, `attachment; filename=report.pdf`, d.String())
}

func TestParseProductTypeWithAndWithoutVersion(t *testing.T) {
	p, err := ParseProductType("httpcore/1.0")
	require.NoError(t, err)
	assert.Equal(t, ProductType{Name: "httpcore", Version: "1.0"}, p)

	p, err = ParseProductType("httpcore")
	require.NoError(t, err)
	assert.Equal(t, ProductType{Name: "httpcore"}, p)
}

func TestParseProductTypesSkipsCommentsAndStrayTokens(t *testing.T) {
	ps, err := ParseProductTypes("httpcore/1.0 (compatible) curl/8.0")
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "httpcore", ps[0].Name)
	assert.Equal(t, "curl", ps[1].Name)
}

func TestParseKeepAliveParameters(t *testing.T) {
	k, err := ParseKeepAliveParameters("timeout=5, max=1000")
	require.NoError(t, err)
	assert.Equal(t, KeepAliveParameters{HasTimeout: true, Timeout: 5, HasMax: true, Max: 1000}, k)
	assert.Equal(t, "timeout=5, max=1000", k.String())
}

func TestParseKeepAliveParametersPartial(t *testing.T) {
	k, err := ParseKeepAliveParameters("timeout=5")
	require.NoError(t, err)
	assert.True(t, k.HasTimeout)
	assert.False(t, k.HasMax)
	assert.Equal(t, "timeout=5", k.String())
}
