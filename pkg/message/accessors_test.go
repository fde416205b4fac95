package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-httpcore/httpcore/pkg/header"
)

func withHeaders(h ...header.Header) HttpResponse {
	return NewResponse(StatusOK).SetHeaders(header.List(h))
}

func TestContentTypeParsesAndOptionForm(t *testing.T) {
	resp := withHeaders(header.Header{Name: "Content-Type", Value: "text/html; charset=utf-8"})
	ct, err := ContentType(resp)
	require.NoError(t, err)
	assert.Equal(t, "text/html", ct.Full())

	mt, ok := ContentTypeOption(resp)
	require.True(t, ok)
	assert.Equal(t, "text/html", mt.Full())

	empty := NewResponse(StatusOK)
	_, ok = ContentTypeOption(empty)
	assert.False(t, ok)
}

func TestContentLengthParsesAndRejectsGarbage(t *testing.T) {
	resp := withHeaders(header.Header{Name: "Content-Length", Value: "42"})
	n, err := ContentLength(resp)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	bad := withHeaders(header.Header{Name: "Content-Length", Value: "abc"})
	_, ok := ContentLengthOption(bad)
	assert.False(t, ok)
}

func TestTransferEncodingAndIsChunked(t *testing.T) {
	resp := withHeaders(header.Header{Name: "Transfer-Encoding", Value: "gzip, chunked"})
	codings, err := TransferEncoding(resp)
	require.NoError(t, err)
	require.Len(t, codings, 2)
	assert.True(t, IsChunked(resp))
	assert.True(t, HasTransferEncoding(resp))

	notChunked := withHeaders(header.Header{Name: "Transfer-Encoding", Value: "gzip"})
	assert.False(t, IsChunked(notChunked))

	assert.False(t, IsChunked(NewResponse(StatusOK)))
}

func TestContentEncodingParsesOrderedCodings(t *testing.T) {
	resp := withHeaders(header.Header{Name: "Content-Encoding", Value: "gzip"})
	codings, err := ContentEncoding(resp)
	require.NoError(t, err)
	require.Len(t, codings, 1)
	assert.Equal(t, "gzip", codings[0].Name)
}

func TestConnectionTokensAndHasToken(t *testing.T) {
	resp := withHeaders(header.Header{Name: "Connection", Value: "keep-alive, Upgrade"})
	assert.True(t, HasConnectionToken(resp, "upgrade"))
	assert.False(t, HasConnectionToken(resp, "close"))
}

func TestHostUserAgentAcceptAcceptEncoding(t *testing.T) {
	req := NewRequest(MethodGet, target(t, "http://example.com/a")).PutHeaders(
		header.Header{Name: "Host", Value: "example.com"},
		header.Header{Name: "User-Agent", Value: "httpcore/1.0"},
		header.Header{Name: "Accept", Value: "text/html;q=0.9"},
		header.Header{Name: "Accept-Encoding", Value: "gzip, br;q=0.5"},
	)

	host, err := Host(req)
	require.NoError(t, err)
	assert.Equal(t, "example.com", host)

	ua, err := UserAgent(req)
	require.NoError(t, err)
	require.Len(t, ua, 1)
	assert.Equal(t, "httpcore", ua[0].Name)

	accept, err := Accept(req)
	require.NoError(t, err)
	require.Len(t, accept, 1)
	assert.Equal(t, 0.9, accept[0].Weight)

	enc, err := AcceptEncoding(req)
	require.NoError(t, err)
	require.Len(t, enc, 2)
}

func TestAuthorizationAndWWWAuthenticate(t *testing.T) {
	req := NewRequest(MethodGet, target(t, "http://example.com/a")).PutHeaders(
		header.Header{Name: "Authorization", Value: "Bearer sometoken123"},
	)
	creds, err := Authorization(req)
	require.NoError(t, err)
	assert.True(t, creds.IsBearer())

	resp := withHeaders(header.Header{Name: "WWW-Authenticate", Value: `Basic realm="api"`})
	challenges, err := WWWAuthenticate(resp)
	require.NoError(t, err)
	require.Len(t, challenges, 1)
}

func TestETagAndIfNoneMatch(t *testing.T) {
	resp := withHeaders(header.Header{Name: "ETag", Value: `"v1"`})
	tag, err := ETag(resp)
	require.NoError(t, err)
	assert.Equal(t, "v1", tag.Opaque)

	req := NewRequest(MethodGet, target(t, "http://example.com/a")).PutHeaders(
		header.Header{Name: "If-None-Match", Value: `"v1", "v2"`},
	)
	tags, err := IfNoneMatch(req)
	require.NoError(t, err)
	require.Len(t, tags, 2)
}

func TestRangeAndContentRange(t *testing.T) {
	req := NewRequest(MethodGet, target(t, "http://example.com/a")).PutHeaders(
		header.Header{Name: "Range", Value: "bytes=0-499"},
	)
	ranges, err := Range(req)
	require.NoError(t, err)
	require.Len(t, ranges, 1)

	resp := withHeaders(header.Header{Name: "Content-Range", Value: "bytes 0-499/1234"})
	cr, err := ContentRange(resp)
	require.NoError(t, err)
	assert.Equal(t, int64(1234), cr.Length)
}

func TestDateParsesRFC5322(t *testing.T) {
	resp := withHeaders(header.Header{Name: "Date", Value: "Sun, 06 Nov 1994 08:49:37 GMT"})
	tm, err := Date(resp)
	require.NoError(t, err)
	assert.Equal(t, 1994, tm.Year())
}

func TestCacheControlLinkViaWarningKeepAliveUpgrade(t *testing.T) {
	resp := withHeaders(
		header.Header{Name: "Cache-Control", Value: "no-cache, max-age=0"},
		header.Header{Name: "Link", Value: `<https://example.com/next>; rel="next"`},
		header.Header{Name: "Via", Value: "1.1 proxy.example"},
		header.Header{Name: "Warning", Value: `110 anderson/1.3.37 "stale"`},
		header.Header{Name: "Keep-Alive", Value: "timeout=5, max=1000"},
		header.Header{Name: "Upgrade", Value: "websocket"},
	)

	directives, err := CacheControl(resp)
	require.NoError(t, err)
	require.Len(t, directives, 2)

	links, err := Link(resp)
	require.NoError(t, err)
	require.Len(t, links, 1)

	vias, err := Via(resp)
	require.NoError(t, err)
	require.Len(t, vias, 1)

	warnings, err := Warning(resp)
	require.NoError(t, err)
	require.Len(t, warnings, 1)

	ka, err := KeepAlive(resp)
	require.NoError(t, err)
	assert.True(t, ka.HasTimeout)

	upgrades, err := Upgrade(resp)
	require.NoError(t, err)
	require.Len(t, upgrades, 1)
	assert.Equal(t, "websocket", upgrades[0].Name)
}

func TestHasExpectContinue(t *testing.T) {
	req := NewRequest(MethodPut, target(t, "http://example.com/a")).PutHeaders(
		header.Header{Name: "Expect", Value: "100-continue"},
	)
	assert.True(t, HasExpectContinue(req))

	other := NewRequest(MethodPut, target(t, "http://example.com/a")).PutHeaders(
		header.Header{Name: "Expect", Value: "something-else"},
	)
	assert.False(t, HasExpectContinue(other))

	assert.False(t, HasExpectContinue(NewRequest(MethodPut, target(t, "http://example.com/a"))))
}

func TestTEParsesTransferCodingRanges(t *testing.T) {
	req := NewRequest(MethodGet, target(t, "http://example.com/a")).PutHeaders(
		header.Header{Name: "TE", Value: "trailers, gzip;q=0.5"},
	)
	ranges, err := TE(req)
	require.NoError(t, err)
	require.Len(t, ranges, 2)
	assert.Equal(t, "trailers", ranges[0].Name)
	assert.Equal(t, 0.5, ranges[1].Weight)
}

func TestHasHeaderAndHeaderValueOption(t *testing.T) {
	resp := withHeaders(header.Header{Name: "X-Test", Value: "1"})
	assert.True(t, HasHeader(resp, "X-Test"))
	assert.False(t, HasHeader(resp, "X-Missing"))

	v, ok := HeaderValueOption(resp, "X-Test")
	require.True(t, ok)
	assert.Equal(t, "1", v)
}
