package stream

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkedInputStreamDecodesMultipleChunks(t *testing.T) {
	wire := "4\r\nWiki\r\n5\r\npedia\r\n0\r\n\r\n"
	c := NewChunkedInputStream(strings.NewReader(wire))
	out, err := io.ReadAll(c)
	require.NoError(t, err)
	assert.Equal(t, "Wikipedia", string(out))
}

func TestChunkedInputStreamParsesChunkExtensions(t *testing.T) {
	wire := "4;foo=bar\r\nWiki\r\n0\r\n\r\n"
	c := NewChunkedInputStream(strings.NewReader(wire))
	out, err := io.ReadAll(c)
	require.NoError(t, err)
	assert.Equal(t, "Wiki", string(out))
}

func TestChunkedInputStreamCapturesTrailers(t *testing.T) {
	wire := "4\r\nWiki\r\n0\r\nX-Checksum: abc\r\n\r\n"
	c := NewChunkedInputStream(strings.NewReader(wire))
	_, err := io.ReadAll(c)
	require.NoError(t, err)
	v, ok := c.Trailer().Get("X-Checksum")
	require.True(t, ok)
	assert.Equal(t, "abc", v)
}

func TestChunkedInputStreamTruncatedMidChunkIsError(t *testing.T) {
	wire := "10\r\nshort"
	c := NewChunkedInputStream(strings.NewReader(wire))
	_, err := io.ReadAll(c)
	assert.Error(t, err)
}

func TestChunkedInputStreamInvalidSizeIsError(t *testing.T) {
	wire := "zz\r\n"
	c := NewChunkedInputStream(strings.NewReader(wire))
	_, err := io.ReadAll(c)
	assert.Error(t, err)
}
