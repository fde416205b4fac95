package body

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-httpcore/httpcore/pkg/constants"
	"github.com/go-httpcore/httpcore/pkg/header"
)

func TestToBytesWithinLimit(t *testing.T) {
	b, err := ToBytes(strings.NewReader("hello"), 10)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
}

func TestToBytesExceedsLimit(t *testing.T) {
	_, err := ToBytes(strings.NewReader("hello world"), 3)
	assert.Error(t, err)
}

func TestToStringDefaultsToUTF8(t *testing.T) {
	mt, err := header.ParseMediaType("text/plain")
	require.NoError(t, err)
	s, err := ToString(strings.NewReader("hello"), 100, mt)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
}

func TestToStringRejectsUnknownCharset(t *testing.T) {
	mt, err := header.ParseMediaType("text/plain; charset=bogus-charset-xyz")
	require.NoError(t, err)
	_, err = ToString(strings.NewReader("hello"), 100, mt)
	assert.Error(t, err)
}

func TestToQueryParsesFormEncodedBody(t *testing.T) {
	mt, err := header.ParseMediaType("application/x-www-form-urlencoded")
	require.NoError(t, err)
	q, err := ToQuery(strings.NewReader("a=1&b=2"), 100, mt)
	require.NoError(t, err)
	v, ok := q.Get("b")
	require.True(t, ok)
	assert.Equal(t, "2", v)
}

func TestToReaderReturnsInputUnchanged(t *testing.T) {
	r := strings.NewReader("hello")
	assert.Same(t, r, ToReader(r).(*strings.Reader))
}

func TestToFileWritesNamedDestination(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "sub", "out.txt")

	path, err := ToFile(strings.NewReader("payload"), dest)
	require.NoError(t, err)
	assert.Equal(t, dest, path)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestToFileCreatesUniqueFileInsideExistingDirectory(t *testing.T) {
	dir := t.TempDir()

	path, err := ToFile(strings.NewReader("payload"), dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, dir))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestToFileSpillsLargeBodyThroughBufferToDisk(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "large.bin")

	payload := bytes.Repeat([]byte("x"), constants.DefaultBodyMemLimit+1024)
	path, err := ToFile(bytes.NewReader(payload), dest)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

