package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStatusRejectsOutOfRangeCode(t *testing.T) {
	_, err := NewStatus(99, "Too Low")
	assert.Error(t, err)

	_, err = NewStatus(600, "Too High")
	assert.Error(t, err)

	s, err := NewStatus(200, "OK")
	require.NoError(t, err)
	assert.Equal(t, "OK", s.Reason)
}

func TestStatusClassPredicates(t *testing.T) {
	assert.True(t, StatusContinue.IsInformational())
	assert.True(t, StatusOK.IsSuccessful())
	assert.True(t, StatusNotModified.IsRedirection())
	assert.True(t, StatusBadRequest.IsClientError())
	assert.True(t, StatusInternalServerError.IsServerError())
	assert.True(t, StatusBadRequest.IsError())
	assert.False(t, StatusOK.IsError())
}

func TestStatusHasNoBody(t *testing.T) {
	assert.True(t, StatusContinue.HasNoBody())
	assert.True(t, StatusNoContent.HasNoBody())
	assert.True(t, StatusNotModified.HasNoBody())
	assert.False(t, StatusOK.HasNoBody())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "200 OK", StatusOK.String())
}

func TestParseStatusLineWithReason(t *testing.T) {
	v, s, err := ParseStatusLine("HTTP/1.1 404 Not Found\r\n")
	require.NoError(t, err)
	assert.Equal(t, 1, v.Major)
	assert.Equal(t, 1, v.Minor)
	assert.Equal(t, 404, s.Code)
	assert.Equal(t, "Not Found", s.Reason)
}

func TestParseStatusLineWithoutReason(t *testing.T) {
	_, s, err := ParseStatusLine("HTTP/1.1 204")
	require.NoError(t, err)
	assert.Equal(t, 204, s.Code)
	assert.Equal(t, "", s.Reason)
}

func TestParseStatusLineRejectsMissingVersion(t *testing.T) {
	_, _, err := ParseStatusLine("200 OK")
	assert.Error(t, err)
}

func TestParseStatusLineRejectsNonNumericCode(t *testing.T) {
	_, _, err := ParseStatusLine("HTTP/1.1 abc OK")
	assert.Error(t, err)
}
