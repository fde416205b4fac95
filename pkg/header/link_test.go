package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLinkTypeWithRel(t *testing.T) {
	l, err := ParseLinkType(`<https://example.com/page=2>; rel="next"`)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/page=2", l.URI)
	rel, ok := l.Rel()
	require.True(t, ok)
	assert.Equal(t, "next", rel)
	assert.Equal(t, `<https://example.com/page=2>; rel=next`, l.String())
}

func TestParseLinkTypeRejectsMissingBrackets(t *testing.T) {
	_, err := ParseLinkType("https://example.com")
	assert.Error(t, err)
}

func TestParseLinkTypesSplitsList(t *testing.T) {
	links, err := ParseLinkTypes(`<https://example.com/1>; rel="next", <https://example.com/2>; rel="prev"`)
	require.NoError(t, err)
	require.Len(t, links, 2)
	rel, _ := links[1].Rel()
	assert.Equal(t, "prev", rel)
}

func TestParseWarningTypeWithAndWithoutDate(t *testing.T) {
	w, err := ParseWarningType(`110 anderson/1.3.37 "Response is stale"`)
	require.NoError(t, err)
	assert.Equal(t, 110, w.Code)
	assert.Equal(t, "anderson/1.3.37", w.Agent)
	assert.Equal(t, "Response is stale", w.Text)
	assert.Equal(t, "", w.Date)

	w, err = ParseWarningType(`112 - "cache down" "Tue, 15 Nov 1994 08:12:31 GMT"`)
	require.NoError(t, err)
	assert.Equal(t, "Tue, 15 Nov 1994 08:12:31 GMT", w.Date)
}

func TestParseWarningTypeRejectsMalformed(t *testing.T) {
	_, err := ParseWarningType("not a warning")
	assert.Error(t, err)
}

func TestParseWarningTypesSplitsList(t *testing.T) {
	ws, err := ParseWarningTypes(`110 anderson/1.3.37 "stale", 199 proxy "misc"`)
	require.NoError(t, err)
	require.Len(t, ws, 2)
}

func TestWarningTypeString(t *testing.T) {
	w := WarningType{Code: 110, Agent: "anderson/1.3.37", Text: "stale"}
	assert.Equal(t, `110 anderson/1.3.37 "stale"`, w.String())
}

func TestParseViaTypeWithoutComment(t *testing.T) {
	v, err := ParseViaType("1.1 proxy.example")
	require.NoError(t, err)
	assert.Equal(t, "1.1", v.Protocol.Name)
	assert.Equal(t, "proxy.example", v.ReceivedBy)
	assert.Equal(t, "", v.Comment)
}

func TestParseViaTypeWithComment(t *testing.T) {
	v, err := ParseViaType("1.1 proxy.example (Apache/1.1)")
	require.NoError(t, err)
	assert.Equal(t, "proxy.example", v.ReceivedBy)
	assert.Equal(t, "(Apache/1.1)", v.Comment)
}

func TestParseViaTypeRejectsTooFewFields(t *testing.T) {
	_, err := ParseViaType("1.1")
	assert.Error(t, err)
}

func TestParseViaTypesSplitsCommaList(t *testing.T) {
	vs, err := ParseViaTypes("1.0 fred, 1.1 example.com")
	require.NoError(t, err)
	require.Len(t, vs, 2)
	assert.Equal(t, "fred", vs[0].ReceivedBy)
	assert.Equal(t, "example.com", vs[1].ReceivedBy)
}
