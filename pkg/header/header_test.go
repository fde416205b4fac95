package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListGetAndGetAll(t *testing.T) {
	l := List{{Name: "X-A", Value: "1"}, {Name: "x-a", Value: "2"}, {Name: "X-B", Value: "3"}}

	v, ok := l.Get("X-A")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	assert.Equal(t, []string{"1", "2"}, l.GetAll("x-a"))

	_, ok = l.Get("missing")
	assert.False(t, ok)
}

func TestListGetFlatFlattensRepeatedAndCommaJoined(t *testing.T) {
	l := List{
		{Name: "Accept-Encoding", Value: "gzip, deflate"},
		{Name: "Accept-Encoding", Value: "br"},
	}
	assert.Equal(t, []string{"gzip", "deflate", "br"}, l.GetFlat("Accept-Encoding"))
}

func TestListSetReplacesAllOccurrencesAtFirstPosition(t *testing.T) {
	l := List{{Name: "A", Value: "1"}, {Name: "B", Value: "2"}, {Name: "A", Value: "3"}}
	out := l.Set("A", "9")
	assert.Equal(t, List{{Name: "A", Value: "9"}, {Name: "B", Value: "2"}}, out)
}

func TestListSetAppendsWhenAbsent(t *testing.T) {
	l := List{{Name: "A", Value: "1"}}
	out := l.Set("C", "5")
	assert.Equal(t, List{{Name: "A", Value: "1"}, {Name: "C", Value: "5"}}, out)
}

func TestListRemove(t *testing.T) {
	l := List{{Name: "A", Value: "1"}, {Name: "B", Value: "2"}, {Name: "a", Value: "3"}}
	out := l.Remove("a")
	assert.Equal(t, List{{Name: "B", Value: "2"}}, out)
}

func TestListPutReplacesInPlaceAndAppendsNew(t *testing.T) {
	l := List{{Name: "Host", Value: "old"}, {Name: "Accept", Value: "*/*"}}
	out := l.Put(Header{Name: "Host", Value: "new"}, Header{Name: "User-Agent", Value: "ua"})
	assert.Equal(t, List{
		{Name: "Host", Value: "new"},
		{Name: "Accept", Value: "*/*"},
		{Name: "User-Agent", Value: "ua"},
	}, out)
}

func TestListCloneIsIndependent(t *testing.T) {
	l := List{{Name: "A", Value: "1"}}
	clone := l.Clone()
	clone[0].Value = "2"
	assert.Equal(t, "1", l[0].Value)
}

func TestListHas(t *testing.T) {
	l := List{{Name: "Content-Length", Value: "5"}}
	assert.True(t, l.Has("content-length"))
	assert.False(t, l.Has("Content-Type"))
}
