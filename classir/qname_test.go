package classir

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClarkWithNamespace(t *testing.T) {
	q, err := ParseClark("{http://example.com/ns}Widget")
	require.NoError(t, err)
	assert.Equal(t, QName{Space: "http://example.com/ns", Local: "Widget"}, q)
}

func TestParseClarkWithoutNamespace(t *testing.T) {
	q, err := ParseClark("Widget")
	require.NoError(t, err)
	assert.Equal(t, QName{Local: "Widget"}, q)
}

func TestParseClarkMalformed(t *testing.T) {
	_, err := ParseClark("{unterminated")
	assert.Error(t, err)
}

func TestQNameStringRoundTripsClark(t *testing.T) {
	q := NewQName("http://example.com/ns", "Widget")
	assert.Equal(t, "{http://example.com/ns}Widget", q.String())

	back, err := ParseClark(q.String())
	require.NoError(t, err)
	assert.Equal(t, q, back)

	local := NewQName("", "Widget")
	assert.Equal(t, "Widget", local.String())
}

func TestFromXMLNameAndBack(t *testing.T) {
	name := xml.Name{Space: "urn:test", Local: "Thing"}
	q := FromXMLName(name)
	assert.Equal(t, QName{Space: "urn:test", Local: "Thing"}, q)
	assert.Equal(t, name, q.XMLName())
}

func TestQNameIsZero(t *testing.T) {
	assert.True(t, QName{}.IsZero())
	assert.False(t, NewQName("", "Widget").IsZero())
}

func TestQNameUsableAsMapKey(t *testing.T) {
	m := map[QName]int{
		NewQName("urn:a", "X"): 1,
		NewQName("urn:b", "X"): 2,
	}
	assert.Equal(t, 1, m[NewQName("urn:a", "X")])
	assert.Equal(t, 2, m[NewQName("urn:b", "X")])
}
