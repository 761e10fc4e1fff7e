package classir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupClassTypeReturnsRegisteredStructsAdapter(t *testing.T) {
	ct := LookupClassType("structs")
	require.NotNil(t, ct)
	_, ok := ct.(Structs)
	assert.True(t, ok)
}

func TestLookupClassTypeUnknownNameReturnsNil(t *testing.T) {
	assert.Nil(t, LookupClassType("no-such-adapter"))
}

type fakeClassType struct{ Structs }

func TestRegisterClassTypeAddsToRegistry(t *testing.T) {
	RegisterClassType("fake", fakeClassType{})
	defer delete(defaultRegistry.byName, "fake")

	got := LookupClassType("fake")
	require.NotNil(t, got)
	_, ok := got.(fakeClassType)
	assert.True(t, ok)
}

func TestStructsShapes(t *testing.T) {
	s := Structs{}
	any := s.AnyElementShape()
	assert.Equal(t, "AnyElement", any.TypeName)
	assert.Contains(t, any.Fields, "Attrs")

	derived := s.DerivedElementShape()
	assert.Equal(t, "DerivedElement", derived.TypeName)
	assert.Contains(t, derived.Fields, "Value")
}

func TestStructsIsModelAndVerifyModel(t *testing.T) {
	s := Structs{}
	c := NewClass(NewQName("", "Widget"), TagComplexType)
	assert.True(t, s.IsModel(c))
	assert.False(t, s.IsModel("not a class"))

	assert.NoError(t, s.VerifyModel(c))
	err := s.VerifyModel(42)
	require.Error(t, err)
	var xmlErr *XmlContextError
	assert.ErrorAs(t, err, &xmlErr)
}

func TestStructsReservedWord(t *testing.T) {
	s := Structs{}
	assert.True(t, s.ReservedWord("type"))
	assert.True(t, s.ReservedWord("range"))
	assert.False(t, s.ReservedWord("Widget"))
}

func TestStructsDefaultValue(t *testing.T) {
	s := Structs{}
	withDefault := FieldDescriptor{HasDefault: true, Default: "fallback-unused"}
	assert.Equal(t, "fallback-unused", s.DefaultValue(withDefault, "ignored"))

	withoutDefault := FieldDescriptor{HasDefault: false}
	assert.Equal(t, "fallback", s.DefaultValue(withoutDefault, "fallback"))
}

func TestStructsScoreObject(t *testing.T) {
	s := Structs{}
	assert.Equal(t, -1.0, s.ScoreObject(nil))
	assert.Equal(t, -1.0, s.ScoreObject(""))

	empty := NewClass(NewQName("", "Empty"), TagComplexType)
	assert.Equal(t, -1.0, s.ScoreObject(empty))

	withAttrs := NewClass(NewQName("", "Filled"), TagComplexType)
	withAttrs.Attrs = []*Attribute{
		{Name: "a", Default: "value"},
		{Name: "b", Default: ""},
	}
	assert.Equal(t, 1.0, s.ScoreObject(withAttrs))

	assert.Equal(t, 1.5, s.ScoreObject(42))
}
