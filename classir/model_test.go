package classir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClassHasEmptyNonNilCollections(t *testing.T) {
	c := NewClass(NewQName("urn:test", "Widget"), TagComplexType)
	assert.Equal(t, StatusRaw, c.Status)
	assert.NotNil(t, c.Substitutions)
	assert.NotNil(t, c.Meta)
	assert.Empty(t, c.Attrs)
}

func TestAddInnerSetsParentBackpointer(t *testing.T) {
	outer := NewClass(NewQName("urn:test", "Outer"), TagComplexType)
	inner := NewClass(QName{}, TagComplexType)
	outer.AddInner(inner)

	assert.Same(t, outer, inner.Parent)
	assert.Len(t, outer.Inner, 1)
}

func TestIsComplex(t *testing.T) {
	withAttrs := NewClass(NewQName("", "A"), TagComplexType)
	withAttrs.Attrs = []*Attribute{{Name: "x", Tag: AttrElement}}
	assert.True(t, withAttrs.IsComplex())

	withExt := NewClass(NewQName("", "B"), TagElement)
	withExt.Extensions = []Extension{{Qname: NewQName("", "Base")}}
	assert.True(t, withExt.IsComplex())

	mixedOnly := NewClass(NewQName("", "C"), TagComplexType)
	mixedOnly.Mixed = true
	assert.True(t, mixedOnly.IsComplex())

	empty := NewClass(NewQName("", "D"), TagComplexType)
	assert.False(t, empty.IsComplex())

	simple := NewClass(NewQName("", "E"), TagSimpleType)
	simple.Attrs = []*Attribute{{Name: "x", Tag: AttrText}}
	assert.False(t, simple.IsComplex())
}

func TestIsEnumeration(t *testing.T) {
	enum := NewClass(NewQName("", "Color"), TagSimpleType)
	enum.Attrs = []*Attribute{
		{Name: "RED", Tag: AttrText, Fixed: true},
		{Name: "BLUE", Tag: AttrText, Fixed: true},
	}
	assert.True(t, enum.IsEnumeration())

	notFixed := NewClass(NewQName("", "Mixed"), TagSimpleType)
	notFixed.Attrs = []*Attribute{
		{Name: "RED", Tag: AttrText, Fixed: true},
		{Name: "value", Tag: AttrText, Fixed: false},
	}
	assert.False(t, notFixed.IsEnumeration())

	empty := NewClass(NewQName("", "Empty"), TagSimpleType)
	assert.False(t, empty.IsEnumeration())
}

func TestShouldGenerate(t *testing.T) {
	c := NewClass(NewQName("", "A"), TagComplexType)
	assert.True(t, c.ShouldGenerate())
	c.Meta["skip-generate"] = "excluded"
	assert.False(t, c.ShouldGenerate())
}

func TestTargetTypesDeduplicatesAndPreservesOrder(t *testing.T) {
	c := NewClass(NewQName("", "A"), TagComplexType)
	t1 := NewQName("urn:test", "T1")
	t2 := NewQName("urn:test", "T2")
	c.Attrs = []*Attribute{
		{Name: "x", Tag: AttrElement, Types: []AttrType{{Qname: t1}}},
		{Name: "y", Tag: AttrElement, Types: []AttrType{{Qname: t2}}},
		{Name: "z", Tag: AttrElement, Types: []AttrType{{Qname: t1}}},
	}
	c.Extensions = []Extension{{Qname: t2}}

	got := c.TargetTypes()
	assert.Equal(t, []QName{t1, t2}, got)
}

func TestTargetTypesIncludesChoices(t *testing.T) {
	c := NewClass(NewQName("", "A"), TagComplexType)
	alt := NewQName("urn:test", "Alt")
	c.Attrs = []*Attribute{
		{
			Name: "choice",
			Tag:  AttrChoiceGroup,
			Choices: []*Attribute{
				{Name: "alt", Tag: AttrElement, Types: []AttrType{{Qname: alt}}},
			},
		},
	}
	assert.Equal(t, []QName{alt}, c.TargetTypes())
}

func TestParentMapOrdersRootFirst(t *testing.T) {
	root := NewClass(NewQName("", "Root"), TagComplexType)
	mid := NewClass(QName{}, TagComplexType)
	leaf := NewClass(QName{}, TagComplexType)
	root.AddInner(mid)
	mid.AddInner(leaf)

	chain := leaf.ParentMap()
	assert.Same(t, root, chain[0])
	assert.Same(t, mid, chain[1])
	assert.Same(t, leaf, chain[2])
}

func TestIsOptionalAndIsPlural(t *testing.T) {
	opt := &Attribute{Restrictions: Restriction{MinOccurs: 0, MaxOccurs: 1}}
	assert.True(t, opt.IsOptional())
	assert.False(t, opt.IsPlural())

	required := &Attribute{Restrictions: Restriction{Required: true, MinOccurs: 1, MaxOccurs: 1}}
	assert.False(t, required.IsOptional())

	plural := &Attribute{Restrictions: Restriction{MinOccurs: 0, MaxOccurs: -1}}
	assert.True(t, plural.IsPlural())
}

func TestTagAndStatusString(t *testing.T) {
	assert.Equal(t, "Element", TagElement.String())
	assert.Equal(t, "ComplexType", TagComplexType.String())
	assert.Equal(t, "BindingMessage", TagBindingMessage.String())
	assert.Equal(t, "Unknown", Tag(99).String())

	assert.Equal(t, "Raw", StatusRaw.String())
	assert.Equal(t, "Flattened", StatusFlattened.String())
	assert.Equal(t, "Unknown", Status(99).String())
}
