package classir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenEnumerationsPushesFixedTextAttrs(t *testing.T) {
	ctr := NewContainer()
	DefaultPasses(ctr)

	c := NewClass(NewQName("", "Color"), TagSimpleType)
	c.Restrictions().Enum = []string{"RED", "BLUE"}
	ctr.Extend([]*Class{c})

	ctr.ProcessClass(c)

	require.Len(t, c.Attrs, 2)
	assert.Equal(t, "RED", c.Attrs[0].Name)
	assert.True(t, c.Attrs[0].Fixed)
	assert.True(t, c.IsEnumeration())
}

func TestFlattenExtensionsAbsorbsSimpleBase(t *testing.T) {
	ctr := NewContainer()
	ctr.Register("flatten-extensions", flattenExtensions)

	base := NewClass(NewQName("", "Base"), TagSimpleType)
	base.Attrs = []*Attribute{{Name: "value", Tag: AttrText}}

	derived := NewClass(NewQName("", "Derived"), TagComplexType)
	derived.Extensions = []Extension{{Qname: base.Qname, Kind: ExtensionDerives}}

	ctr.Extend([]*Class{base, derived})
	ctr.ProcessClass(derived)

	assert.Empty(t, derived.Extensions)
	require.Len(t, derived.Attrs, 1)
	assert.Equal(t, "Base_value", derived.Attrs[0].Name)
}

func TestFlattenExtensionsKeepsComplexBase(t *testing.T) {
	ctr := NewContainer()
	ctr.Register("flatten-extensions", flattenExtensions)

	base := NewClass(NewQName("", "Base"), TagComplexType)
	base.Attrs = []*Attribute{{Name: "x", Tag: AttrElement}}

	derived := NewClass(NewQName("", "Derived"), TagComplexType)
	derived.Extensions = []Extension{{Qname: base.Qname, Kind: ExtensionDerives}}

	ctr.Extend([]*Class{base, derived})
	ctr.ProcessClass(derived)

	require.Len(t, derived.Extensions, 1)
	assert.Empty(t, derived.Attrs)
}

func TestResolveForwardReferencesMarksCircular(t *testing.T) {
	ctr := NewContainer()
	ctr.Register("resolve-forward-references", resolveForwardReferences)

	root := NewClass(NewQName("", "Tree"), TagComplexType)
	root.Attrs = []*Attribute{
		{
			Name: "child",
			Tag:  AttrElement,
			Types: []AttrType{
				{Qname: root.Qname, Forward: true},
			},
		},
	}
	ctr.Extend([]*Class{root})
	ctr.ProcessClass(root)

	assert.True(t, root.Attrs[0].Types[0].Circular)
}

func TestResolveForwardReferencesResolvesInnerClass(t *testing.T) {
	ctr := NewContainer()
	ctr.Register("resolve-forward-references", resolveForwardReferences)

	innerQName := NewQName("", "Inner")
	root := NewClass(NewQName("", "Root"), TagComplexType)
	inner := NewClass(innerQName, TagComplexType)
	root.AddInner(inner)
	root.Attrs = []*Attribute{
		{
			Name:  "field",
			Tag:   AttrElement,
			Types: []AttrType{{Qname: innerQName, Forward: true}},
		},
	}

	ctr.Extend([]*Class{root})
	ctr.ProcessClass(root)

	assert.False(t, root.Attrs[0].Types[0].Forward)
	assert.False(t, root.Attrs[0].Types[0].Circular)
}

func TestSanitizeNamesDeduplicatesAndEscapesKeywords(t *testing.T) {
	ctr := NewContainer()
	ctr.Register("sanitize-names", sanitizeNames)

	c := NewClass(NewQName("", "Thing"), TagComplexType)
	c.Attrs = []*Attribute{
		{Name: "type", Tag: AttrElement},
		{Name: "id", Tag: AttrElement},
		{Name: "id", Tag: AttrElement},
	}
	ctr.Extend([]*Class{c})
	ctr.ProcessClass(c)

	assert.NotEqual(t, "type", c.Attrs[0].Name)
	assert.Equal(t, "id", c.Attrs[1].Name)
	assert.Equal(t, "id1", c.Attrs[2].Name)
}

func TestSanitizeNamesUsesAdapterReservedWord(t *testing.T) {
	ctr := NewContainer()
	ctr.Register("sanitize-names", sanitizeNames)
	ctr.SetReservedWord(func(s string) bool { return s == "forbidden" })

	c := NewClass(NewQName("", "Thing"), TagComplexType)
	c.Attrs = []*Attribute{{Name: "forbidden", Tag: AttrElement}}
	ctr.Extend([]*Class{c})
	ctr.ProcessClass(c)

	assert.NotEqual(t, "forbidden", c.Attrs[0].Name)
}

func TestMergeSubstitutionGroupsWidensHeadChoices(t *testing.T) {
	ctr := NewContainer()
	ctr.Register("merge-substitution-groups", mergeSubstitutionGroups)

	memberQName := NewQName("", "Member")
	member := NewClass(memberQName, TagElement)

	head := NewClass(NewQName("", "Head"), TagElement)
	head.Substitutions = map[QName]struct{}{memberQName: {}}

	ctr.Extend([]*Class{member, head})
	ctr.ProcessClass(head)

	choiceAttr := headChoiceAttr(head)
	require.Len(t, choiceAttr.Choices, 1)
	assert.Equal(t, "Member", choiceAttr.Choices[0].Name)
}

func TestMergeSubstitutionGroupsWarnsOnMissingMember(t *testing.T) {
	ctr := NewContainer()
	ctr.Register("merge-substitution-groups", mergeSubstitutionGroups)

	head := NewClass(NewQName("", "Head"), TagElement)
	head.Substitutions = map[QName]struct{}{NewQName("", "Ghost"): {}}
	ctr.Extend([]*Class{head})
	ctr.ProcessClass(head)

	require.Len(t, ctr.Warnings(), 1)
	assert.Contains(t, ctr.Warnings()[0].Message, "not found")
}

func TestCalculateFieldTypesCollapsesUniformNativeUnion(t *testing.T) {
	ctr := NewContainer()
	ctr.Register("calculate-field-types", calculateFieldTypes)

	stringQ := NewQName("http://www.w3.org/2001/XMLSchema", "string")
	c := NewClass(NewQName("", "Thing"), TagComplexType)
	c.Attrs = []*Attribute{
		{
			Name: "value",
			Tag:  AttrElement,
			Types: []AttrType{
				{Qname: stringQ, Native: true},
				{Qname: stringQ, Native: true},
			},
		},
	}
	ctr.Extend([]*Class{c})
	ctr.ProcessClass(c)

	assert.Len(t, c.Attrs[0].Types, 1)
}

func TestCalculateFieldTypesLeavesMixedUnionAlone(t *testing.T) {
	ctr := NewContainer()
	ctr.Register("calculate-field-types", calculateFieldTypes)

	c := NewClass(NewQName("", "Thing"), TagComplexType)
	c.Attrs = []*Attribute{
		{
			Name: "value",
			Tag:  AttrElement,
			Types: []AttrType{
				{Qname: NewQName("http://www.w3.org/2001/XMLSchema", "string"), Native: true},
				{Qname: NewQName("http://www.w3.org/2001/XMLSchema", "int"), Native: true},
			},
		},
	}
	ctr.Extend([]*Class{c})
	ctr.ProcessClass(c)

	assert.Len(t, c.Attrs[0].Types, 2)
}

func TestDesignateDependencyOrderRanksBaseBeforeDerived(t *testing.T) {
	ctr := NewContainer()
	ctr.Register("designate-abstract-and-dependency-order", designateDependencyOrder)

	base := NewClass(NewQName("", "Base"), TagComplexType)
	derived := NewClass(NewQName("", "Derived"), TagComplexType)
	derived.Extensions = []Extension{{Qname: base.Qname, Kind: ExtensionDerives}}

	ctr.Extend([]*Class{base, derived})
	ctr.ProcessClass(base)
	ctr.ProcessClass(derived)

	baseRank := base.Meta["dependency-rank"]
	derivedRank := derived.Meta["dependency-rank"]
	require.NotEmpty(t, baseRank)
	require.NotEmpty(t, derivedRank)
	assert.Less(t, baseRank, derivedRank)
}

func TestDefaultPassesRegistersAllSevenInOrder(t *testing.T) {
	ctr := NewContainer()
	DefaultPasses(ctr)
	require.Len(t, ctr.passes, 7)
	assert.Equal(t, "flatten-enumerations", ctr.passes[0].name)
	assert.Equal(t, "designate-abstract-and-dependency-order", ctr.passes[6].name)
}
