package classir

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xsdforge/xgen/xsd"
)

func TestFromSchemaBuildsComplexTypeWithElementsAndAttributes(t *testing.T) {
	widgetName := xml.Name{Space: "urn:test", Local: "Widget"}
	ct := &xsd.ComplexType{
		Name: widgetName,
		Elements: []xsd.Element{
			{Name: xml.Name{Local: "label"}, Type: xsd.String, Optional: true},
			{Name: xml.Name{Local: "tags"}, Type: xsd.String, Plural: true, Optional: true},
		},
		Attributes: []xsd.Attribute{
			{Name: xml.Name{Local: "id"}, Type: xsd.Int},
		},
	}

	classes := FromSchema(xsd.Schema{
		TargetNS: "urn:test",
		Types:    map[xml.Name]xsd.Type{widgetName: ct},
	})

	require.Len(t, classes, 1)
	c := classes[0]
	assert.Equal(t, FromXMLName(widgetName), c.Qname)
	assert.Equal(t, TagComplexType, c.Tag)
	require.Len(t, c.Attrs, 3)

	label := c.Attrs[0]
	assert.Equal(t, "label", label.Name)
	assert.Equal(t, AttrElement, label.Tag)
	assert.False(t, label.Restrictions.Required)
	assert.Equal(t, 1, label.Restrictions.MaxOccurs)

	tags := c.Attrs[1]
	assert.Equal(t, -1, tags.Restrictions.MaxOccurs)

	id := c.Attrs[2]
	assert.Equal(t, AttrAttribute, id.Tag)
	assert.True(t, id.Types[0].Native)
	assert.Equal(t, xsd.Int.Name().Local, id.Types[0].Qname.Local)
}

func TestFromSchemaMarksWildcardElements(t *testing.T) {
	name := xml.Name{Space: "urn:test", Local: "Any"}
	ct := &xsd.ComplexType{
		Name: name,
		Elements: []xsd.Element{
			{Name: xml.Name{Local: "any"}, Wildcard: true, Optional: true},
		},
	}
	classes := FromSchema(xsd.Schema{Types: map[xml.Name]xsd.Type{name: ct}})
	require.Len(t, classes, 1)
	require.Len(t, classes[0].Attrs, 1)
	assert.Equal(t, AttrWildcard, classes[0].Attrs[0].Tag)
}

func TestFromSchemaRecordsExtensionToNamedBase(t *testing.T) {
	baseName := xml.Name{Space: "urn:test", Local: "Base"}
	derivedName := xml.Name{Space: "urn:test", Local: "Derived"}
	base := &xsd.ComplexType{Name: baseName}
	derived := &xsd.ComplexType{Name: derivedName, Base: base, Extends: true}

	classes := FromSchema(xsd.Schema{Types: map[xml.Name]xsd.Type{
		baseName:    base,
		derivedName: derived,
	}})

	require.Len(t, classes, 2)
	var derivedClass *Class
	for _, c := range classes {
		if c.Qname.Local == "Derived" {
			derivedClass = c
		}
	}
	require.NotNil(t, derivedClass)
	require.Len(t, derivedClass.Extensions, 1)
	assert.Equal(t, "Base", derivedClass.Extensions[0].Qname.Local)
	assert.Equal(t, ExtensionDerives, derivedClass.Extensions[0].Kind)
}

func TestFromSchemaRecordsExtensionToBuiltinBase(t *testing.T) {
	name := xml.Name{Space: "urn:test", Local: "Padded"}
	ct := &xsd.ComplexType{Name: name, Base: xsd.String, Extends: true}

	classes := FromSchema(xsd.Schema{Types: map[xml.Name]xsd.Type{name: ct}})
	require.Len(t, classes, 1)
	require.Len(t, classes[0].Extensions, 1)
	assert.Equal(t, xsd.String.Name().Local, classes[0].Extensions[0].Qname.Local)
}

func TestFromSchemaSkipsBuiltinTypes(t *testing.T) {
	classes := FromSchema(xsd.Schema{Types: map[xml.Name]xsd.Type{
		{Local: "ignored"}: xsd.String,
	}})
	assert.Empty(t, classes)
}

func TestFromSchemaSimpleTypeCarriesEnum(t *testing.T) {
	name := xml.Name{Space: "urn:test", Local: "Color"}
	st := &xsd.SimpleType{
		Name: name,
		Restriction: xsd.Restriction{
			Enum: []string{"RED", "GREEN", "BLUE"},
		},
	}
	classes := FromSchema(xsd.Schema{Types: map[xml.Name]xsd.Type{name: st}})
	require.Len(t, classes, 1)
	assert.Equal(t, TagSimpleType, classes[0].Tag)
	assert.Equal(t, []string{"RED", "GREEN", "BLUE"}, classes[0].Restrictions().Enum)
}

func TestFromSchemaDeduplicatesSharedType(t *testing.T) {
	sharedName := xml.Name{Space: "urn:test", Local: "Shared"}
	shared := &xsd.ComplexType{Name: sharedName}
	aName := xml.Name{Space: "urn:test", Local: "A"}
	bName := xml.Name{Space: "urn:test", Local: "B"}
	a := &xsd.ComplexType{Name: aName, Base: shared, Extends: true}
	b := &xsd.ComplexType{Name: bName, Base: shared, Extends: true}

	classes := FromSchema(xsd.Schema{Types: map[xml.Name]xsd.Type{
		sharedName: shared,
		aName:      a,
		bName:      b,
	}})

	// shared, a, b -- exactly one Class for "Shared" regardless of how
	// many derived types reference it.
	var sharedCount int
	for _, c := range classes {
		if c.Qname.Local == "Shared" {
			sharedCount++
		}
	}
	assert.Equal(t, 1, sharedCount)
	assert.Len(t, classes, 3)
}
