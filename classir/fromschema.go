package classir

import (
	"encoding/xml"
	"sort"

	"github.com/xsdforge/xgen/xsd"
)

// FromSchema implements the parser/IR boundary of spec §6: it walks the
// xsd package's low-level Type tree (Element/ComplexType/SimpleType/
// Builtin) for one or more parsed Schemas and produces the flat list of
// Raw Classes a Container is seeded with. Native XSD types never
// produce a Class of their own; references to them are recorded as
// AttrType values with Native set.
func FromSchema(schemas ...xsd.Schema) []*Class {
	b := &schemaBuilder{seen: make(map[xsd.Type]*Class)}
	for _, s := range schemas {
		for _, name := range sortedTypeNames(s.Types) {
			b.classFor(s.Types[name])
		}
	}
	return b.result
}

// sortedTypeNames returns the keys of types sorted by namespace then
// local name, so Class insertion order doesn't depend on map iteration.
func sortedTypeNames(types map[xml.Name]xsd.Type) []xml.Name {
	keys := make([]xml.Name, 0, len(types))
	for name := range types {
		keys = append(keys, name)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Space != keys[j].Space {
			return keys[i].Space < keys[j].Space
		}
		return keys[i].Local < keys[j].Local
	})
	return keys
}

type schemaBuilder struct {
	seen   map[xsd.Type]*Class
	result []*Class
}

func (b *schemaBuilder) classFor(t xsd.Type) *Class {
	if _, ok := t.(xsd.Builtin); ok {
		return nil
	}
	if c, ok := b.seen[t]; ok {
		return c
	}
	switch v := t.(type) {
	case *xsd.ComplexType:
		c := NewClass(FromXMLName(v.Name), TagComplexType)
		c.Abstract = v.Abstract
		c.Mixed = v.Mixed
		b.seen[t] = c
		b.result = append(b.result, c)
		b.fillComplexType(c, v)
		return c
	case *xsd.SimpleType:
		c := NewClass(FromXMLName(v.Name), TagSimpleType)
		b.seen[t] = c
		b.result = append(b.result, c)
		b.fillSimpleType(c, v)
		return c
	}
	return nil
}

func (b *schemaBuilder) fillComplexType(c *Class, t *xsd.ComplexType) {
	if t.Extends {
		if base := b.attrTypeFor(t.Base); base != nil {
			c.Extensions = append(c.Extensions, Extension{Qname: base.Qname, Kind: ExtensionDerives})
		} else if bt, ok := t.Base.(xsd.Builtin); ok {
			c.Extensions = append(c.Extensions, Extension{Qname: FromXMLName(bt.Name()), Kind: ExtensionDerives})
		}
	} else if t.Base != nil {
		if base := b.attrTypeFor(t.Base); base != nil {
			c.Extensions = append(c.Extensions, Extension{Qname: base.Qname, Kind: ExtensionRestricts})
		}
	}
	for _, el := range t.Elements {
		attr := &Attribute{
			Name:      el.Name.Local,
			LocalName: el.Name.Local,
			Namespace: el.Name.Space,
			Tag:       AttrElement,
			Default:   el.Default,
		}
		if el.Wildcard {
			attr.Tag = AttrWildcard
		}
		attr.Restrictions.Required = !el.Optional
		attr.Restrictions.Nillable = el.Nillable
		if el.Plural {
			attr.Restrictions.MaxOccurs = -1
		} else {
			attr.Restrictions.MaxOccurs = 1
		}
		attr.Types = append(attr.Types, b.attrTypeRefFor(el.Type))
		c.Attrs = append(c.Attrs, attr)
	}
	for _, at := range t.Attributes {
		attr := &Attribute{
			Name:      at.Name.Local,
			LocalName: at.Name.Local,
			Namespace: at.Name.Space,
			Tag:       AttrAttribute,
			Default:   at.Default,
		}
		attr.Restrictions.Required = !at.Optional
		attr.Types = append(attr.Types, b.attrTypeRefFor(at.Type))
		c.Attrs = append(c.Attrs, attr)
	}
}

func (b *schemaBuilder) fillSimpleType(c *Class, t *xsd.SimpleType) {
	if len(t.Restriction.Enum) > 0 {
		c.Restrictions().Enum = append([]string(nil), t.Restriction.Enum...)
	}
	if t.Base != nil {
		if base := b.attrTypeFor(t.Base); base != nil {
			c.Extensions = append(c.Extensions, Extension{Qname: base.Qname, Kind: ExtensionDerives})
		} else if bt, ok := t.Base.(xsd.Builtin); ok {
			c.Extensions = append(c.Extensions, Extension{Qname: FromXMLName(bt.Name()), Kind: ExtensionDerives})
		}
	}
}

// attrTypeFor resolves a non-builtin xsd.Type to the Class this builder
// has made (or will make) for it, for wiring up Extensions.
func (b *schemaBuilder) attrTypeFor(t xsd.Type) *Class {
	if t == nil {
		return nil
	}
	if _, ok := t.(xsd.Builtin); ok {
		return nil
	}
	return b.classFor(t)
}

// attrTypeRefFor builds the AttrType reference an Attribute records for
// its type, without forcing construction of a Class for builtins.
func (b *schemaBuilder) attrTypeRefFor(t xsd.Type) AttrType {
	if t == nil {
		return AttrType{}
	}
	if bt, ok := t.(xsd.Builtin); ok {
		return AttrType{Qname: FromXMLName(bt.Name()), Native: true}
	}
	c := b.classFor(t)
	if c == nil {
		return AttrType{}
	}
	return AttrType{Qname: c.Qname}
}
