package classir

import "regexp"

// Tag records which XSD/WSDL construct produced a Class. It is used for
// emission policy decisions and as a tie-break when two Classes share a
// QName (invariant 1: no two Classes share the same (QName, Tag) once
// the merge pass has run).
type Tag int

const (
	// TagElement is produced by an <xs:element> declaration.
	TagElement Tag = iota
	// TagComplexType is produced by an <xs:complexType> declaration.
	TagComplexType
	// TagSimpleType is produced by an <xs:simpleType> declaration.
	TagSimpleType
	// TagAttributeGroup is produced by an <xs:attributeGroup> declaration.
	TagAttributeGroup
	// TagGroup is produced by an <xs:group> declaration.
	TagGroup
	// TagBindingMessage is produced while merging a WSDL binding's
	// message part, see wsdl.BindingMessage.
	TagBindingMessage
)

func (t Tag) String() string {
	switch t {
	case TagElement:
		return "Element"
	case TagComplexType:
		return "ComplexType"
	case TagSimpleType:
		return "SimpleType"
	case TagAttributeGroup:
		return "AttributeGroup"
	case TagGroup:
		return "Group"
	case TagBindingMessage:
		return "BindingMessage"
	default:
		return "Unknown"
	}
}

// Status records a Class's position in the transform lifecycle.
// Transitions only ever move forward: Raw -> Processing -> Processed ->
// Flattened. A Class is never demoted (invariant 4).
type Status int

const (
	// StatusRaw is the status every Class has when the parser hands it
	// to a Container; no transform has touched it yet.
	StatusRaw Status = iota
	// StatusProcessing marks a Class currently inside ProcessClass,
	// guarding against re-entrant processing of the same Class.
	StatusProcessing
	// StatusProcessed marks a Class whose transforms have all run.
	StatusProcessed
	// StatusFlattened marks a Class that a transform pass inlined into
	// another Class; the pass removes it from the Container with
	// Container.Remove, and it no longer contributes its own declaration.
	StatusFlattened
)

func (s Status) String() string {
	switch s {
	case StatusRaw:
		return "Raw"
	case StatusProcessing:
		return "Processing"
	case StatusProcessed:
		return "Processed"
	case StatusFlattened:
		return "Flattened"
	default:
		return "Unknown"
	}
}

// AttrType is a reference, by QName, to the type of an Attribute. A
// single Attribute can hold more than one AttrType when the underlying
// schema expresses a union.
type AttrType struct {
	Qname QName
	// Native is true when Qname identifies an XSD primitive rather
	// than another Class in the Container.
	Native bool
	// Forward is true when this reference is expected to resolve to
	// an inner class declared somewhere in the referencing Class's own
	// ancestor chain (anonymous types declared after their use).
	Forward bool
	// Circular is true once the "resolve forward references" pass has
	// determined this reference closes a cycle back to one of its own
	// ancestors.
	Circular bool
	// Substituted is true when this reference was added by the
	// "merge substitution groups" pass rather than appearing directly
	// in the schema.
	Substituted bool
}

// Restriction carries the value-space narrowing facets XSD allows on a
// simple type or attribute: length bounds, numeric bounds, pattern, and
// digit counts. Only facets useful for generating client code are kept;
// this is not a validating representation.
type Restriction struct {
	Length, MinLength, MaxLength     *int
	MinInclusive, MaxInclusive       *string
	MinExclusive, MaxExclusive       *string
	TotalDigits, FractionDigits      *int
	Pattern                          *regexp.Regexp
	Required                         bool
	Nillable                         bool
	MinOccurs, MaxOccurs             int
	Sequence                         bool // true: ordered sequence, false: unordered set
}

// Attribute is a single field on a Class: either an XSD attribute, an
// element, character data, a wildcard, or an attribute-map ("attrs" in
// xsdata parlance).
type Attribute struct {
	Name, LocalName, Namespace string
	Tag                        AttrKind
	Types                      []AttrType
	Choices                    []*Attribute
	Default                    string
	HasDefault                 bool
	Fixed                      bool
	Restrictions               Restriction
	Meta                       map[string]string
}

// AttrKind distinguishes the XSD/WSDL construct an Attribute came from.
type AttrKind int

const (
	AttrElement AttrKind = iota
	AttrAttribute
	AttrText
	AttrWildcard
	AttrAttributes // attribute wildcard, bound to a map
	AttrIgnore
	// AttrChoiceGroup marks a synthetic attribute used to hold the
	// widened set of alternatives for a substitution group head; it
	// never corresponds to an XSD construct on its own.
	AttrChoiceGroup
)

// IsOptional reports whether this field may be entirely absent.
func (a *Attribute) IsOptional() bool {
	return !a.Restrictions.Required && a.Restrictions.MinOccurs == 0
}

// IsPlural reports whether this field may repeat.
func (a *Attribute) IsPlural() bool {
	return a.Restrictions.MaxOccurs > 1 || a.Restrictions.MaxOccurs < 0
}

// ExtensionKind distinguishes extension from restriction, the two ways
// XSD complex types derive from a base type.
type ExtensionKind int

const (
	ExtensionDerives ExtensionKind = iota
	ExtensionRestricts
)

// Extension is a base-class reference, by QName, plus the marker that
// says whether the Class extends or restricts it.
type Extension struct {
	Qname QName
	Kind  ExtensionKind
}

// Class is the IR's node type: a named, typed, possibly nested record
// with attributes, inner classes, and inheritance links. See spec §3.1
// for the full field-by-field contract.
type Class struct {
	Qname    QName
	Tag      Tag
	Status   Status
	Abstract bool
	Mixed    bool
	Nillable bool

	Namespace string
	Location  string

	Attrs         []*Attribute
	Extensions    []Extension
	Inner         []*Class
	Parent        *Class
	Substitutions map[QName]struct{}
	Meta          map[string]string

	restriction *ClassRestriction
}

// NewClass builds a Class with status Raw and empty, non-nil
// collections, so callers never need a nil check before appending.
func NewClass(qname QName, tag Tag) *Class {
	return &Class{
		Qname:         qname,
		Tag:           tag,
		Status:        StatusRaw,
		Substitutions: make(map[QName]struct{}),
		Meta:          make(map[string]string),
	}
}

// AddInner appends a nested class and fixes up its Parent back-pointer,
// preserving invariant 5 (inner-class closure). Inner classes are never
// separately inserted at the top level of a Container.
func (c *Class) AddInner(inner *Class) {
	inner.Parent = c
	c.Inner = append(c.Inner, inner)
}

// IsComplex reports whether this Class was produced by a complexType or
// element-with-complex-content declaration -- i.e. it has attributes,
// elements, or extends/restricts another complex type.
func (c *Class) IsComplex() bool {
	switch c.Tag {
	case TagComplexType, TagElement:
		return len(c.Attrs) > 0 || len(c.Extensions) > 0 || c.Mixed
	default:
		return false
	}
}

// IsSimple is the complement of IsComplex for SimpleType-tagged classes.
func (c *Class) IsSimple() bool {
	return c.Tag == TagSimpleType
}

// IsEnumeration reports whether every attribute on this Class represents
// an enumeration member, i.e. the "flatten enumerations" pass has pushed
// restriction Enum facets into attrs of kind AttrText with fixed values.
func (c *Class) IsEnumeration() bool {
	if c.Tag != TagSimpleType || len(c.Attrs) == 0 {
		return false
	}
	for _, a := range c.Attrs {
		if !a.Fixed {
			return false
		}
	}
	return true
}

// IsElement reports whether this Class corresponds to a top-level XSD
// element declaration.
func (c *Class) IsElement() bool {
	return c.Tag == TagElement
}

// ShouldGenerate is the per-class opt-out used by Container.FilterClasses.
// A Class can be excluded from code generation by setting
// Meta["skip-generate"] to any non-empty value -- the hook filter
// functions (analogous to xsdgen.Config.filterTypes) use this to mark
// classes that matched a user-supplied exclusion pattern.
func (c *Class) ShouldGenerate() bool {
	return c.Meta["skip-generate"] == ""
}

// TargetTypes returns the flattened, de-duplicated set of QNames this
// Class depends on: every attribute type reference plus every
// extension's base type, not including inner classes (which are
// resolved through the parent chain, not the Container).
func (c *Class) TargetTypes() []QName {
	seen := make(map[QName]struct{})
	var result []QName
	push := func(q QName) {
		if _, ok := seen[q]; !ok {
			seen[q] = struct{}{}
			result = append(result, q)
		}
	}
	for _, attr := range c.Attrs {
		for _, t := range attr.Types {
			push(t.Qname)
		}
		for _, choice := range attr.Choices {
			for _, t := range choice.Types {
				push(t.Qname)
			}
		}
	}
	for _, ext := range c.Extensions {
		push(ext.Qname)
	}
	return result
}

// ParentMap walks the Parent chain of an inner class back to its
// top-level root, returning the chain starting at the root and ending
// at c itself.
func (c *Class) ParentMap() []*Class {
	var chain []*Class
	for cur := c; cur != nil; cur = cur.Parent {
		chain = append([]*Class{cur}, chain...)
	}
	return chain
}
