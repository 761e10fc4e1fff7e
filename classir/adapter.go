package classir

import "strings"

// FieldDescriptor describes one field of a binding-model type, as
// reported by a ClassType adapter's Fields method, in declaration
// order honoring inheritance linearization.
type FieldDescriptor struct {
	Name         string
	HasDefault   bool
	Default      interface{}
	DefaultIsNil bool
}

// ElementShape describes the layout of an adapter's wildcard-bind or
// type-substitution wrapper record: the field names a generated
// wildcard/derived-element struct exposes, matching the shape of
// xsdata's AnyElement/DerivedElement generics (see SPEC_FULL.md,
// "Supplemented Features").
type ElementShape struct {
	TypeName string
	Fields   []string
}

// ClassType is the class-type adapter strategy of spec §4.7: it lets
// the generator target different binding shapes without the core IR or
// Container knowing anything about a specific target representation.
type ClassType interface {
	// AnyElementShape describes the wildcard-bind record type.
	AnyElementShape() ElementShape
	// DerivedElementShape describes the type-substitution wrapper.
	DerivedElementShape() ElementShape
	// Fields iterates field descriptors for typeName, in declaration
	// order, honoring inheritance linearization.
	Fields(typeName string) []FieldDescriptor
	// DefaultValue returns the default literal or default factory for
	// a field, or fallback if the field has none.
	DefaultValue(field FieldDescriptor, fallback interface{}) interface{}
	// IsModel recognizes whether a value is this adapter's binding
	// model shape.
	IsModel(value interface{}) bool
	// VerifyModel enforces that value is this adapter's binding model
	// shape, returning an *XmlContextError if not.
	VerifyModel(value interface{}) error
	// ReservedWord reports whether name collides with a keyword of the
	// adapter's target representation.
	ReservedWord(name string) bool
	// ScoreObject scores a binding model instance by its field values'
	// types, for disambiguating which candidate model a piece of
	// substituted content should parse into. Weights: empty -> -1,
	// nil -> 0, string -> 1.0, anything else -> 1.5.
	ScoreObject(value interface{}) float64
}

// ClassTypes is the string-keyed adapter registry of spec §4.7 and §9
// ("re-architect as an explicit registry"). Adapters are registered
// with RegisterClassType; the host environment is responsible for any
// plugin discovery (scanning a directory, reading a config file) that
// decides which registrations to make, not the registry itself.
type ClassTypes struct {
	byName map[string]ClassType
}

var defaultRegistry = &ClassTypes{byName: map[string]ClassType{
	"structs": Structs{},
}}

// RegisterClassType registers a ClassType adapter under name in the
// default registry.
func RegisterClassType(name string, ct ClassType) {
	defaultRegistry.byName[name] = ct
}

// LookupClassType returns the adapter registered under name, or nil if
// none was registered.
func LookupClassType(name string) ClassType {
	return defaultRegistry.byName[name]
}

// Structs is the built-in ClassType adapter: it describes plain Go
// struct types with encoding/xml struct tags, the shape the
// xsdgen/wsdlgen packages already emit.
type Structs struct{}

// AnyElementShape describes the struct xsdgen emits to bind an
// <xs:any> wildcard element, equivalent to xsdata's AnyElement.
func (Structs) AnyElementShape() ElementShape {
	return ElementShape{
		TypeName: "AnyElement",
		Fields:   []string{"XMLName", "Text", "Tail", "Children", "Attrs"},
	}
}

// DerivedElementShape describes the struct xsdgen emits to bind a
// type-substituted element (<b xsi:type="a">...), equivalent to
// xsdata's DerivedElement.
func (Structs) DerivedElementShape() ElementShape {
	return ElementShape{
		TypeName: "DerivedElement",
		Fields:   []string{"XMLName", "Value", "Type"},
	}
}

func (Structs) Fields(typeName string) []FieldDescriptor { return nil }

func (Structs) DefaultValue(field FieldDescriptor, fallback interface{}) interface{} {
	if field.HasDefault {
		return field.Default
	}
	return fallback
}

func (Structs) IsModel(value interface{}) bool {
	_, ok := value.(*Class)
	return ok
}

func (s Structs) VerifyModel(value interface{}) error {
	if !s.IsModel(value) {
		return &XmlContextError{Value: value}
	}
	return nil
}

// ReservedWord reports whether name is a Go keyword. Its keyword list
// is a copy of the one internal/gen.Sanitize checks.
func (Structs) ReservedWord(name string) bool {
	switch name {
	case "break", "default", "func", "interface", "select",
		"case", "defer", "go", "map", "struct",
		"chan", "else", "goto", "package", "switch",
		"const", "fallthrough", "if", "range", "type",
		"continue", "for", "import", "return", "var":
		return true
	}
	return false
}

// ScoreObject implements the heuristic of spec §4.7: -1 for an empty
// value (nil, a blank string, or a *Class with no Attrs). A *Class
// scores the sum over its Attrs' Default strings, 0 for an empty
// default and 1.0 otherwise; any other value scores as a single field
// (0 for "", 1.0 for another string, 1.5 for a non-string).
func (s Structs) ScoreObject(value interface{}) float64 {
	if isEmptyValue(value) {
		return -1
	}
	c, ok := value.(*Class)
	if !ok {
		return scoreScalar(value)
	}
	var total float64
	for _, attr := range c.Attrs {
		total += scoreScalar(attr.Default)
	}
	return total
}

func scoreScalar(value interface{}) float64 {
	switch v := value.(type) {
	case string:
		if v == "" {
			return 0
		}
		return 1.0
	case nil:
		return 0
	default:
		return 1.5
	}
}

func isEmptyValue(value interface{}) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	if c, ok := value.(*Class); ok {
		return c == nil || len(c.Attrs) == 0
	}
	return false
}
