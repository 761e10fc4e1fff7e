package classir

import (
	"github.com/xsdforge/xgen/wsdl"
	"github.com/xsdforge/xgen/xsd"
)

// Parser parses a set of source documents into the flat Class list a
// Container is seeded with. XSDParser and WSDLParser are the two
// implementations this module ships.
type Parser interface {
	Parse(docs ...[]byte) ([]*Class, error)
}

// Emitter renders a Class list into generated source, using adapter to
// decide the binding-model shape it targets.
type Emitter interface {
	Emit(classes []*Class, adapter ClassType) ([]byte, error)
}

// XSDParser implements Parser for raw XML Schema documents.
type XSDParser struct{}

// Parse parses docs as XML Schema documents and builds a Class for
// every type any of them define.
func (XSDParser) Parse(docs ...[]byte) ([]*Class, error) {
	schemas, err := xsd.Parse(docs...)
	if err != nil {
		return nil, err
	}
	return FromSchema(schemas...), nil
}

// WSDLParser implements Parser for WSDL documents, building classes
// from the XML Schema types embedded in each document's <types>
// section.
type WSDLParser struct{}

// Parse parses each of docs as a standalone WSDL document and builds a
// Class for every type defined by its embedded schemas.
func (WSDLParser) Parse(docs ...[]byte) ([]*Class, error) {
	var schemas []xsd.Schema
	for _, doc := range docs {
		def, err := wsdl.Parse(doc)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, def.Schemas()...)
	}
	return FromSchema(schemas...), nil
}
