// Package wsdl parses and merges Web Services Description Language
// documents.
//
// The wsdl package implements a parser for the subset of WSDL 1.1 that
// the xgen code generator needs: types, messages, port types, bindings,
// and services. It also implements the merge protocol that unifies a
// primary WSDL document with any number of imported documents into a
// single logical Definitions value.
package wsdl // import "github.com/xsdforge/xgen/wsdl"

import (
	"encoding/xml"
	"fmt"

	"github.com/xsdforge/xgen/xmltree"
	"github.com/xsdforge/xgen/xsd"
)

const (
	wsdlNS    = "http://schemas.xmlsoap.org/wsdl/"
	soapNS    = "http://schemas.xmlsoap.org/wsdl/soap/"
	httpNS    = "http://schemas.xmlsoap.org/wsdl/http/"
	mimeNS    = "http://schemas.xmlsoap.org/wsdl/mime/"
	soapencNS = "http://schemas.xmlsoap.org/soap/encoding/"
	soapenvNS = "http://schemas.xmlsoap.org/soap/envelope/"
	xsiNS     = "http://www.w3.org/2001/XMLSchema-instance"
	xsdNS     = "http://www.w3.org/2001/XMLSchema"
)

// DefinitionsValueError is raised by a WSDL lookup (Message, PortType,
// Binding, or Operation) for an unknown name. It is fatal: subsequent
// passes would otherwise dereference a missing value.
type DefinitionsValueError struct {
	Kind string
	Name string
}

func (e *DefinitionsValueError) Error() string {
	return fmt.Sprintf("wsdl: unknown %s name: %s", e.Kind, e.Name)
}

// AnyElement is a generic wildcard-bound record, used to hold the
// out-of-band extension elements an ExtensibleElement collects (e.g. a
// <soap:binding> child of a <binding> element) without this package
// needing to understand every WSDL transport binding in existence.
type AnyElement struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Content []byte     `xml:",innerxml"`
}

// Documentation holds the free-form <wsdl:documentation> children of a
// WsdlElement.
type Documentation struct {
	Elements []AnyElement `xml:",any"`
}

// WsdlElement is the field set common to every named WSDL construct:
// Message, PortType, Binding, Service, and Definitions itself.
type WsdlElement struct {
	Name          string
	Documentation Documentation
	Location      string
}

// ExtensibleElement is a WsdlElement that may carry additional,
// transport-specific child elements (SOAP/HTTP/MIME bindings and the
// like). Parse does not fill Extended; it holds only what a caller
// sets on it.
type ExtensibleElement struct {
	WsdlElement
	Extended []AnyElement
}

// ExtendedElements returns the out-of-band extension elements this
// element carries.
func (e *ExtensibleElement) ExtendedElements() []AnyElement {
	return e.Extended
}

// Types holds the XML Schema documents embedded in a WSDL's <types>
// section, in parse order.
type Types struct {
	Schemas       []xsd.Schema
	Documentation Documentation
}

// Import is a WSDL <import>: a namespace plus the location of the
// document that defines it.
type Import struct {
	Location  string
	Namespace string
}

// Part is one field of a Message: either a typed value (Type) or a
// reference to a top-level schema element (Element).
type Part struct {
	WsdlElement
	Type    xml.Name
	Element xml.Name
}

// Message is a WSDL <message>: a named list of Parts.
type Message struct {
	WsdlElement
	Parts []Part
}

// PortTypeMessage references a Message by name from within a
// PortTypeOperation's input or output.
type PortTypeMessage struct {
	WsdlElement
	Message string
}

// PortTypeOperation is one RPC signature within a PortType: an input
// message, an output message, and any number of fault messages.
type PortTypeOperation struct {
	WsdlElement
	Input  PortTypeMessage
	Output PortTypeMessage
	Faults []PortTypeMessage
}

// PortType is a WSDL <portType>: a named collection of abstract
// operations.
type PortType struct {
	ExtensibleElement
	Operations []PortTypeOperation
}

// FindOperation looks up one of this PortType's operations by name.
func (p *PortType) FindOperation(name string) (*PortTypeOperation, error) {
	for i := range p.Operations {
		if p.Operations[i].Name == name {
			return &p.Operations[i], nil
		}
	}
	return nil, &DefinitionsValueError{Kind: "PortTypeOperation", Name: name}
}

// BindingMessage is the transport-specific description of one message
// within a BindingOperation; its shape is entirely carried in Extended
// (e.g. a <soap:body> element), since transport bindings are out of
// scope for this package's own model.
type BindingMessage struct {
	ExtensibleElement
}

// BindingOperation binds one PortTypeOperation to a concrete transport.
type BindingOperation struct {
	ExtensibleElement
	Input  BindingMessage
	Output BindingMessage
	Faults []BindingMessage
}

// Binding is a WSDL <binding>: a concrete transport for a PortType.
type Binding struct {
	ExtensibleElement
	Type       string
	Operations []BindingOperation
}

// UniqueOperations returns this Binding's operations with duplicate
// names collapsed to their last occurrence, listed in the order each
// name first appears -- ported from xsdata's Binding.unique_operations.
func (b *Binding) UniqueOperations() []BindingOperation {
	byName := make(map[string]int)
	var order []string
	for i, op := range b.Operations {
		if _, ok := byName[op.Name]; !ok {
			order = append(order, op.Name)
		}
		byName[op.Name] = i
	}
	result := make([]BindingOperation, 0, len(order))
	for _, name := range order {
		result = append(result, b.Operations[byName[name]])
	}
	return result
}

// ServicePort is one <port> child of a Service: a binding bound to a
// concrete address (recorded in Extended, e.g. <soap:address
// location="...">).
type ServicePort struct {
	ExtensibleElement
	Binding string
}

// Service is a WSDL <service>: a named collection of ports.
type Service struct {
	WsdlElement
	Ports []ServicePort
}

// Definitions is the root of a parsed (and possibly merged) WSDL
// document.
type Definitions struct {
	ExtensibleElement
	TargetNamespace string
	Types           *Types
	Imports         []Import
	Messages        []Message
	PortTypes       []PortType
	Bindings        []Binding
	Services        []Service
}

// Schemas returns the XML Schema documents embedded in this
// Definitions' <types> section, or nil if there is none.
func (d *Definitions) Schemas() []xsd.Schema {
	if d.Types == nil {
		return nil
	}
	return d.Types.Schemas
}

// FindMessage looks up a Message by name.
func (d *Definitions) FindMessage(name string) (*Message, error) {
	for i := range d.Messages {
		if d.Messages[i].Name == name {
			return &d.Messages[i], nil
		}
	}
	return nil, &DefinitionsValueError{Kind: "Message", Name: name}
}

// FindPortType looks up a PortType by name. When more than one PortType
// shares a name (e.g. after a merge with a conflicting import), the
// first occurrence wins.
func (d *Definitions) FindPortType(name string) (*PortType, error) {
	for i := range d.PortTypes {
		if d.PortTypes[i].Name == name {
			return &d.PortTypes[i], nil
		}
	}
	return nil, &DefinitionsValueError{Kind: "PortType", Name: name}
}

// FindBinding looks up a Binding by name.
func (d *Definitions) FindBinding(name string) (*Binding, error) {
	for i := range d.Bindings {
		if d.Bindings[i].Name == name {
			return &d.Bindings[i], nil
		}
	}
	return nil, &DefinitionsValueError{Kind: "Binding", Name: name}
}

// FindOperation looks up a PortTypeOperation on the named PortType.
func (d *Definitions) FindOperation(portType, operation string) (*PortTypeOperation, error) {
	pt, err := d.FindPortType(portType)
	if err != nil {
		return nil, err
	}
	return pt.FindOperation(operation)
}

// Merge unifies source into d, in place:
//
//   - Types: schemas are concatenated, preserving parse order.
//   - Messages, PortTypes, Bindings, Services: appended; name clashes
//     are accepted, and the Find* lookups return the first occurrence
//     of a name (so entries from d win over clashing ones from source).
//   - Extended elements: appended untouched.
func (d *Definitions) Merge(source *Definitions) {
	if d.Types == nil {
		d.Types = source.Types
	} else if source.Types != nil {
		d.Types.Schemas = append(d.Types.Schemas, source.Types.Schemas...)
	}
	d.Messages = append(d.Messages, source.Messages...)
	d.PortTypes = append(d.PortTypes, source.PortTypes...)
	d.Bindings = append(d.Bindings, source.Bindings...)
	d.Services = append(d.Services, source.Services...)
	d.Extended = append(d.Extended, source.Extended...)
}

// Included returns the <import> elements of this Definitions, for a
// caller implementing cyclic-import-aware resolution: imports should be
// visited at most once per (source URI, target namespace) pair.
func (d *Definitions) Included() []Import {
	return d.Imports
}

// Parse reads a single WSDL document, embedded schema included. It does
// not resolve <wsdl:import> elements; callers that need the full merge
// protocol should parse each imported document separately and call
// Merge. Parse records names, the embedded types, imports, message
// parts, port type operations, each binding's type and operation
// names, and each service port's binding. It leaves Documentation and
// Extended empty everywhere, and leaves a binding operation's Input,
// Output and Faults unset.
func Parse(data []byte) (*Definitions, error) {
	root, err := xmltree.Parse(data)
	if err != nil {
		return nil, err
	}
	return fromTree(root)
}

func fromTree(root *xmltree.Element) (*Definitions, error) {
	def := &Definitions{}
	def.Name = root.Attr("", "name")
	def.TargetNamespace = root.Attr("", "targetNamespace")

	for _, el := range root.Search(wsdlNS, "types") {
		types, err := parseTypes(el)
		if err != nil {
			return nil, err
		}
		def.Types = types
	}
	for _, el := range root.Search(wsdlNS, "import") {
		def.Imports = append(def.Imports, Import{
			Location:  el.Attr("", "location"),
			Namespace: el.Attr("", "namespace"),
		})
	}
	for _, el := range root.Search(wsdlNS, "message") {
		def.Messages = append(def.Messages, parseMessage(el))
	}
	for _, el := range root.Search(wsdlNS, "portType") {
		def.PortTypes = append(def.PortTypes, parsePortType(el))
	}
	for _, el := range root.Search(wsdlNS, "binding") {
		def.Bindings = append(def.Bindings, parseBinding(el))
	}
	for _, el := range root.Search(wsdlNS, "service") {
		def.Services = append(def.Services, parseService(el))
	}
	return def, nil
}

func parseTypes(el *xmltree.Element) (*Types, error) {
	t := &Types{}
	for _, schemaEl := range el.Search(xsdNS, "schema") {
		data := xmltree.Marshal(schemaEl)
		schemas, err := xsd.Parse(data)
		if err != nil {
			return nil, err
		}
		t.Schemas = append(t.Schemas, schemas...)
	}
	return t, nil
}

func parseMessage(el *xmltree.Element) Message {
	m := Message{WsdlElement: WsdlElement{Name: el.Attr("", "name")}}
	for _, partEl := range el.Search(wsdlNS, "part") {
		m.Parts = append(m.Parts, Part{
			WsdlElement: WsdlElement{Name: partEl.Attr("", "name")},
			Type:        partEl.Resolve(partEl.Attr("", "type")),
			Element:     partEl.Resolve(partEl.Attr("", "element")),
		})
	}
	return m
}

func parsePortType(el *xmltree.Element) PortType {
	pt := PortType{ExtensibleElement: ExtensibleElement{WsdlElement: WsdlElement{Name: el.Attr("", "name")}}}
	for _, opEl := range el.Search(wsdlNS, "operation") {
		op := PortTypeOperation{WsdlElement: WsdlElement{Name: opEl.Attr("", "name")}}
		for _, in := range opEl.Search(wsdlNS, "input") {
			op.Input = PortTypeMessage{
				WsdlElement: WsdlElement{Name: in.Attr("", "name")},
				Message:     in.Resolve(in.Attr("", "message")).Local,
			}
		}
		for _, out := range opEl.Search(wsdlNS, "output") {
			op.Output = PortTypeMessage{
				WsdlElement: WsdlElement{Name: out.Attr("", "name")},
				Message:     out.Resolve(out.Attr("", "message")).Local,
			}
		}
		for _, f := range opEl.Search(wsdlNS, "fault") {
			op.Faults = append(op.Faults, PortTypeMessage{
				WsdlElement: WsdlElement{Name: f.Attr("", "name")},
				Message:     f.Resolve(f.Attr("", "message")).Local,
			})
		}
		pt.Operations = append(pt.Operations, op)
	}
	return pt
}

func parseBinding(el *xmltree.Element) Binding {
	b := Binding{
		ExtensibleElement: ExtensibleElement{WsdlElement: WsdlElement{Name: el.Attr("", "name")}},
		Type:              el.Resolve(el.Attr("", "type")).Local,
	}
	for _, opEl := range el.Search(wsdlNS, "operation") {
		op := BindingOperation{ExtensibleElement: ExtensibleElement{WsdlElement: WsdlElement{Name: opEl.Attr("", "name")}}}
		b.Operations = append(b.Operations, op)
	}
	return b
}

func parseService(el *xmltree.Element) Service {
	s := Service{WsdlElement: WsdlElement{Name: el.Attr("", "name")}}
	for _, portEl := range el.Search(wsdlNS, "port") {
		s.Ports = append(s.Ports, ServicePort{
			ExtensibleElement: ExtensibleElement{WsdlElement: WsdlElement{Name: portEl.Attr("", "name")}},
			Binding:           portEl.Resolve(portEl.Attr("", "binding")).Local,
		})
	}
	return s
}
