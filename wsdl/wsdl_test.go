package wsdl

import (
	"testing"
)

const helloWSDL = `<?xml version="1.0"?>
<definitions name="HelloService"
	targetNamespace="urn:hello"
	xmlns:tns="urn:hello"
	xmlns:xsd="http://www.w3.org/2001/XMLSchema"
	xmlns:soap="http://schemas.xmlsoap.org/wsdl/soap/"
	xmlns="http://schemas.xmlsoap.org/wsdl/">
	<types>
		<xsd:schema targetNamespace="urn:hello">
			<xsd:element name="name" type="xsd:string"/>
			<xsd:element name="greeting" type="xsd:string"/>
		</xsd:schema>
	</types>
	<message name="SayHelloRequest">
		<part name="firstName" element="tns:name"/>
	</message>
	<message name="SayHelloResponse">
		<part name="greeting" element="tns:greeting"/>
	</message>
	<portType name="Hello_PortType">
		<operation name="sayHello">
			<input message="tns:SayHelloRequest"/>
			<output message="tns:SayHelloResponse"/>
		</operation>
	</portType>
	<binding name="Hello_Binding" type="tns:Hello_PortType">
		<soap:binding style="rpc" transport="http://schemas.xmlsoap.org/soap/http"/>
		<operation name="sayHello">
			<soap:operation soapAction="sayHello"/>
			<input><soap:body use="encoded"/></input>
			<output><soap:body use="encoded"/></output>
		</operation>
	</binding>
	<service name="Hello_Service">
		<documentation>Greets a caller by name.</documentation>
		<port name="Hello_Port" binding="tns:Hello_Binding">
			<soap:address location="http://example.com/hello"/>
		</port>
	</service>
</definitions>`

func TestParse(t *testing.T) {
	def, err := Parse([]byte(helloWSDL))
	if err != nil {
		t.Fatal(err)
	}
	if def.Name != "HelloService" {
		t.Errorf("Name = %q, want HelloService", def.Name)
	}
	if def.TargetNamespace != "urn:hello" {
		t.Errorf("TargetNamespace = %q, want urn:hello", def.TargetNamespace)
	}
	if len(def.Schemas()) != 1 {
		t.Fatalf("Schemas() = %d schemas, want 1", len(def.Schemas()))
	}
	if _, err := def.FindMessage("SayHelloRequest"); err != nil {
		t.Errorf("FindMessage(SayHelloRequest): %s", err)
	}
	if _, err := def.FindMessage("nonexistent"); err == nil {
		t.Error("FindMessage(nonexistent) succeeded, want DefinitionsValueError")
	} else if _, ok := err.(*DefinitionsValueError); !ok {
		t.Errorf("FindMessage(nonexistent) error type = %T, want *DefinitionsValueError", err)
	}
	pt, err := def.FindPortType("Hello_PortType")
	if err != nil {
		t.Fatalf("FindPortType: %s", err)
	}
	if len(pt.Operations) != 1 || pt.Operations[0].Name != "sayHello" {
		t.Errorf("unexpected operations: %+v", pt.Operations)
	}
	binding, err := def.FindBinding("Hello_Binding")
	if err != nil {
		t.Fatalf("FindBinding: %s", err)
	}
	if binding.Type != "Hello_PortType" {
		t.Errorf("Binding.Type = %q, want Hello_PortType", binding.Type)
	}
	if len(def.Services) != 1 || len(def.Services[0].Ports) != 1 {
		t.Fatalf("unexpected services: %+v", def.Services)
	}
}

func TestBindingUniqueOperations(t *testing.T) {
	b := &Binding{
		Operations: []BindingOperation{
			{ExtensibleElement: ExtensibleElement{WsdlElement: WsdlElement{Name: "op1"}}},
			{ExtensibleElement: ExtensibleElement{WsdlElement: WsdlElement{Name: "op2"}}},
			{ExtensibleElement: ExtensibleElement{WsdlElement: WsdlElement{Name: "op1"}}},
		},
	}
	got := b.UniqueOperations()
	if len(got) != 2 {
		t.Fatalf("UniqueOperations() returned %d operations, want 2", len(got))
	}
	if got[0].Name != "op1" || got[1].Name != "op2" {
		t.Errorf("unexpected order: %+v", got)
	}
}

func TestDefinitionsMerge(t *testing.T) {
	primary := &Definitions{Messages: []Message{{WsdlElement: WsdlElement{Name: "A"}}}}
	extra := &Definitions{Messages: []Message{{WsdlElement: WsdlElement{Name: "B"}}}}
	primary.Merge(extra)
	if len(primary.Messages) != 2 {
		t.Fatalf("Merge: got %d messages, want 2", len(primary.Messages))
	}
}
