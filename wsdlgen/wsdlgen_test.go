package wsdlgen

import (
	"bytes"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xsdforge/xgen/xsdgen"
)

type testLogger struct{ *testing.T }

func (t testLogger) Printf(format string, args ...interface{}) { t.Logf(format, args...) }

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

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestGenASTHello(t *testing.T) {
	path := writeFixture(t, "hello.wsdl", helloWSDL)

	var cfg Config
	cfg.Option(DefaultOptions...)
	cfg.Option(LogOutput(testLogger{t}))
	cfg.XSDOption(xsdgen.DefaultOptions...)
	cfg.XSDOption(xsdgen.UseFieldNames())

	file, err := cfg.GenAST(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, format.Node(&buf, nil, file))
	src := buf.String()
	t.Log(src)

	assert.Contains(t, src, "package ws")
	assert.Contains(t, src, "func (c *Client) SayHello")
}

func TestGenASTRequiresAtLeastOneFile(t *testing.T) {
	var cfg Config
	_, err := cfg.GenAST()
	require.Error(t, err)
}

func TestGenASTHonorsOnlyPorts(t *testing.T) {
	path := writeFixture(t, "hello.wsdl", helloWSDL)

	var cfg Config
	cfg.Option(DefaultOptions...)
	cfg.Option(OnlyPorts("NoSuchPort"))
	cfg.XSDOption(xsdgen.DefaultOptions...)

	file, err := cfg.GenAST(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, format.Node(&buf, nil, file))
	assert.NotContains(t, buf.String(), "func (c *Client) SayHello")
}

func TestExposeType(t *testing.T) {
	assert.Equal(t, "time.Time", exposeType("xsdDate"))
	assert.Equal(t, "[]byte", exposeType("hexBinary"))
	assert.Equal(t, "[]string", exposeType("nmtokens"))
	assert.Equal(t, "string", exposeType("string"))
}

func TestGenASTUsesPackageComment(t *testing.T) {
	path := writeFixture(t, "hello.wsdl", helloWSDL)

	var cfg Config
	cfg.Option(DefaultOptions...)
	cfg.Option(PackageComment("Package ws talks to the Hello service."))
	cfg.XSDOption(xsdgen.DefaultOptions...)
	file, err := cfg.GenAST(path)
	require.NoError(t, err)
	require.NotNil(t, file.Doc)
	assert.True(t, strings.Contains(file.Doc.Text(), "Package ws talks to the Hello service."))
}
