package xsdgen

import (
	"bytes"
	"encoding/xml"
	"go/format"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xsdforge/xgen/internal/testutil"
	"github.com/xsdforge/xgen/xsd"
)

type testLogger struct{ *testing.T }

func (t testLogger) Printf(format string, v ...interface{}) { t.Logf(format, v...) }

const widgetXSD = `<?xml version="1.0"?>
<schema targetNamespace="urn:widgets"
	xmlns="http://www.w3.org/2001/XMLSchema"
	xmlns:tns="urn:widgets">
	<simpleType name="Color">
		<restriction base="string">
			<enumeration value="RED"/>
			<enumeration value="BLUE"/>
		</restriction>
	</simpleType>
	<complexType name="Widget">
		<sequence>
			<element name="Name" type="string"/>
			<element name="Color" type="tns:Color"/>
			<element name="Tags" type="string" minOccurs="0" maxOccurs="unbounded"/>
		</sequence>
		<attribute name="id" type="int"/>
	</complexType>
</schema>`

func parseWidgetSchema(t *testing.T) xsd.Schema {
	t.Helper()
	schema, err := xsd.Parse([]byte(widgetXSD))
	require.NoError(t, err)
	for _, s := range schema {
		if s.TargetNS == "urn:widgets" {
			return s
		}
	}
	t.Fatal("urn:widgets schema not found")
	return xsd.Schema{}
}

func TestGenASTProducesWidgetType(t *testing.T) {
	schema := parseWidgetSchema(t)

	var cfg Config
	cfg.Option(DefaultOptions...)
	cfg.Option(LogOutput(testLogger{t}), PackageName("widgets"))

	file, err := cfg.GenAST(schema)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, format.Node(&buf, nil, file))
	src := buf.String()
	t.Log(src)

	assert.Contains(t, src, "type Widget struct")
	assert.Contains(t, src, "type Color string")
}

func TestGenASTHonorsPackageName(t *testing.T) {
	schema := parseWidgetSchema(t)
	var cfg Config
	cfg.Option(PackageName("foo"))
	file, err := cfg.GenAST(schema)
	require.NoError(t, err)
	assert.Equal(t, "foo", file.Name.Name)
}

func TestGenASTRespectsReplaceRule(t *testing.T) {
	schema := parseWidgetSchema(t)
	var cfg Config
	cfg.Option(Replace("^Widget$", "Gadget"))

	file, err := cfg.GenAST(schema)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, format.Node(&buf, nil, file))
	assert.Contains(t, buf.String(), "type Gadget struct")
}

func TestGenASTHonorsIgnoreAttributes(t *testing.T) {
	schema := parseWidgetSchema(t)
	var cfg Config
	cfg.Option(IgnoreAttributes("id"))

	file, err := cfg.GenAST(schema)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, format.Node(&buf, nil, file))
	assert.NotContains(t, buf.String(), "Id int")
}

func TestGenCodeMergesMultipleNamespaces(t *testing.T) {
	const otherXSD = `<?xml version="1.0"?>
	<schema targetNamespace="urn:other"
		xmlns="http://www.w3.org/2001/XMLSchema">
		<simpleType name="Code">
			<restriction base="string"/>
		</simpleType>
	</schema>`

	var cfg Config
	cfg.Option(DefaultOptions...)
	code, err := cfg.GenCode([]byte(widgetXSD), []byte(otherXSD))
	require.NoError(t, err)

	file, err := code.GenAST()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, format.Node(&buf, nil, file))
	src := buf.String()
	assert.Contains(t, src, "type Widget struct")
	assert.Contains(t, src, "type Code string")
}

func TestResolveDependenciesFetchesImportedSchema(t *testing.T) {
	const otherXSD = `<?xml version="1.0"?>
	<schema targetNamespace="urn:other"
		xmlns="http://www.w3.org/2001/XMLSchema">
		<simpleType name="Code">
			<restriction base="string"/>
		</simpleType>
	</schema>`

	const mainXSD = `<?xml version="1.0"?>
	<schema targetNamespace="urn:widgets"
		xmlns="http://www.w3.org/2001/XMLSchema">
		<import namespace="urn:other" schemaLocation="http://example.com/other.xsd"/>
	</schema>`

	var cfg Config
	cfg.Option(FollowImports(true))
	cfg.Option(HTTPClient(testutil.FakeClient("http://example.com/other.xsd", []byte(otherXSD))))

	data, err := cfg.resolveDependencies([]byte(mainXSD))
	require.NoError(t, err)
	assert.Len(t, data, 2)
}

func TestNameOf(t *testing.T) {
	var cfg Config
	assert.Equal(t, "Widget", cfg.NameOf(xml.Name{Space: "urn:widgets", Local: "widget"}))
}
