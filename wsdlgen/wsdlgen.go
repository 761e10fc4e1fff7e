// Package wsdlgen generates Go source code from wsdl documents.
//
// The wsdlgen package generates Go source for calling the various
// methods defined in a WSDL (Web Service Definition Language) document.
// The generated Go source is self-contained, with no dependencies on
// non-standard packages.
//
// Code generation for the wsdlgen package can be configured by using
// the provided Option functions.
package wsdlgen

import (
	"encoding/xml"
	"errors"
	"fmt"
	"go/ast"
	"io/ioutil"
	"strings"

	"github.com/xsdforge/xgen/internal/gen"
	"github.com/xsdforge/xgen/wsdl"
	"github.com/xsdforge/xgen/xmltree"
	"github.com/xsdforge/xgen/xsd"
	"github.com/xsdforge/xgen/xsdgen"
)

// Types conforming to the Logger interface can receive information about
// the code generation process.
type Logger interface {
	Printf(format string, v ...interface{})
}

// boundPort is the join of a WSDL service port, its binding, and the
// port type the binding implements -- the triple the original
// wsdl.Port type represented as a single flat value before this
// package grew a full WsdlElement/ExtensibleElement model.
type boundPort struct {
	Name     string
	Address  string
	Method   string
	Binding  *wsdl.Binding
	PortType *wsdl.PortType
}

type printer struct {
	*Config
	code         *xsdgen.Code
	def          *wsdl.Definitions
	file         *ast.File
	elementTypes map[xml.Name]xml.Name
}

// Provides aspects about an RPC call to the template for the function
// bodies.
type opArgs struct {
	// formatted with appropriate variable names
	input, output []string

	// URL to send request to
	Address string

	// POST or GET
	Method string

	SOAPAction string

	// Name of the method to call
	MsgName xml.Name

	// if we're returning individual values, these slices
	// are in an order matching the input/output slices.
	InputName, OutputName xml.Name
	InputFields           []field
	OutputFields          []field

	// If not "", inputs come in a wrapper struct
	InputType string

	// If not "", we return values in a wrapper struct
	ReturnType   string
	ReturnFields []field
}

// struct members. Need to export the fields for our template
type field struct {
	Name, Type string
	XMLName    xml.Name

	// If this is a wrapper struct for >InputThreshold arguments,
	// PublicType holds the type that we want to expose to the
	// user. For example, if the web service expects an xsdDate
	// to be sent to it, PublicType will be time.Time and a conversion
	// will take place before sending the request to the server.
	PublicType string

	// This refers to the name of the value to assign to this field
	// in the argument list. Empty for return values.
	InputArg string
}

// GenAST creates a Go source file containing type and method declarations
// that can be used to access the service described in the provided set of wsdl
// files.
func (cfg *Config) GenAST(files ...string) (*ast.File, error) {
	if len(files) == 0 {
		return nil, errors.New("must provide at least one file name")
	}
	if cfg.pkgName == "" {
		cfg.pkgName = "ws"
	}
	if cfg.pkgHeader == "" {
		cfg.pkgHeader = fmt.Sprintf("Package %s", cfg.pkgName)
	}
	docs := make([][]byte, 0, len(files))
	for _, filename := range files {
		if data, err := ioutil.ReadFile(filename); err != nil {
			return nil, err
		} else {
			cfg.debugf("read %s", filename)
			docs = append(docs, data)
		}
	}

	cfg.debugf("parsing WSDL file %s", files[0])
	def, err := wsdl.Parse(docs[0])
	if err != nil {
		return nil, err
	}
	for _, doc := range docs[1:] {
		extra, err := wsdl.Parse(doc)
		if err != nil {
			return nil, err
		}
		def.Merge(extra)
	}

	cfg.debugf("procuring top-level element types")
	elementTypes, err := cfg.scanElementTypes(docs)
	if err != nil {
		return nil, err
	}
	cfg.verbosef("building xsd type whitelist from WSDL")
	if err := cfg.registerXSDTypes(def, elementTypes); err != nil {
		return nil, err
	}

	cfg.verbosef("generating type declarations from xml schema")
	code, err := cfg.xsdgen.GenCode(docs...)
	if err != nil {
		return nil, err
	}

	cfg.verbosef("generating function definitions from WSDL")
	return cfg.genAST(def, code, elementTypes)
}

func (cfg *Config) genAST(def *wsdl.Definitions, code *xsdgen.Code, elementTypes map[xml.Name]xml.Name) (*ast.File, error) {
	file, err := code.GenAST()
	if err != nil {
		return nil, err
	}
	file.Name = ast.NewIdent(cfg.pkgName)
	doc := documentationText(def.Documentation)
	file = gen.PackageDoc(file, cfg.pkgHeader, "\n", doc)
	p := &printer{
		Config:       cfg,
		def:          def,
		file:         file,
		code:         code,
		elementTypes: elementTypes,
	}
	return p.genAST()
}

func documentationText(doc wsdl.Documentation) string {
	var b strings.Builder
	for _, el := range doc.Elements {
		b.Write(el.Content)
	}
	return b.String()
}

func (p *printer) genAST() (*ast.File, error) {
	p.addHelpers()
	ports, err := p.boundPorts()
	if err != nil {
		return nil, err
	}
	for _, port := range ports {
		if p.portFilter != nil && !p.portFilter(port) {
			continue
		}
		if err := p.port(port); err != nil {
			return nil, err
		}
	}
	return p.file, nil
}

// boundPorts joins every <service><port> in the definitions against its
// binding and port type, recovering the flat view the rest of this
// package's templating code expects.
func (p *printer) boundPorts() ([]boundPort, error) {
	var result []boundPort
	for _, svc := range p.def.Services {
		for _, sp := range svc.Ports {
			binding, err := p.def.FindBinding(sp.Binding)
			if err != nil {
				return nil, err
			}
			portType, err := p.def.FindPortType(binding.Type)
			if err != nil {
				return nil, err
			}
			result = append(result, boundPort{
				Name:     sp.Name,
				Address:  soapAddress(sp.Extended),
				Method:   "POST",
				Binding:  binding,
				PortType: portType,
			})
		}
	}
	return result, nil
}

// soapAddress finds the location attribute of a <soap:address> or
// <http:address> extension element.
func soapAddress(extended []wsdl.AnyElement) string {
	for _, el := range extended {
		if el.XMLName.Local != "address" {
			continue
		}
		for _, attr := range el.Attrs {
			if attr.Name.Local == "location" {
				return attr.Value
			}
		}
	}
	return ""
}

// soapActionOf finds the soapAction attribute of a <soap:operation>
// extension element on a binding operation.
func soapActionOf(extended []wsdl.AnyElement) string {
	for _, el := range extended {
		if el.XMLName.Local != "operation" {
			continue
		}
		for _, attr := range el.Attrs {
			if attr.Name.Local == "soapAction" {
				return attr.Value
			}
		}
	}
	return ""
}

func (p *printer) port(port boundPort) error {
	for _, bindingOp := range port.Binding.UniqueOperations() {
		ptOp, err := port.PortType.FindOperation(bindingOp.Name)
		if err != nil {
			return err
		}
		if err := p.operation(port, bindingOp, ptOp); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) operation(port boundPort, bindingOp wsdl.BindingOperation, ptOp *wsdl.PortTypeOperation) error {
	input, err := p.def.FindMessage(ptOp.Input.Message)
	if err != nil {
		return fmt.Errorf("operation %s: %w", ptOp.Name, err)
	}
	output, err := p.def.FindMessage(ptOp.Output.Message)
	if err != nil {
		return fmt.Errorf("operation %s: %w", ptOp.Name, err)
	}
	soapAction := soapActionOf(bindingOp.Extended)
	params, err := p.opArgs(port.Address, port.Method, soapAction, ptOp, input, output)
	if err != nil {
		return err
	}

	if params.InputType != "" {
		decls, err := gen.Snippets(params, `
			type {{.InputType}} struct {
			{{ range .InputFields -}}
				{{.Name}} {{.PublicType}}
			{{ end -}}
			}`,
		)
		if err != nil {
			return err
		}
		p.file.Decls = append(p.file.Decls, decls...)
	}
	if params.ReturnType != "" {
		decls, err := gen.Snippets(params, `
			type {{.ReturnType}} struct {
			{{ range .ReturnFields -}}
				{{.Name}} {{.Type}}
			{{ end -}}
			}`,
		)
		if err != nil {
			return err
		}
		p.file.Decls = append(p.file.Decls, decls...)
	}
	fn := gen.Func(p.xsdgen.NameOf(xml.Name{Local: ptOp.Name})).
		Comment(documentationText(ptOp.Documentation)).
		Receiver("c *Client").
		Args(params.input...).
		BodyTmpl(`
			var input struct {
				XMLName struct{} `+"`"+`xml:"{{.MsgName.Space}} {{.MsgName.Local}}"`+"`"+`
				Args struct {
					{{ range .InputFields -}}
					{{.Name}} {{.Type}} `+"`"+`xml:"{{.XMLName.Space}} {{.XMLName.Local}}"`+"`"+`
					{{ end -}}
				}`+"`xml:\"{{.InputName.Space}} {{.InputName.Local}}\"`"+`
			}

			{{- range .InputFields }}
			input.Args.{{.Name}} = {{.Type}}({{.InputArg}})
			{{ end }}

			var output struct {
				XMLName struct{} `+"`"+`xml:"{{.MsgName.Space}} {{.MsgName.Local}}"`+"`"+`
				Args struct {
					{{ range .OutputFields -}}
					{{.Name}} {{.Type}} `+"`"+`xml:"{{.XMLName.Space}} {{.XMLName.Local}}"`+"`"+`
					{{ end -}}
				}`+"`xml:\"{{.OutputName.Space}} {{.OutputName.Local}}\"`"+`
			}

			err := c.do({{.Method|printf "%q"}}, {{.Address|printf "%q"}}, {{.SOAPAction|printf "%q"}}, &input, &output)

			{{ if .OutputFields -}}
			return {{ range .OutputFields }}{{.Type}}(output.Args.{{.Name}}), {{ end }} err
			{{- else if .ReturnType -}}
			var result {{ .ReturnType }}
			{{ range .ReturnFields -}}
			result.{{.Name}} = {{.Type}}(output.Args.{{.InputArg}})
			{{ end -}}
			return result, err
			{{- else -}}
			return err
			{{- end -}}
		`, params).
		Returns(params.output...)
	if decl, err := fn.Decl(); err != nil {
		return err
	} else {
		p.file.Decls = append(p.file.Decls, decl)
	}
	return nil
}

// Generates mapping of top-level element names to the names
// of their types.
func (cfg *Config) scanElementTypes(docs [][]byte) (map[xml.Name]xml.Name, error) {
	const schemaNS = "http://www.w3.org/2001/XMLSchema"
	result := make(map[xml.Name]xml.Name)

	trees, err := xsd.Normalize(docs...)
	if err != nil {
		return nil, err
	}
	for _, root := range trees {
		container := xmltree.Element{Children: []xmltree.Element{*root}}
		for _, schema := range container.Search(schemaNS, "schema") {
			tns := schema.Attr("", "targetNamespace")
			for _, el := range schema.Children {
				if el.Name != (xml.Name{Space: schemaNS, Local: "element"}) {
					continue
				}
				xmlname := el.ResolveDefault(el.Attr("", "name"), tns)
				xmltype := el.Resolve(el.Attr("", "type"))

				if xmlname.Local != "" && xmltype.Local != "" {
					result[xmlname] = xmltype
				}
			}
		}
	}
	return result, nil
}

// The xsdgen package generates private types for some builtin
// types. These types should be hidden from the user and converted
// on the fly.
func exposeType(typ string) string {
	switch typ {
	case "xsdDate", "xsdTime", "xsdDateTime", "gDay",
		"gMonth", "gMonthDay", "gYear", "gYearMonth":
		return "time.Time"
	case "hexBinary", "base64Binary":
		return "[]byte"
	case "idrefs", "nmtokens", "notation", "entities":
		return "[]string"
	}
	return typ
}

func (p *printer) getPartType(part wsdl.Part) (string, error) {
	if part.Type.Local != "" {
		return p.code.NameOf(part.Type), nil
	}
	if part.Element.Local != "" {
		typeName, ok := p.elementTypes[part.Element]
		if !ok {
			return "", fmt.Errorf("part %s: could not determine type of element %v",
				part.Name, part.Element)
		}
		return p.code.NameOf(typeName), nil
	}
	return "", fmt.Errorf("part %s has no element or type", part.Name)
}

func (p *printer) opArgs(addr, method, soapAction string, ptOp *wsdl.PortTypeOperation, input, output *wsdl.Message) (opArgs, error) {
	var args opArgs
	args.Address = addr
	args.Method = method
	args.SOAPAction = soapAction
	args.MsgName = xml.Name{Local: ptOp.Name}
	args.InputName = xml.Name{Local: input.Name}
	targetNS := p.def.TargetNamespace
	for _, part := range input.Parts {
		typ, err := p.getPartType(part)
		if err != nil {
			return args, err
		}
		inputType := exposeType(typ)
		vname := gen.Sanitize(part.Name)
		if vname == typ {
			vname += "_"
		}
		args.input = append(args.input, vname+" "+inputType)
		args.InputFields = append(args.InputFields, field{
			Name:       strings.Title(part.Name),
			Type:       typ,
			PublicType: exposeType(typ),
			XMLName:    xml.Name{Space: targetNS, Local: part.Name},
			InputArg:   vname,
		})
	}
	if len(args.input) > p.maxArgs {
		args.InputType = strings.Title(args.InputName.Local)
		args.input = []string{"v " + args.InputName.Local}
		for i, v := range input.Parts {
			args.InputFields[i].InputArg = "v." + strings.Title(v.Name)
		}
	}
	args.OutputName = xml.Name{Local: output.Name}
	for _, part := range output.Parts {
		typ, err := p.getPartType(part)
		if err != nil {
			return args, err
		}
		outputType := exposeType(typ)
		args.output = append(args.output, outputType)
		args.OutputFields = append(args.OutputFields, field{
			Name:    strings.Title(part.Name),
			Type:    typ,
			XMLName: xml.Name{Space: targetNS, Local: part.Name},
		})
	}
	if len(args.output) > p.maxReturns {
		args.ReturnType = strings.Title(args.OutputName.Local)
		args.ReturnFields = make([]field, len(args.OutputFields))
		for i, v := range args.OutputFields {
			args.ReturnFields[i] = field{
				Name:     v.Name,
				Type:     exposeType(v.Type),
				InputArg: v.Name,
			}
		}
		args.output = []string{args.ReturnType}
	}
	// NOTE if we decide to name our return values, we have to change this too.
	args.output = append(args.output, "error")

	return args, nil
}

// registerXSDTypes passes each type named in the WSDL definition to
// xsdgen with AllowType. xsdgen does not filter on these names, so
// every type of the embedded schema is still generated.
func (cfg *Config) registerXSDTypes(def *wsdl.Definitions, elementTypes map[xml.Name]xml.Name) error {
	xmlns := make(map[string]struct{})

	ports, err := (&printer{Config: cfg, def: def}).boundPorts()
	if err != nil {
		return err
	}
	for _, port := range ports {
		for _, bindingOp := range port.Binding.UniqueOperations() {
			ptOp, err := port.PortType.FindOperation(bindingOp.Name)
			if err != nil {
				cfg.logf("ERROR: %s", err)
				continue
			}
			for _, msgName := range []string{ptOp.Input.Message, ptOp.Output.Message} {
				msg, err := def.FindMessage(msgName)
				if err != nil {
					cfg.logf("ERROR: No message def found for %s", msgName)
					continue
				}
				for _, part := range msg.Parts {
					var typeName xml.Name
					if part.Type.Space != "" {
						typeName = part.Type
					}
					if part.Element.Space != "" {
						if t, ok := elementTypes[part.Element]; !ok {
							cfg.verbosef("could not determine type for part %v", part)
							typeName = part.Element
						} else {
							typeName = t
						}
						xmlns[part.Element.Space] = struct{}{}
					}
					xmlns[typeName.Space] = struct{}{}
					cfg.xsdgen.Option(xsdgen.AllowType(typeName))
				}
			}
		}
	}
	namespaces := make([]string, 0, len(xmlns))
	for ns := range xmlns {
		namespaces = append(namespaces, ns)
	}
	cfg.xsdgen.Option(xsdgen.Namespaces(namespaces...))
	return nil
}
