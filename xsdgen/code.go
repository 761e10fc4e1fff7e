package xsdgen

import (
	"encoding/xml"
	"go/ast"

	"github.com/xsdforge/xgen/xsd"
)

// Code is the result of generating Go type declarations for a set of
// XML Schema documents. Unlike the single-namespace GenAST, GenCode
// generates every namespace found across docs and keeps the parsed
// schemas around, so a caller such as wsdlgen can look up the Go name
// of a type after generation without re-parsing the documents.
type Code struct {
	cfg     *Config
	schemas []xsd.Schema
	file    *ast.File
}

// GenCode parses docs as XML Schema documents and generates Go type
// declarations for every type any of them define, merging the result
// into a single *ast.File retrievable with GenAST.
func (cfg *Config) GenCode(docs ...[]byte) (*Code, error) {
	schemas, err := xsd.Parse(docs...)
	if err != nil {
		return nil, err
	}
	var file *ast.File
	for _, s := range schemas {
		f, err := cfg.GenAST(s, schemas...)
		if err != nil {
			return nil, err
		}
		file = mergeASTFile(file, f)
	}
	return &Code{cfg: cfg, schemas: schemas, file: file}, nil
}

// GenAST returns the *ast.File generated by GenCode.
func (c *Code) GenAST() (*ast.File, error) {
	if c.file == nil {
		return nil, errNoTypesGenerated
	}
	return c.file, nil
}

// NameOf returns the Go identifier GenCode chose for the XSD type named
// by name.
func (c *Code) NameOf(name xml.Name) string {
	return c.cfg.NameOf(name)
}

var errNoTypesGenerated = &emptyCodeError{}

type emptyCodeError struct{}

func (*emptyCodeError) Error() string {
	return "xsdgen: GenCode produced no type declarations for the given documents"
}
