// Package xsdgen generates Go source code from xml schema documents.
//
// The xsdgen package generates type declarations and accompanying
// methods for marshalling and unmarshalling XML elements that adhere
// to an XML schema. The source code generation is configurable, and can
// be passed through user-defined filters.
package xsdgen
