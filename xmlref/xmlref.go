// Package xmlref simplifies XML documents with references.
//
// The xmlref package allows for processing of multi-reference
// SOAP objects in XML documents as if they were single reference,
// as expected by the encoding/xml package. Documents such as
//
// 	<response href="#id0"/>
// 	<multiRef id="id0">
// 	  <anyMoreRec href="#id1"/>
// 	</multiRef>
// 	<multiRef id="id1">false</multiRef>
//
// when read through a Reader, will appear as
//
// 	<response>
// 	  <anyMoreRec>false</anyMoreRec>
// 	</response>
//
// Reading through a Reader is not implemented in this package:
// NewReader and Reader.Read both panic when called.
package xmlref

import (
	"io"
	"strings"
)

func parseURIRef(ref string) (id string) {
	return strings.TrimPrefix(ref, "#")
}

// A Reader wraps an existing io.ReadSeeker positioned at the start of an
// XML document. The XML document read through a Reader will by identical
// to the original document, with the exception that any multi-reference
// SOAP elements will be replaced with the single-reference elements they
// point to. The state of the underlying ReadSeeker should not be changed
// (by calls to its Read or Seek method) between calls to Read.
// Its Read method is not implemented and panics.
type Reader struct {
	start int64
	buf   []byte
	rd    io.ReadSeeker
}

// Read is not implemented: it panics without reading from the
// underlying ReadSeeker.
func (r *Reader) Read(p []byte) (int, error) {
	panic("TODO")
}

// NewReader is not implemented: it panics without reading r or
// returning a Reader.
func NewReader(r io.ReadSeeker) (*Reader, error) {
	panic("TODO")
}
