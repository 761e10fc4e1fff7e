package classir

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// QName is the canonical identity of every IR node: a namespace URI
// paired with a local name. Equality and hashing are structural, so a
// QName is safe to use as a map key directly; no wrapper is needed.
//
// QName is the only cross-reference key that crosses the Container
// boundary -- transforms never hold a Go pointer to another Class,
// only its QName, and resolve it back through Container.Find.
type QName struct {
	Space string
	Local string
}

// NewQName builds a QName from a namespace URI and local name.
func NewQName(space, local string) QName {
	return QName{Space: space, Local: local}
}

// FromXMLName converts an encoding/xml.Name, the representation used
// throughout the xsd and wsdl parser packages, into a QName.
func FromXMLName(name xml.Name) QName {
	return QName{Space: name.Space, Local: name.Local}
}

// XMLName converts a QName back to the encoding/xml.Name representation
// used by the parser packages.
func (q QName) XMLName() xml.Name {
	return xml.Name{Space: q.Space, Local: q.Local}
}

// ParseClark parses Clark notation, "{namespace-uri}local-name", into a
// QName. A string with no leading "{...}" is treated as a QName with an
// empty namespace.
func ParseClark(s string) (QName, error) {
	if len(s) == 0 || s[0] != '{' {
		return QName{Local: s}, nil
	}
	end := strings.IndexByte(s, '}')
	if end < 0 {
		return QName{}, fmt.Errorf("classir: malformed Clark-notation name %q", s)
	}
	return QName{Space: s[1:end], Local: s[end+1:]}, nil
}

// String renders a QName in Clark notation, "{namespace-uri}local-name".
// A QName with no namespace renders as just the local name.
func (q QName) String() string {
	if q.Space == "" {
		return q.Local
	}
	return "{" + q.Space + "}" + q.Local
}

// IsZero reports whether q is the zero QName.
func (q QName) IsZero() bool {
	return q.Space == "" && q.Local == ""
}
