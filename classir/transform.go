package classir

import (
	"strconv"

	"github.com/xsdforge/xgen/internal/dependency"
	"github.com/xsdforge/xgen/internal/gen"
)

// DefaultPasses registers the seven transform passes of spec §4.4, in
// their fixed order, against ctr.
func DefaultPasses(ctr *Container) {
	ctr.Register("flatten-enumerations", flattenEnumerations)
	ctr.Register("flatten-extensions", flattenExtensions)
	ctr.Register("resolve-forward-references", resolveForwardReferences)
	ctr.Register("sanitize-names", sanitizeNames)
	ctr.Register("merge-substitution-groups", mergeSubstitutionGroups)
	ctr.Register("calculate-field-types", calculateFieldTypes)
	ctr.Register("designate-abstract-and-dependency-order", designateDependencyOrder)
}

// flattenEnumerations pushes enumeration members into the class as
// fixed text attributes and merges the enclosing restriction, so later
// passes can treat "is this class an enumeration" as a simple query
// over its Attrs (Class.IsEnumeration) instead of re-inspecting the
// original restriction facets.
func flattenEnumerations(ctr *Container, c *Class) {
	if c.Tag != TagSimpleType {
		return
	}
	if len(c.Restrictions().Enum) == 0 {
		return
	}
	for _, literal := range c.Restrictions().Enum {
		c.Attrs = append(c.Attrs, &Attribute{
			Name:      literal,
			LocalName: literal,
			Tag:       AttrText,
			Fixed:     true,
			Default:   literal,
		})
	}
}

// Restrictions returns the merged Restriction facets recorded on a
// Class's metadata by the parser bridge (FromSchema), or the zero value
// if none were recorded. Enumeration facets are the only ones the
// flatten-enumerations pass consumes; the rest travel with the Class's
// Attrs once they exist.
func (c *Class) Restrictions() *ClassRestriction {
	if c.restriction == nil {
		c.restriction = &ClassRestriction{}
	}
	return c.restriction
}

// ClassRestriction is the subset of spec.md's Restriction facets that
// apply at the whole-class level, before flatten-enumerations has run.
type ClassRestriction struct {
	Enum []string
}

// flattenExtensions absorbs a base class's attributes into c when the
// base is a simple type or enumeration, replacing the extension link
// with an attribute-name prefix so the emitted struct for c does not
// need to embed or alias the (now pointless) base type.
//
// This is the Go-idiom analogue of xsdgen's genComplexType, which
// names the chardata field after the base type when a complex type
// extends a simple type (xsdgen.go, genComplexType).
func flattenExtensions(ctr *Container, c *Class) {
	if c.Tag != TagComplexType && c.Tag != TagElement {
		return
	}
	var kept []Extension
	for _, ext := range c.Extensions {
		if ext.Kind != ExtensionDerives {
			kept = append(kept, ext)
			continue
		}
		base := ctr.Find(ext.Qname, nil)
		if base == nil {
			kept = append(kept, ext)
			continue
		}
		if base.IsSimple() || base.IsEnumeration() {
			prefix := ext.Qname.Local
			for _, attr := range base.Attrs {
				cp := *attr
				cp.Name = prefix + "_" + attr.Name
				c.Attrs = append(c.Attrs, &cp)
			}
			continue
		}
		kept = append(kept, ext)
	}
	c.Extensions = kept
}

// resolveForwardReferences locates, for every AttrType marked Forward,
// the enclosing parent Class containing a matching inner Class, and
// marks the reference Circular if it is reachable through c's own
// parent chain (spec §4.4 step 3, §9 "cyclic class references").
func resolveForwardReferences(ctr *Container, c *Class) {
	ancestors := make(map[QName]struct{})
	for _, anc := range c.ParentMap() {
		ancestors[anc.Qname] = struct{}{}
	}
	for _, attr := range c.Attrs {
		for i := range attr.Types {
			t := &attr.Types[i]
			if !t.Forward {
				continue
			}
			if _, ok := ancestors[t.Qname]; ok {
				t.Circular = true
				continue
			}
			for _, anc := range c.ParentMap() {
				if findInner(anc, t.Qname) != nil {
					t.Forward = false
					break
				}
			}
		}
	}
}

func findInner(c *Class, qname QName) *Class {
	for _, inner := range c.Inner {
		if inner.Qname == qname {
			return inner
		}
		if found := findInner(inner, qname); found != nil {
			return found
		}
	}
	return nil
}

// sanitizeNames resolves clashes between attribute names, inner-class
// names, and target-language keywords. The reserved-word table comes
// from the ClassType adapter in use; when none is configured,
// internal/gen.Sanitize's Go keyword table is used, since that is the
// table xsdgen's own emitter already relies on.
func sanitizeNames(ctr *Container, c *Class) {
	reserved := ctr.reservedWord
	if reserved == nil {
		reserved = func(s string) bool { return gen.Sanitize(s) != s }
	}
	seen := make(map[string]int)
	for _, attr := range c.Attrs {
		name := attr.LocalName
		if name == "" {
			name = attr.Name
		}
		if reserved(name) {
			name = gen.Sanitize(name)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = name + strconv.Itoa(n+1)
		} else {
			seen[name] = 0
		}
		attr.Name = name
	}
}

// mergeSubstitutionGroups ensures every substitute in a substitution
// group appears as a choice on every head element, widening the head's
// set of acceptable alternatives.
func mergeSubstitutionGroups(ctr *Container, c *Class) {
	if !c.IsElement() || len(c.Substitutions) == 0 {
		return
	}
	existing := make(map[QName]struct{})
	for _, choice := range headChoiceAttr(c).Choices {
		for _, t := range choice.Types {
			existing[t.Qname] = struct{}{}
		}
	}
	for member := range c.Substitutions {
		if _, ok := existing[member]; ok {
			continue
		}
		sub := ctr.Find(member, nil)
		if sub == nil {
			ctr.Warn(CodegenWarning{Qname: c.Qname, Message: "substitution group member " + member.String() + " not found, widening skipped"})
			continue
		}
		attr := headChoiceAttr(c)
		attr.Choices = append(attr.Choices, &Attribute{
			Name:      sub.Qname.Local,
			LocalName: sub.Qname.Local,
			Tag:       AttrElement,
			Types:     []AttrType{{Qname: sub.Qname, Substituted: true}},
		})
	}
}

// headChoiceAttr returns (creating if necessary) the synthetic
// attribute used to hold a substitution group head's widened set of
// choices.
func headChoiceAttr(c *Class) *Attribute {
	const name = "__substitutionHead"
	for _, a := range c.Attrs {
		if a.Name == name {
			return a
		}
	}
	a := &Attribute{Name: name, Tag: AttrChoiceGroup}
	c.Attrs = append(c.Attrs, a)
	return a
}

// calculateFieldTypes collapses an attribute's union of type references
// to a single reference when every member is native and all share one
// QName. Any other union is left as is, and a single type reference is
// never replaced by its base type; no emitted type expression is
// computed here.
func calculateFieldTypes(ctr *Container, c *Class) {
	for _, attr := range c.Attrs {
		if len(attr.Types) <= 1 {
			continue
		}
		// A union of >1 member types that all resolve to the same
		// native representation collapses to a single reference;
		// otherwise the union is left as multiple AttrTypes for the
		// emitter to render as an interface{} or similarly widened type.
		allNative := true
		for _, t := range attr.Types {
			if !t.Native {
				allNative = false
				break
			}
		}
		if allNative && sameQName(attr.Types) {
			attr.Types = attr.Types[:1]
		}
	}
}

func sameQName(types []AttrType) bool {
	for _, t := range types[1:] {
		if t.Qname != types[0].Qname {
			return false
		}
	}
	return true
}

// designateDependencyOrder topologically sorts the Container's classes
// so that, once FilterClasses has run, ClassList presents base classes
// before the classes that derive from them -- the order an emitter
// needs to declare Go types without forward references. It reuses
// internal/dependency.Graph, the same topological-flatten utility
// already used for this kind of ordering problem elsewhere in this
// module.
//
// Because Container.ClassList must also preserve each surviving QName's
// original insertion order as a tie-break (spec §5, "Ordering
// guarantees"), this pass does not reorder ctr.order: it instead records
// the computed rank in each ranked Class's Meta["dependency-rank"].
// Classes that neither extend nor are extended by another Class get no
// rank, and nothing in this module reads the rank back.
func designateDependencyOrder(ctr *Container, c *Class) {
	if c.Abstract {
		return
	}
	var g dependency.Graph
	for _, q := range ctr.order {
		for _, bucketClass := range ctr.buckets[q] {
			for _, ext := range bucketClass.Extensions {
				g.Add(bucketClass.Qname.String(), ext.Qname.String())
			}
		}
	}
	rank := 0
	g.Flatten(func(name string) {
		if cls := ctr.findByString(name); cls != nil {
			cls.Meta["dependency-rank"] = strconv.Itoa(rank)
			rank++
		}
	})
}

func (ctr *Container) findByString(s string) *Class {
	for _, bucket := range ctr.buckets {
		for _, c := range bucket {
			if c.Qname.String() == s {
				return c
			}
		}
	}
	return nil
}
