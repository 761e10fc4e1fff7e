package classir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textAttr(name string, fixed bool) *Attribute {
	return &Attribute{
		Name: name,
		Tag:  AttrText,
		Fixed: fixed,
	}
}

func refAttr(name string, target QName) *Attribute {
	return &Attribute{
		Name: name,
		Tag:  AttrElement,
		Types: []AttrType{
			{Qname: target},
		},
	}
}

// S1: Find on a Raw class processes it exactly once before returning it.
func TestFindProcessesRawClassOnce(t *testing.T) {
	ctr := NewContainer()
	var runs int
	ctr.Register("count", func(ctr *Container, c *Class) {
		runs++
	})

	qname := NewQName("urn:test", "Widget")
	ctr.Extend([]*Class{NewClass(qname, TagComplexType)})

	found := ctr.Find(qname, nil)
	require.NotNil(t, found)
	assert.Equal(t, StatusProcessed, found.Status)
	assert.Equal(t, 1, runs)

	// A second Find must not reprocess an already-Processed class.
	ctr.Find(qname, nil)
	assert.Equal(t, 1, runs)
}

// S2: a predicate that rejects the first candidate in a bucket forces
// findOnce to advance past it to a second Class sharing the QName.
func TestFindSkipsNonMatchingCandidateInBucket(t *testing.T) {
	ctr := NewContainer()
	qname := NewQName("urn:test", "Shape")

	a := NewClass(qname, TagElement)
	a.Meta["kind"] = "element"
	b := NewClass(qname, TagComplexType)
	b.Meta["kind"] = "complexType"
	ctr.Extend([]*Class{a, b})

	found := ctr.Find(qname, func(c *Class) bool {
		return c.Tag == TagComplexType
	})
	require.NotNil(t, found)
	assert.Equal(t, "complexType", found.Meta["kind"])
}

// S3: a transform pass that inlines (flattens) the first candidate in a
// bucket into another class must not derail a concurrent scan -- Find
// re-reads the bucket on every iteration rather than caching its length.
func TestFindConvergesWhenPassFlattensCandidate(t *testing.T) {
	ctr := NewContainer()
	qname := NewQName("urn:test", "Flatten")

	flattenMe := NewClass(qname, TagElement)
	survivor := NewClass(qname, TagComplexType)
	ctr.Extend([]*Class{flattenMe, survivor})

	ctr.Register("flatten-first", func(ctr *Container, c *Class) {
		if c == flattenMe {
			c.Status = StatusFlattened
			ctr.Remove(c)
		}
	})

	found := ctr.Find(qname, func(c *Class) bool {
		return c.Tag == TagComplexType
	})
	require.NotNil(t, found)
	assert.Same(t, survivor, found)
}

// S4: Find against an unknown QName returns nil without panicking and
// without registering a phantom bucket.
func TestFindUnknownQNameReturnsNil(t *testing.T) {
	ctr := NewContainer()
	found := ctr.Find(NewQName("urn:test", "NoSuchThing"), nil)
	assert.Nil(t, found)
	assert.Equal(t, 0, ctr.Len())
}

// S5: FilterClasses falls back to keeping simple-type classes when no
// complex class survives the primary rule, the default policy.
func TestFilterClassesFallsBackToSimpleTypes(t *testing.T) {
	ctr := NewContainer()
	enum := NewClass(NewQName("urn:test", "Color"), TagSimpleType)
	enum.Attrs = []*Attribute{textAttr("RED", true), textAttr("BLUE", true)}

	empty := NewClass(NewQName("urn:test", "Marker"), TagComplexType)

	ctr.Extend([]*Class{enum, empty})
	ctr.FilterClasses()

	got := ctr.ClassList()
	require.Len(t, got, 1)
	assert.Equal(t, "Color", got[0].Qname.Local)
}

// With the fallback policy disabled, an empty primary result stays
// empty.
func TestFilterClassesFallbackCanBeDisabled(t *testing.T) {
	ctr := NewContainer()
	ctr.SetFallbackToSimple(false)
	enum := NewClass(NewQName("urn:test", "Color"), TagSimpleType)
	enum.Attrs = []*Attribute{textAttr("RED", true)}
	ctr.Extend([]*Class{enum})

	ctr.FilterClasses()
	assert.Empty(t, ctr.ClassList())
}

// FilterClasses keeps a complex class marked ShouldGenerate==true and
// drops one opted out via Meta["skip-generate"].
func TestFilterClassesHonorsSkipGenerate(t *testing.T) {
	ctr := NewContainer()
	keep := NewClass(NewQName("urn:test", "Keep"), TagComplexType)
	keep.Attrs = []*Attribute{refAttr("ref", NewQName("urn:test", "Other"))}

	drop := NewClass(NewQName("urn:test", "Drop"), TagComplexType)
	drop.Attrs = []*Attribute{refAttr("ref", NewQName("urn:test", "Other"))}
	drop.Meta["skip-generate"] = "matched exclusion pattern"

	ctr.Extend([]*Class{keep, drop})
	ctr.FilterClasses()

	got := ctr.ClassList()
	require.Len(t, got, 1)
	assert.Equal(t, "Keep", got[0].Qname.Local)
}

func TestRegisterReplacesExistingPassByName(t *testing.T) {
	ctr := NewContainer()
	var order []string
	ctr.Register("a", func(ctr *Container, c *Class) { order = append(order, "a1") })
	ctr.Register("b", func(ctr *Container, c *Class) { order = append(order, "b") })
	ctr.Register("a", func(ctr *Container, c *Class) { order = append(order, "a2") })

	qname := NewQName("urn:test", "X")
	ctr.Extend([]*Class{NewClass(qname, TagComplexType)})
	ctr.Find(qname, nil)

	assert.Equal(t, []string{"a2", "b"}, order)
}

func TestWarnAccumulates(t *testing.T) {
	ctr := NewContainer()
	ctr.Warn(CodegenWarning{Qname: NewQName("", "X"), Message: "renamed"})
	ctr.Warn(CodegenWarning{Qname: NewQName("", "Y"), Message: "widened"})
	require.Len(t, ctr.Warnings(), 2)
	assert.Equal(t, "renamed", ctr.Warnings()[0].Message)
}
