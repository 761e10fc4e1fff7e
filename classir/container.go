package classir

// TransformPass is a single IR->IR rewrite, run against one Class at a
// time the first time that Class is visited by the Container. A pass
// may mutate c in place, inline it into another Class (setting
// c.Status to StatusFlattened and calling Container.Remove), or push
// newly-discovered Classes into the Container with Container.Extend.
type TransformPass func(ctr *Container, c *Class)

type namedPass struct {
	name string
	fn   TransformPass
}

// Container is the ClassContainer of spec §4.3: a keyed, lazily
// processing work registry -- a multimap from QName to an ordered
// sequence of Class, since a single QName can briefly hold multiple
// Classes differing in Tag until the merge pass collapses them.
type Container struct {
	buckets map[QName][]*Class
	order   []QName // insertion order of distinct QNames

	passes   []namedPass
	warnings []CodegenWarning

	// fallbackToSimple controls FilterClasses' behavior when no class
	// survives the primary is-complex-and-should-generate rule: keep
	// every simple-type-derived class instead of an empty result.
	fallbackToSimple bool

	// reservedWord is supplied by the active ClassType adapter (spec
	// §4.7); sanitizeNames falls back to internal/gen.Sanitize's Go
	// keyword table when nil.
	reservedWord func(string) bool
}

// SetReservedWord installs the reserved-word predicate the
// sanitize-names pass should use, as supplied by a ClassType adapter.
func (ctr *Container) SetReservedWord(fn func(string) bool) {
	ctr.reservedWord = fn
}

// NewContainer returns an empty Container with the fallback-to-simple
// filter policy enabled, matching scenario S5.
func NewContainer() *Container {
	return &Container{
		buckets:          make(map[QName][]*Class),
		fallbackToSimple: true,
	}
}

// FromList builds a Container from a flat list of Classes, as produced
// by a parser. Insertion order is preserved within each QName's bucket.
func FromList(classes []*Class) *Container {
	ctr := NewContainer()
	ctr.Extend(classes)
	return ctr
}

// Len returns the number of distinct QNames held by the Container, not
// the total number of Classes (a QName's bucket may hold more than one
// Class before the merge pass runs).
func (ctr *Container) Len() int {
	return len(ctr.order)
}

// Extend appends classes to the Container, appending to each QName's
// existing bucket (or creating one) and preserving relative order.
func (ctr *Container) Extend(classes []*Class) {
	for _, c := range classes {
		if _, ok := ctr.buckets[c.Qname]; !ok {
			ctr.order = append(ctr.order, c.Qname)
		}
		ctr.buckets[c.Qname] = append(ctr.buckets[c.Qname], c)
	}
}

// Register appends a named TransformPass to the set run by ProcessClass,
// in the order passes are registered. Re-registering an existing name
// replaces it in place rather than appending a duplicate.
func (ctr *Container) Register(name string, pass TransformPass) {
	for i, p := range ctr.passes {
		if p.name == name {
			ctr.passes[i].fn = pass
			return
		}
	}
	ctr.passes = append(ctr.passes, namedPass{name, pass})
}

// SetFallbackToSimple overrides the filter policy used when no class
// survives FilterClasses' primary rule. Default is true.
func (ctr *Container) SetFallbackToSimple(v bool) {
	ctr.fallbackToSimple = v
}

// Warnings returns the CodegenWarnings accumulated by transform passes
// so far. The slice is returned by reference; callers should not mutate
// it.
func (ctr *Container) Warnings() []CodegenWarning {
	return ctr.warnings
}

// Warn records a non-fatal CodegenWarning.
func (ctr *Container) Warn(w CodegenWarning) {
	ctr.warnings = append(ctr.warnings, w)
}

// Find returns a Class with the given QName that satisfies predicate
// (or any Class with that QName, if predicate is nil), ensuring every
// candidate it inspects has been processed so the predicate sees its
// final shape. See spec §4.3 for the full algorithm this implements.
//
// Find guarantees: at most one concurrent ProcessClass per Class, no
// repeated processing of an already-processed Class, and resolution
// that converges even when a transform rewrites the bucket mid-search.
func (ctr *Container) Find(qname QName, predicate func(*Class) bool) *Class {
	if _, ok := ctr.buckets[qname]; !ok {
		return nil
	}
	result, advanced := ctr.findOnce(qname, predicate)
	if result != nil {
		return result
	}
	if advanced {
		result, _ = ctr.findOnce(qname, predicate)
	}
	return result
}

// findOnce performs a single left-to-right scan of qname's bucket,
// processing any Raw candidate it encounters before testing the
// predicate against it. It re-reads the bucket on every iteration,
// since processing one candidate may have rewritten the bucket (a
// transform may inline it into another class or split it).
func (ctr *Container) findOnce(qname QName, predicate func(*Class) bool) (*Class, bool) {
	advanced := false
	i := 0
	for {
		bucket := ctr.buckets[qname]
		if i >= len(bucket) {
			return nil, advanced
		}
		candidate := bucket[i]
		if candidate.Status == StatusRaw {
			ctr.ProcessClass(candidate)
			advanced = true
			bucket = ctr.buckets[qname]
			if i >= len(bucket) {
				return nil, advanced
			}
			if bucket[i] != candidate {
				// The bucket was rewritten; examine whatever now sits
				// at index i, processing it first if it is Raw.
				continue
			}
		}
		if predicate == nil || predicate(candidate) {
			return candidate, advanced
		}
		i++
	}
}

// ProcessClass runs every registered TransformPass against c, in
// registration order, exactly once. It is idempotent: calling it again
// on a Class that is not Raw is a no-op, so it is safe to call directly
// as well as through Find.
func (ctr *Container) ProcessClass(c *Class) {
	if c.Status != StatusRaw {
		return
	}
	c.Status = StatusProcessing
	for _, p := range ctr.passes {
		if c.Status == StatusFlattened {
			break
		}
		p.fn(ctr, c)
	}
	if c.Status == StatusProcessing {
		c.Status = StatusProcessed
	}
}

// Remove deletes c from its QName's bucket. Transform passes call this
// when inlining c into another Class; c.Status should be set to
// StatusFlattened first so Find's bookkeeping remains consistent for
// any in-flight scan.
func (ctr *Container) Remove(c *Class) {
	bucket := ctr.buckets[c.Qname]
	for i, cand := range bucket {
		if cand == c {
			ctr.buckets[c.Qname] = append(bucket[:i:i], bucket[i+1:]...)
			break
		}
	}
	if len(ctr.buckets[c.Qname]) == 0 {
		delete(ctr.buckets, c.Qname)
		ctr.removeFromOrder(c.Qname)
	}
}

func (ctr *Container) removeFromOrder(q QName) {
	for i, cand := range ctr.order {
		if cand == q {
			ctr.order = append(ctr.order[:i:i], ctr.order[i+1:]...)
			return
		}
	}
}

// FilterClasses selects which classes survive to emission (spec §4.6).
// A class is kept if it is complex (IsComplex) and ShouldGenerate
// returns true. If that rule keeps nothing at all, and the Container's
// fallback-to-simple policy is enabled (the default), every
// simple-type-derived class is kept instead, so a schema consisting
// only of enumerations still emits something.
//
// FilterClasses rewrites the Container's buckets in place; ClassList
// reflects the new state afterward.
func (ctr *Container) FilterClasses() {
	survivors := ctr.classList()
	kept := survivors[:0:0]
	for _, c := range survivors {
		if c.IsComplex() && c.ShouldGenerate() {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 && ctr.fallbackToSimple {
		for _, c := range survivors {
			if c.IsSimple() {
				kept = append(kept, c)
			}
		}
	}
	ctr.rebuildFrom(kept)
}

func (ctr *Container) rebuildFrom(kept []*Class) {
	ctr.buckets = make(map[QName][]*Class)
	ctr.order = nil
	for _, c := range kept {
		if _, ok := ctr.buckets[c.Qname]; !ok {
			ctr.order = append(ctr.order, c.Qname)
		}
		ctr.buckets[c.Qname] = append(ctr.buckets[c.Qname], c)
	}
}

// ClassList returns every Class currently in the Container, in
// deterministic order: the insertion order of surviving QNames, with
// ties within a bucket broken by original position.
func (ctr *Container) ClassList() []*Class {
	return ctr.classList()
}

func (ctr *Container) classList() []*Class {
	var result []*Class
	for _, q := range ctr.order {
		result = append(result, ctr.buckets[q]...)
	}
	return result
}
