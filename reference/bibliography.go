package reference

import "fmt"

// Bibliography is the ordered collection of references a rendering pass
// operates over. Order is insertion order (spec.md §6.2 "The loader MUST
// preserve insertion order"); spec.md §9 calls out that any map whose
// iteration order is user-visible must be backed by an explicit order
// slice, never Go's randomized map iteration.
type Bibliography struct {
	order []string
	byID  map[string]*Reference
}

// NewBibliography returns an empty, ready-to-use Bibliography.
func NewBibliography() *Bibliography {
	return &Bibliography{byID: make(map[string]*Reference)}
}

// Add appends a reference, assigning it to the end of iteration order. If
// a reference with the same ID already exists, it is replaced in place
// without changing its position.
func (b *Bibliography) Add(ref *Reference) {
	if _, exists := b.byID[ref.ID]; !exists {
		b.order = append(b.order, ref.ID)
	}
	b.byID[ref.ID] = ref
}

// Get looks up a reference by ID.
func (b *Bibliography) Get(id string) (*Reference, bool) {
	if b == nil {
		return nil, false
	}
	r, ok := b.byID[id]
	return r, ok
}

// Len returns the number of references.
func (b *Bibliography) Len() int { return len(b.order) }

// All returns references in insertion order.
func (b *Bibliography) All() []*Reference {
	refs := make([]*Reference, 0, len(b.order))
	for _, id := range b.order {
		refs = append(refs, b.byID[id])
	}
	return refs
}

// Validate performs the bounded parent-chain descent spec.md §9 requires
// ("an implementation may validate by bounded descent") and reports every
// cycle found.
func (b *Bibliography) Validate() []error {
	const maxDepth = 16
	var errs []error
	for _, ref := range b.All() {
		if _, err := ref.Depth(b, maxDepth); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// MustGet looks up a reference by ID, returning a descriptive error for
// spec.md §7's "Reference not found" diagnostic.
func (b *Bibliography) MustGet(id string) (*Reference, error) {
	if r, ok := b.Get(id); ok {
		return r, nil
	}
	return nil, fmt.Errorf("reference not found: %q", id)
}
