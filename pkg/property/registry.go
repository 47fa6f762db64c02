package property

import "fmt"

// MaxRegistryEntries caps the total number of registered identifiers.
// Dependency references are serialized as 2-byte indices, so the
// registry can never address more than 65536 entries.
const MaxRegistryEntries = 65536

// Registry holds every identifier declared in a descriptor document:
// property ids and selection-entry labels, in depth-first document
// order. Dependency references in metadata are serialized as positional
// indices into this sequence, so the sequence must be complete and
// frozen before any dependency-bearing property serializes.
//
// Build, freeze, resolve: the descriptor front end adds all ids in one
// pass, calls Freeze, and only then constructs properties that look up
// indices. Lookups on an unfrozen registry panic, which turns
// order-dependent bugs into immediate failures instead of silently
// wrong indices.
type Registry struct {
	ids    []string
	index  map[string]uint16
	frozen bool
}

// NewRegistry creates an empty identifier registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]uint16)}
}

// Add appends an identifier. Duplicates anywhere in the document are a
// hard error, as is exceeding the 16-bit index space.
func (r *Registry) Add(id string) error {
	if r.frozen {
		panic("property: Add on frozen registry")
	}
	if _, exists := r.index[id]; exists {
		return fmt.Errorf("descriptor contains repeated ID %q", id)
	}
	if len(r.ids) >= MaxRegistryEntries {
		return fmt.Errorf("too many IDs (at most %d)", MaxRegistryEntries)
	}
	r.index[id] = uint16(len(r.ids))
	r.ids = append(r.ids, id)
	return nil
}

// Freeze makes the registry immutable. Index is only usable afterwards.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Index returns the frozen positional index of id.
func (r *Registry) Index(id string) (uint16, bool) {
	if !r.frozen {
		panic("property: Index on unfrozen registry")
	}
	idx, ok := r.index[id]
	return idx, ok
}

// Contains reports whether id is registered.
func (r *Registry) Contains(id string) bool {
	_, ok := r.index[id]
	return ok
}

// IDs returns the identifiers in registration order. The returned slice
// is shared; callers must not modify it.
func (r *Registry) IDs() []string {
	return r.ids
}

// Len returns the number of registered identifiers.
func (r *Registry) Len() int {
	return len(r.ids)
}
