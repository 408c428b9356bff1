// Package extract turns application documents into sets of media asset
// references.
//
// One pure function per schema, composed by the sweep driver and the
// differential reconciler. Extraction never reads the database and never
// errors: missing nested fields are simply skipped, so one malformed document
// can never abort a whole sweep. Omitting an asset-bearing field here
// misclassifies live assets as orphans, which is why every schema has an
// exhaustiveness test.
package extract

import (
	"sort"

	"github.com/mentora-io/assetgc/internal/mediastore"
)

// Ref is one extracted asset reference.
type Ref struct {
	// ID is the asset's public ID.
	ID string

	// Kind is the resolved resource kind (see kind precedence in kindOf).
	Kind mediastore.Kind

	// OwnerPath names the document field the reference was extracted from,
	// e.g. "coaches/c1/gallery[2]". Diagnostic only.
	OwnerPath string
}

// RefSet is a set of references keyed by public ID.
//
// Each sweep run and each reconciliation owns its own RefSet value; the set
// is never shared package state.
type RefSet struct {
	refs map[string]Ref
}

// NewRefSet returns an empty RefSet.
func NewRefSet() *RefSet {
	return &RefSet{refs: make(map[string]Ref)}
}

// Add inserts a reference. The first insertion of an ID wins: an asset's kind
// follows its first (initial) tagging, and re-tagging by a later duplicate
// reference must not change it.
func (s *RefSet) Add(ref Ref) {
	if ref.ID == "" {
		return
	}
	if _, exists := s.refs[ref.ID]; exists {
		return
	}
	s.refs[ref.ID] = ref
}

// Union inserts every reference of other into s.
func (s *RefSet) Union(other *RefSet) {
	if other == nil {
		return
	}
	for _, ref := range other.refs {
		s.Add(ref)
	}
}

// Diff returns the references in s whose IDs are absent from other.
// Membership is by ID only; kinds in the result follow s.
func (s *RefSet) Diff(other *RefSet) *RefSet {
	out := NewRefSet()
	for id, ref := range s.refs {
		if other != nil && other.Contains(id) {
			continue
		}
		out.Add(ref)
	}
	return out
}

// Contains reports whether the set holds the given public ID.
func (s *RefSet) Contains(id string) bool {
	_, ok := s.refs[id]
	return ok
}

// Get returns the reference for an ID, if present.
func (s *RefSet) Get(id string) (Ref, bool) {
	ref, ok := s.refs[id]
	return ref, ok
}

// Len returns the number of references in the set.
func (s *RefSet) Len() int {
	return len(s.refs)
}

// IDs returns every public ID in the set, sorted.
func (s *RefSet) IDs() []string {
	out := make([]string, 0, len(s.refs))
	for id := range s.refs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// ByKind groups the set's IDs by resource kind, each group sorted.
func (s *RefSet) ByKind() map[mediastore.Kind][]string {
	out := make(map[mediastore.Kind][]string)
	for id, ref := range s.refs {
		out[ref.Kind] = append(out[ref.Kind], id)
	}
	for kind := range out {
		sort.Strings(out[kind])
	}
	return out
}
