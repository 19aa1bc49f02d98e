package storage

import (
	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/rebacs/rebacs/pkg/rebac"
)

// SortedWitnessSet stores a set of witnesses keyed by the entity's string
// form (no duplicate entities allowed) in a way that also provides fast
// sorted access.
type SortedWitnessSet interface {
	Size() int
	Put(w rebac.Witness) bool
	Exists(entity rebac.Node) bool
	Values() []rebac.Witness
}

type redBlackWitnessSet struct {
	inner *redblacktree.Tree
}

var _ SortedWitnessSet = (*redBlackWitnessSet)(nil)

func NewSortedWitnessSet() SortedWitnessSet {
	return &redBlackWitnessSet{
		inner: redblacktree.NewWithStringComparator(),
	}
}

// Put inserts w unless a witness for the same entity is already present.
// It reports whether the set changed.
func (r *redBlackWitnessSet) Put(w rebac.Witness) bool {
	key := w.Entity.String()
	if _, ok := r.inner.Get(key); ok {
		return false
	}
	r.inner.Put(key, w)
	return true
}

func (r *redBlackWitnessSet) Exists(entity rebac.Node) bool {
	_, ok := r.inner.Get(entity.String())
	return ok
}

func (r *redBlackWitnessSet) Size() int {
	return r.inner.Size()
}

// Values returns the witnesses ordered by entity string form.
func (r *redBlackWitnessSet) Values() []rebac.Witness {
	values := make([]rebac.Witness, 0, r.inner.Size())
	for _, v := range r.inner.Values() {
		values = append(values, v.(rebac.Witness))
	}
	return values
}
