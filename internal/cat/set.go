package cat

import (
	"github.com/pshcalc/pshcalc/internal/arena"
	lawerrors "github.com/pshcalc/pshcalc/internal/errors"
	"github.com/pshcalc/pshcalc/internal/set"
)

// CategorySet is the set of all categories on a fixed skeleton: object
// count, morphism count and the endpoints of every non-identity morphism.
// Only the composition table varies.
type CategorySet struct {
	objects int
	source  []int
	target  []int
}

// NewCategorySet creates the generator for the given skeleton.
func NewCategorySet(objects int, source, target []int) *CategorySet {
	checkSkeleton(objects, source, target)
	return &CategorySet{
		objects: objects,
		source:  append([]int(nil), source...),
		target:  append([]int(nil), target...),
	}
}

// NewMonoidSet creates the generator of monoids on n elements: one object,
// n morphisms, element 0 the identity.
func NewMonoidSet(n int) *CategorySet {
	if n < 1 {
		panic("cat: a monoid has at least one element")
	}
	return NewCategorySet(1, make([]int, n-1), make([]int, n-1))
}

// Objects returns the number of objects of the skeleton.
func (s *CategorySet) Objects() int { return s.objects }

// Morphisms returns the number of morphisms, identities included.
func (s *CategorySet) Morphisms() int { return s.objects + len(s.source) }

// RawSize is the number of raw composition tables the cursor walks.
func (s *CategorySet) RawSize() int { return rawSize(s.objects, s.Morphisms()) }

// Cursor enumerates the valid categories of a CategorySet.
//
// The composition table lives in the arena, one digit per non-identity pair
// with bound m, and is walked by a set.Validated cursor whose check is
// Category validation.
type Cursor struct {
	*set.Validated
	view Category
}

// NewCursor allocates the composition table in a.
func (s *CategorySet) NewCursor(a *arena.Arena) *Cursor {
	k := len(s.source)
	bounds := make([]int, k*k)
	for i := range bounds {
		bounds[i] = s.Morphisms()
	}
	c := &Cursor{
		view: Category{
			objects:   s.objects,
			morphisms: s.Morphisms(),
			source:    s.source,
			target:    s.target,
		},
	}
	c.Validated = set.NewValidated(a, bounds, func(values []int) lawerrors.Violation {
		c.view.composition = values
		return c.view.check()
	})
	return c
}

// Get returns the current category, or false once exhausted. The returned
// value is owned by the cursor; Clone it to keep it past the next Advance.
func (c *Cursor) Get(a *arena.Arena) (*Category, bool) {
	if c.Done() {
		return nil, false
	}
	c.view.composition = c.Values(a)
	return &c.view, true
}

// Count runs a fresh traversal and returns the number of valid categories.
func (c *Cursor) Count(a *arena.Arena) int {
	n := 0
	for c.Initialize(a); !c.Done(); c.Advance(a) {
		n++
	}
	return n
}
