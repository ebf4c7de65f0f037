package magma

import (
	"github.com/pshcalc/pshcalc/internal/arena"
	"github.com/pshcalc/pshcalc/internal/set"
)

// Operations returns Hom(A×A, A) for |A| = n, the set of all binary
// operations on n elements.
func Operations(n int) set.HomSet {
	a := set.NewAtomSet(n)
	return set.NewHomSet(set.NewProductSet(a, a), a)
}

// CountAssociative walks every binary operation on n elements and returns
// how many are associative. visit, when non-nil, sees each associative
// table; the view is only valid during the call.
func CountAssociative(a *arena.Arena, n int, visit func(set.Function)) int {
	c := Operations(n).NewCursor(a)
	count := 0
	for c.Initialize(a); !c.Done(); c.Advance(a) {
		f, _ := c.Get(a)
		if !IsAssociative(f) {
			continue
		}
		count++
		if visit != nil {
			visit(f)
		}
	}
	return count
}
