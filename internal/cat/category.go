// Package cat enumerates and validates finite categories.
//
// A category skeleton has n objects and m morphisms. The first n morphisms
// are the identities, id_x = x, so source, target and composition only store
// data for the k = m-n non-identity morphisms. Compositions that involve an
// identity are computed by rule. The composition table holds k×k entries,
// entry (f', g') at f' + g'·k where f' = f-n and g' = g-n, matching the
// little-endian linear index used everywhere else.
//
// Validate also requires the composite of a composable pair g∘f to run from
// source(f) to target(g). Tables that fail this are not categories even when
// they happen to be associative, so the counts a CategorySet cursor produces
// are true category counts, smaller than a count of associative tables for
// skeletons with more than one object.
package cat

import (
	"fmt"

	"github.com/pshcalc/pshcalc/internal/odometer"
)

// Undefined is returned by Composition for a pair that does not compose.
// It is not a morphism index.
const Undefined = -1

// Category is a candidate finite category. Values handed out by a Cursor
// borrow the arena and change on the next Advance.
type Category struct {
	objects     int
	morphisms   int
	source      []int
	target      []int
	composition []int
}

// New builds a category from explicit non-identity data. source and target
// have one entry per non-identity morphism, composition k·k entries.
// Malformed input panics.
func New(objects int, source, target, composition []int) *Category {
	checkSkeleton(objects, source, target)
	k := len(source)
	m := objects + k
	if len(composition) != k*k {
		panic(fmt.Sprintf("cat: composition has %d entries, want %d", len(composition), k*k))
	}
	for i, h := range composition {
		if h < 0 || h >= m {
			panic(fmt.Sprintf("cat: composition[%d] = %d out of range [0, %d)", i, h, m))
		}
	}
	return &Category{
		objects:     objects,
		morphisms:   m,
		source:      source,
		target:      target,
		composition: composition,
	}
}

func checkSkeleton(objects int, source, target []int) {
	if objects < 0 {
		panic(fmt.Sprintf("cat: negative object count %d", objects))
	}
	if len(source) != len(target) {
		panic(fmt.Sprintf("cat: %d sources but %d targets", len(source), len(target)))
	}
	for i := range source {
		if source[i] < 0 || source[i] >= objects || target[i] < 0 || target[i] >= objects {
			panic(fmt.Sprintf("cat: morphism %d has endpoints (%d, %d) outside %d objects",
				objects+i, source[i], target[i], objects))
		}
	}
}

// Objects returns the number of objects.
func (c *Category) Objects() int { return c.objects }

// Morphisms returns the number of morphisms, identities included.
func (c *Category) Morphisms() int { return c.morphisms }

// IsIdentity reports whether f is one of the first Objects() morphisms.
func (c *Category) IsIdentity(f int) bool { return f < c.objects }

// Identity returns id_x.
func (c *Category) Identity(x int) int { return x }

// Source returns the domain object of morphism f.
func (c *Category) Source(f int) int {
	if f < c.objects {
		return f
	}
	return c.source[f-c.objects]
}

// Target returns the codomain object of morphism f.
func (c *Category) Target(f int) int {
	if f < c.objects {
		return f
	}
	return c.target[f-c.objects]
}

// Compose returns g∘f and true, or false when target(f) != source(g).
func (c *Category) Compose(g, f int) (int, bool) {
	if c.Target(f) != c.Source(g) {
		return Undefined, false
	}
	if g < c.objects {
		return f, true
	}
	if f < c.objects {
		return g, true
	}
	return c.stored(g, f), true
}

// Composition is Compose without the flag: Undefined for pairs that do not
// compose.
func (c *Category) Composition(g, f int) int {
	h, _ := c.Compose(g, f)
	return h
}

// stored reads the raw table entry for two non-identity morphisms.
func (c *Category) stored(g, f int) int {
	k := c.morphisms - c.objects
	return c.composition[(f-c.objects)+(g-c.objects)*k]
}

// Table returns the raw composition table.
func (c *Category) Table() []int { return c.composition }

// Clone returns a copy that no longer borrows the arena.
func (c *Category) Clone() *Category {
	return &Category{
		objects:     c.objects,
		morphisms:   c.morphisms,
		source:      append([]int(nil), c.source...),
		target:      append([]int(nil), c.target...),
		composition: append([]int(nil), c.composition...),
	}
}

// String renders the composition table row by row, one row per g.
func (c *Category) String() string {
	k := c.morphisms - c.objects
	s := fmt.Sprintf("Category(objects=%d, morphisms=%d)", c.objects, c.morphisms)
	for g := 0; g < k; g++ {
		s += fmt.Sprintf("\n  %d∘- : %v", c.objects+g, c.composition[g*k:(g+1)*k])
	}
	return s
}

// rawSize returns m^(k·k), the number of raw composition tables.
func rawSize(objects, morphisms int) int {
	k := morphisms - objects
	return odometer.Pow(morphisms, k*k)
}
