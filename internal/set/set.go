// Package set provides the finite sets the enumerations range over: flat
// atom sets, Cartesian products and function spaces (hom-sets). Every set
// describes one element as a digit vector with per-digit bounds, and a single
// arena-backed Cursor walks that vector with the odometer.
package set

import (
	"fmt"
	"iter"

	"github.com/pshcalc/pshcalc/internal/odometer"
)

// Set is anything with a finite cardinality.
type Set interface {
	Size() int
}

// Space is a set whose elements are digit vectors. Bounds returns the radix
// of every digit; the set's size is their product.
type Space interface {
	Set
	Bounds() []int
}

// AtomSet is the flat set {0, ..., size-1}.
type AtomSet struct {
	size int
}

// NewAtomSet creates a flat set of the given size.
func NewAtomSet(size int) AtomSet {
	if size < 0 {
		panic(fmt.Sprintf("set: negative size %d", size))
	}
	return AtomSet{size: size}
}

// Size returns the number of atoms.
func (s AtomSet) Size() int { return s.size }

// Bounds returns the single digit bound of the set.
func (s AtomSet) Bounds() []int { return []int{s.size} }

// Elements yields every atom in order. It allocates nothing and is meant for
// plain loops inside law checks and drivers.
func (s AtomSet) Elements() iter.Seq[Atom] {
	return func(yield func(Atom) bool) {
		for i := 0; i < s.size; i++ {
			if !yield(Atom{Index: i, Size: s.size}) {
				return
			}
		}
	}
}

// NewCursor allocates the cursor's digit in a.
func (s AtomSet) NewCursor(a Allocator) *Cursor[Atom] {
	return newCursor(a, s, atomView)
}

// ProductSet is the Cartesian product of its factors. Tuples are enumerated
// with the first factor varying fastest.
type ProductSet struct {
	sizes []int
}

// NewProductSet creates the product of the given sets.
func NewProductSet(factors ...Set) ProductSet {
	sizes := make([]int, len(factors))
	for i, f := range factors {
		sizes[i] = f.Size()
	}
	return ProductSet{sizes: sizes}
}

// Size is the product of the factor sizes.
func (s ProductSet) Size() int { return odometer.Size(s.sizes) }

// Bounds returns a copy of the factor sizes.
func (s ProductSet) Bounds() []int { return append([]int(nil), s.sizes...) }

// Arity returns the number of factors.
func (s ProductSet) Arity() int { return len(s.sizes) }

// NewCursor allocates one digit per factor in a.
func (s ProductSet) NewCursor(a Allocator) *Cursor[Tuple] {
	return newCursor(a, s, tupleView)
}

// HomSet is the set of all functions from a domain into a codomain, each
// function stored as its value table over the linear index of the domain.
type HomSet struct {
	domain   int
	codomain int
}

// NewHomSet creates the function space domain → codomain.
func NewHomSet(domain, codomain Set) HomSet {
	return HomSet{domain: domain.Size(), codomain: codomain.Size()}
}

// Size is codomain^domain.
func (s HomSet) Size() int { return odometer.Pow(s.codomain, s.domain) }

// Bounds has one digit per domain element, each bounded by the codomain.
func (s HomSet) Bounds() []int {
	bounds := make([]int, s.domain)
	for i := range bounds {
		bounds[i] = s.codomain
	}
	return bounds
}

// Domain returns the size of the domain.
func (s HomSet) Domain() int { return s.domain }

// Codomain returns the size of the codomain.
func (s HomSet) Codomain() int { return s.codomain }

// NewCursor allocates the value table of a function in a.
func (s HomSet) NewCursor(a Allocator) *Cursor[Function] {
	codomain := s.codomain
	return newCursor(a, s, func(values, bounds []int) Function {
		return Function{values: values, bounds: bounds, codomain: codomain}
	})
}
