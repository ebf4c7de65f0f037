package set

import (
	"github.com/pshcalc/pshcalc/internal/arena"
	"github.com/pshcalc/pshcalc/internal/odometer"
)

// Allocator is the part of the arena a cursor needs: slot allocation and
// access to the digits and bounds of its own range.
type Allocator interface {
	Alloc(count int) arena.Range
	Values(r arena.Range) []int
	Bounds(r arena.Range) []int
	Reset(r arena.Range)
	Advance(r arena.Range) bool
}

// Cursor walks every element of a Space exactly once, in odometer order.
//
// It owns a range of the arena but no memory of its own; the view returned
// by Get borrows the arena and is only valid until the next Advance or
// Alloc. A cursor is restartable: Initialize rewinds it to the zero vector.
//
//	c := hom.NewCursor(a)
//	for c.Initialize(a); !c.Done(); c.Advance(a) {
//		f, _ := c.Get(a)
//		...
//	}
type Cursor[V any] struct {
	rng   arena.Range
	empty bool
	done  bool
	view  func(values, bounds []int) V
}

func newCursor[V any](a Allocator, s Space, view func(values, bounds []int) V) *Cursor[V] {
	bounds := s.Bounds()
	rng := a.Alloc(len(bounds))
	copy(a.Bounds(rng), bounds)
	return &Cursor[V]{
		rng:   rng,
		empty: odometer.IsEmptySpace(bounds),
		done:  true,
		view:  view,
	}
}

// Initialize zeroes the digits and marks the cursor live, unless the space
// has no elements at all.
func (c *Cursor[V]) Initialize(a Allocator) {
	a.Reset(c.rng)
	c.done = c.empty
}

// Advance moves to the next element. It is a no-op once the cursor is done.
func (c *Cursor[V]) Advance(a Allocator) {
	if c.done {
		return
	}
	c.done = a.Advance(c.rng)
}

// Get returns a view of the current element, or false once exhausted.
func (c *Cursor[V]) Get(a Allocator) (V, bool) {
	if c.done {
		var zero V
		return zero, false
	}
	return c.view(a.Values(c.rng), a.Bounds(c.rng)), true
}

// Done reports whether the cursor has run past the last element.
func (c *Cursor[V]) Done() bool {
	return c.done
}

// Range returns the arena slots backing the cursor.
func (c *Cursor[V]) Range() arena.Range {
	return c.rng
}

// Count drains a fresh traversal and returns the number of elements.
// It is mainly useful for tests and size sanity checks.
func (c *Cursor[V]) Count(a Allocator) int {
	n := 0
	for c.Initialize(a); !c.Done(); c.Advance(a) {
		n++
	}
	return n
}

func atomView(values, bounds []int) Atom {
	return Atom{Index: values[0], Size: bounds[0]}
}

func tupleView(values, bounds []int) Tuple {
	return Tuple{digits: values, bounds: bounds}
}
