// Package arena provides the shared backing store for coordinate state.
//
// An Arena holds two parallel slices, the current digit of every live
// coordinate and the radix that digit counts in. Generators never own
// memory of their own: they allocate a Range once and then read and write
// through it for the rest of the enumeration session. Independent cursors
// may share one arena as long as their ranges are disjoint.
package arena

import (
	"fmt"

	"github.com/pshcalc/pshcalc/internal/odometer"
)

// Range is a handle on a contiguous run of arena slots.
type Range struct {
	Start int
	Len   int
}

// End returns the offset one past the last slot.
func (r Range) End() int {
	return r.Start + r.Len
}

// Contains reports whether the absolute offset i lies inside the range.
func (r Range) Contains(i int) bool {
	return i >= r.Start && i < r.End()
}

// Arena is an append-only store of digits and bounds.
// It is owned by one enumeration session and is not safe for concurrent use.
type Arena struct {
	values []int
	bounds []int
}

// New creates an empty Arena.
func New() *Arena {
	return &Arena{}
}

// NewWithCapacity creates an Arena whose first n slots will not reallocate.
func NewWithCapacity(n int) *Arena {
	return &Arena{
		values: make([]int, 0, n),
		bounds: make([]int, 0, n),
	}
}

// Alloc appends count zero-initialised slots and returns their handle.
// Slices obtained from Values or Bounds before the call may no longer alias
// the arena afterwards; fetch them again.
func (a *Arena) Alloc(count int) Range {
	if count < 0 {
		panic(fmt.Sprintf("arena: negative allocation %d", count))
	}
	start := len(a.values)
	a.values = append(a.values, make([]int, count)...)
	a.bounds = append(a.bounds, make([]int, count)...)
	return Range{Start: start, Len: count}
}

// Len returns the number of allocated slots.
func (a *Arena) Len() int {
	return len(a.values)
}

// Values returns the digits of r. Writes go straight to the arena.
func (a *Arena) Values(r Range) []int {
	a.check(r)
	return a.values[r.Start:r.End():r.End()]
}

// Bounds returns the radices of r.
func (a *Arena) Bounds(r Range) []int {
	a.check(r)
	return a.bounds[r.Start:r.End():r.End()]
}

// SetBounds gives every digit of r the same radix.
func (a *Arena) SetBounds(r Range, bound int) {
	b := a.Bounds(r)
	for i := range b {
		b[i] = bound
	}
}

// Reset zeroes the digits of r.
func (a *Arena) Reset(r Range) {
	odometer.Reset(a.Values(r))
}

// Advance steps the digits of r to the next point of their space and
// reports whether the space is exhausted.
func (a *Arena) Advance(r Range) bool {
	a.check(r)
	return odometer.Advance(a.values[r.Start:r.End()], a.bounds[r.Start:r.End()])
}

func (a *Arena) check(r Range) {
	if r.Start < 0 || r.Len < 0 || r.End() > len(a.values) {
		panic(fmt.Sprintf("arena: range [%d, %d) out of bounds (len %d)", r.Start, r.End(), len(a.values)))
	}
}
