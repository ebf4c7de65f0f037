// Package psh enumerates and validates presheaves over a finite category.
//
// A presheaf assigns to every object x the fiber of sections s with
// pi(s) = x, and to every morphism f: a → b a map from the fiber over b to
// the fiber over a, written s ↦ s·f. Identities act as the identity, so the
// action table only stores the k non-identity morphisms: entry (s, f') at
// s + f'·S, with S the section count and f' = f-n.
package psh

import (
	"fmt"

	"github.com/pshcalc/pshcalc/internal/cat"
)

// Undefined is returned by Action when s is not in the fiber over target(f).
const Undefined = -1

// Presheaf is a candidate presheaf. Values handed out by a Cursor borrow the
// arena and change on the next Advance.
type Presheaf struct {
	category *cat.Category
	pi       []int
	action   []int
}

// New builds a presheaf from explicit data. pi maps every section to an
// object; action has Sections()·k entries. Malformed input panics.
func New(c *cat.Category, pi, action []int) *Presheaf {
	checkFibers(c, pi)
	k := c.Morphisms() - c.Objects()
	if len(action) != len(pi)*k {
		panic(fmt.Sprintf("psh: action has %d entries, want %d", len(action), len(pi)*k))
	}
	for i, s := range action {
		if s < 0 || s >= len(pi) {
			panic(fmt.Sprintf("psh: action[%d] = %d out of range [0, %d)", i, s, len(pi)))
		}
	}
	return &Presheaf{category: c, pi: pi, action: action}
}

func checkFibers(c *cat.Category, pi []int) {
	for s, x := range pi {
		if x < 0 || x >= c.Objects() {
			panic(fmt.Sprintf("psh: section %d lies over %d, outside %d objects", s, x, c.Objects()))
		}
	}
}

// FiberMap returns pi for fibers of the given sizes, sections numbered fiber
// by fiber: FiberMap(2, 1) is [0 0 1].
func FiberMap(sizes ...int) []int {
	var pi []int
	for x, n := range sizes {
		for i := 0; i < n; i++ {
			pi = append(pi, x)
		}
	}
	return pi
}

// Category returns the category the presheaf is defined over.
func (p *Presheaf) Category() *cat.Category { return p.category }

// Sections returns the total number of sections over all objects.
func (p *Presheaf) Sections() int { return len(p.pi) }

// Pi returns the object section s lies over.
func (p *Presheaf) Pi(s int) int { return p.pi[s] }

// Fiber returns the sections over x.
func (p *Presheaf) Fiber(x int) []int {
	var fiber []int
	for s, y := range p.pi {
		if y == x {
			fiber = append(fiber, s)
		}
	}
	return fiber
}

// Act returns s·f and true, or false when pi(s) != target(f).
func (p *Presheaf) Act(s, f int) (int, bool) {
	if p.pi[s] != p.category.Target(f) {
		return Undefined, false
	}
	if p.category.IsIdentity(f) {
		return s, true
	}
	return p.stored(s, f), true
}

// Action is Act without the flag.
func (p *Presheaf) Action(s, f int) int {
	t, _ := p.Act(s, f)
	return t
}

func (p *Presheaf) stored(s, f int) int {
	return p.action[s+(f-p.category.Objects())*len(p.pi)]
}

// Table returns the raw action table.
func (p *Presheaf) Table() []int { return p.action }

// Clone returns a copy that no longer borrows the arena. The category is
// shared.
func (p *Presheaf) Clone() *Presheaf {
	return &Presheaf{
		category: p.category,
		pi:       append([]int(nil), p.pi...),
		action:   append([]int(nil), p.action...),
	}
}
