package psh

import (
	"github.com/pshcalc/pshcalc/internal/arena"
	"github.com/pshcalc/pshcalc/internal/cat"
	lawerrors "github.com/pshcalc/pshcalc/internal/errors"
	"github.com/pshcalc/pshcalc/internal/odometer"
	"github.com/pshcalc/pshcalc/internal/set"
)

// PresheafSet is the set of all presheaves over a category with a fixed
// assignment of sections to objects. Only the action table varies.
//
// The category is borrowed. A PresheafSet built over the value of an outer
// category cursor follows that cursor as it advances, provided the outer Get
// is called before each inner traversal.
type PresheafSet struct {
	category *cat.Category
	pi       []int
}

// NewPresheafSet creates the generator over c with fibers given by pi.
func NewPresheafSet(c *cat.Category, pi []int) *PresheafSet {
	checkFibers(c, pi)
	return &PresheafSet{category: c, pi: append([]int(nil), pi...)}
}

// Sections returns the number of sections every presheaf in the set has.
func (s *PresheafSet) Sections() int { return len(s.pi) }

// RawSize is S^(S·k), the number of raw action tables.
func (s *PresheafSet) RawSize() int {
	k := s.category.Morphisms() - s.category.Objects()
	return odometer.Pow(len(s.pi), len(s.pi)*k)
}

// IdentityAction returns the action table in which every morphism acts as
// the identity on the sections it applies to. It is a valid presheaf
// whenever every morphism with a non-empty target fiber is an endomorphism,
// in particular over every monoid.
func IdentityAction(c *cat.Category, pi []int) []int {
	k := c.Morphisms() - c.Objects()
	action := make([]int, len(pi)*k)
	for f := c.Objects(); f < c.Morphisms(); f++ {
		for s := range pi {
			if pi[s] == c.Target(f) {
				action[s+(f-c.Objects())*len(pi)] = s
			}
		}
	}
	return action
}

// Cursor enumerates the valid presheaves of a PresheafSet, skipping invalid
// action tables with a set.Validated cursor.
type Cursor struct {
	*set.Validated
	view Presheaf
}

// NewCursor allocates the action table in a.
func (s *PresheafSet) NewCursor(a *arena.Arena) *Cursor {
	k := s.category.Morphisms() - s.category.Objects()
	bounds := make([]int, len(s.pi)*k)
	for i := range bounds {
		bounds[i] = len(s.pi)
	}
	c := &Cursor{
		view: Presheaf{category: s.category, pi: s.pi},
	}
	c.Validated = set.NewValidated(a, bounds, func(values []int) lawerrors.Violation {
		c.view.action = values
		return c.view.check()
	})
	return c
}

// Get returns the current presheaf, or false once exhausted. The returned
// value is owned by the cursor; Clone it to keep it past the next Advance.
func (c *Cursor) Get(a *arena.Arena) (*Presheaf, bool) {
	if c.Done() {
		return nil, false
	}
	c.view.action = c.Values(a)
	return &c.view, true
}

// Count runs a fresh traversal and returns the number of valid presheaves.
func (c *Cursor) Count(a *arena.Arena) int {
	n := 0
	for c.Initialize(a); !c.Done(); c.Advance(a) {
		n++
	}
	return n
}
