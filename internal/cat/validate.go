package cat

import (
	lawerrors "github.com/pshcalc/pshcalc/internal/errors"
)

// Validate checks the category laws and returns the first violation as a
// *errors.LawError, or nil. The cheap O(m²) checks run before the O(k³)
// associativity check.
func (c *Category) Validate() error {
	return c.check().Err()
}

func (c *Category) check() lawerrors.Violation {
	if v := c.checkWellDefined(); !v.OK() {
		return v
	}
	if v := c.checkIdentities(); !v.OK() {
		return v
	}
	return c.checkAssociativity()
}

// checkWellDefined requires the stored digit of a non-composable pair to be
// the canonical 0, and the composite of a composable pair to run from
// source(f) to target(g). Each category therefore has exactly one table.
func (c *Category) checkWellDefined() lawerrors.Violation {
	for g := c.objects; g < c.morphisms; g++ {
		sg, tg := c.Source(g), c.Target(g)
		for f := c.objects; f < c.morphisms; f++ {
			h := c.stored(g, f)
			if c.Target(f) != sg {
				if h != 0 {
					return incompatible(g, f)
				}
				continue
			}
			if c.Source(h) != c.Source(f) || c.Target(h) != tg {
				return incompatible(g, f)
			}
		}
	}
	return lawerrors.Violation{}
}

func (c *Category) checkIdentities() lawerrors.Violation {
	for x := 0; x < c.objects; x++ {
		for f := 0; f < c.morphisms; f++ {
			if c.Source(f) == x {
				if h, ok := c.Compose(f, x); !ok || h != f {
					return lawerrors.Violation{Code: lawerrors.CodeNotAnIdentity, Witness: [3]int{x}}
				}
			}
			if c.Target(f) == x {
				if h, ok := c.Compose(x, f); !ok || h != f {
					return lawerrors.Violation{Code: lawerrors.CodeNotAnIdentity, Witness: [3]int{x}}
				}
			}
		}
	}
	return lawerrors.Violation{}
}

// checkAssociativity compares (h∘g)∘f with h∘(g∘f) as options. Triples that
// contain an identity agree by the composition rule once the endpoints are
// well-defined, so only non-identity triples are visited.
func (c *Category) checkAssociativity() lawerrors.Violation {
	for f := c.objects; f < c.morphisms; f++ {
		for g := c.objects; g < c.morphisms; g++ {
			gf, gfOK := c.Compose(g, f)
			for h := c.objects; h < c.morphisms; h++ {
				hg, hgOK := c.Compose(h, g)

				left, leftOK := Undefined, false
				if hgOK {
					left, leftOK = c.Compose(hg, f)
				}
				right, rightOK := Undefined, false
				if gfOK {
					right, rightOK = c.Compose(h, gf)
				}

				if leftOK != rightOK || left != right {
					return lawerrors.Violation{Code: lawerrors.CodeNonAssociative, Witness: [3]int{h, g, f}}
				}
			}
		}
	}
	return lawerrors.Violation{}
}

func incompatible(g, f int) lawerrors.Violation {
	return lawerrors.Violation{Code: lawerrors.CodeIncompatibleComposition, Witness: [3]int{g, f}}
}
