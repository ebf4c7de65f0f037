package psh

import (
	lawerrors "github.com/pshcalc/pshcalc/internal/errors"
)

// Validate checks well-definedness and then functoriality against the
// presheaf's category, returning the first violation or nil.
func (p *Presheaf) Validate() error {
	return p.check().Err()
}

func (p *Presheaf) check() lawerrors.Violation {
	if v := p.checkWellDefined(); !v.OK() {
		return v
	}
	return p.checkFunctorial()
}

// checkWellDefined requires s·f to lie over source(f) whenever s lies over
// target(f), and the stored digit to be the canonical 0 otherwise.
func (p *Presheaf) checkWellDefined() lawerrors.Violation {
	c := p.category
	for f := c.Objects(); f < c.Morphisms(); f++ {
		sf, tf := c.Source(f), c.Target(f)
		for s := range p.pi {
			t := p.stored(s, f)
			if p.pi[s] != tf {
				if t != 0 {
					return lawerrors.Violation{Code: lawerrors.CodeNotWellDefined, Witness: [3]int{s, f}}
				}
				continue
			}
			if p.pi[t] != sf {
				return lawerrors.Violation{Code: lawerrors.CodeNotWellDefined, Witness: [3]int{s, f}}
			}
		}
	}
	return lawerrors.Violation{}
}

// checkFunctorial requires s·(g∘f) == (s·g)·f for every composable pair of
// non-identity morphisms. Pairs with an identity hold by construction.
func (p *Presheaf) checkFunctorial() lawerrors.Violation {
	c := p.category
	for g := c.Objects(); g < c.Morphisms(); g++ {
		tg := c.Target(g)
		for f := c.Objects(); f < c.Morphisms(); f++ {
			gf, ok := c.Compose(g, f)
			if !ok {
				continue
			}
			for s := range p.pi {
				if p.pi[s] != tg {
					continue
				}
				left, leftOK := p.Act(p.stored(s, g), f)
				right, rightOK := p.Act(s, gf)
				if leftOK != rightOK || left != right {
					return lawerrors.Violation{Code: lawerrors.CodeNonFunctorial, Witness: [3]int{s, g, f}}
				}
			}
		}
	}
	return lawerrors.Violation{}
}
