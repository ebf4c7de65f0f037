package set

import "github.com/pshcalc/pshcalc/internal/odometer"

// Indexable is an element that can be flattened to its linear index within
// its set. Function tables are addressed by the linear index of the input.
type Indexable interface {
	LinearIndex() int
	LinearSize() int
}

// Atom is an element of an AtomSet.
type Atom struct {
	Index int
	Size  int
}

// LinearIndex is the atom itself.
func (a Atom) LinearIndex() int { return a.Index }

// LinearSize is the size of the atom set.
func (a Atom) LinearSize() int { return a.Size }

// Tuple is a borrowed view of an element of a ProductSet.
type Tuple struct {
	digits []int
	bounds []int
}

// NewTuple wraps explicit digits and bounds, for callers that build inputs
// by hand rather than through a cursor.
func NewTuple(digits, bounds []int) Tuple {
	if len(digits) != len(bounds) {
		panic("set: tuple digits and bounds differ in length")
	}
	return Tuple{digits: digits, bounds: bounds}
}

// At returns component i.
func (t Tuple) At(i int) int { return t.digits[i] }

// Len returns the number of components.
func (t Tuple) Len() int { return len(t.digits) }

// Digits returns the components. The slice aliases the arena; do not modify.
func (t Tuple) Digits() []int { return t.digits }

// LinearIndex is the position of the tuple in its product, first
// component least significant.
func (t Tuple) LinearIndex() int { return odometer.LinearIndex(t.digits, t.bounds) }

// LinearSize is the size of the product.
func (t Tuple) LinearSize() int { return odometer.Size(t.bounds) }

// StackTuple is a pair that lives entirely on the stack. The associativity
// hot path builds its inputs with it instead of touching the arena.
type StackTuple struct {
	Digits [2]int
	Bounds [2]int
}

// Pair returns the StackTuple (x, y) of the square n×n.
func Pair(x, y, n int) StackTuple {
	return StackTuple{Digits: [2]int{x, y}, Bounds: [2]int{n, n}}
}

// LinearIndex is x + y·n.
func (t StackTuple) LinearIndex() int { return t.Digits[0] + t.Digits[1]*t.Bounds[0] }

// LinearSize is n².
func (t StackTuple) LinearSize() int { return t.Bounds[0] * t.Bounds[1] }

// Function is a borrowed view of an element of a HomSet: a value table
// indexed by the linear index of the input.
type Function struct {
	values   []int
	bounds   []int
	codomain int
}

// NewFunction wraps an explicit value table with the given codomain size.
func NewFunction(values []int, codomain int) Function {
	bounds := make([]int, len(values))
	for i := range bounds {
		bounds[i] = codomain
	}
	return Function{values: values, bounds: bounds, codomain: codomain}
}

// Apply evaluates the function at x.
func (f Function) Apply(x Indexable) Atom {
	return Atom{Index: f.values[x.LinearIndex()], Size: f.codomain}
}

// ApplyIndex evaluates the function at the input with linear index i.
func (f Function) ApplyIndex(i int) int { return f.values[i] }

// DomainSize returns the number of table entries.
func (f Function) DomainSize() int { return len(f.values) }

// Codomain returns the size of the codomain.
func (f Function) Codomain() int { return f.codomain }

// Table returns the value table. The slice aliases the arena; do not modify.
func (f Function) Table() []int { return f.values }

// LinearIndex is the position of the function in its hom-set.
func (f Function) LinearIndex() int { return odometer.LinearIndex(f.values, f.bounds) }

// LinearSize is the size of the hom-set, codomain^domain.
func (f Function) LinearSize() int { return odometer.Pow(f.codomain, len(f.values)) }
