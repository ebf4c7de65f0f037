// Package magma checks binary operations f: A×A → A for associativity.
//
// This is the throughput-critical path of semigroup search: there are
// n^(n²) tables and each needs an O(n³) check, so the check builds its
// inputs as stack tuples and reads the table directly, without the arena.
package magma

import (
	"github.com/pshcalc/pshcalc/internal/set"
)

// IsAssociative reports whether f(f(i,j),k) == f(i,f(j,k)) for all i, j, k.
// f must be a table over the little-endian pair index i + j·n.
func IsAssociative(f set.Function) bool {
	return IsAssociativeTable(f.Table(), f.Codomain())
}

// IsAssociativeTable is IsAssociative on a raw n×n table.
func IsAssociativeTable(table []int, n int) bool {
	_, _, _, found := FindNonAssociative(table, n)
	return !found
}

// FindNonAssociative returns the first triple (i, j, k) on which the table
// is not associative.
func FindNonAssociative(table []int, n int) (i, j, k int, found bool) {
	var ij, left, jk, right set.StackTuple
	ij.Bounds = [2]int{n, n}
	left.Bounds = ij.Bounds
	jk.Bounds = ij.Bounds
	right.Bounds = ij.Bounds

	for i = 0; i < n; i++ {
		ij.Digits[0] = i
		right.Digits[0] = i
		for j = 0; j < n; j++ {
			ij.Digits[1] = j
			jk.Digits[0] = j
			left.Digits[0] = table[ij.LinearIndex()]
			for k = 0; k < n; k++ {
				left.Digits[1] = k
				jk.Digits[1] = k
				right.Digits[1] = table[jk.LinearIndex()]
				if table[left.LinearIndex()] != table[right.LinearIndex()] {
					return i, j, k, true
				}
			}
		}
	}
	return 0, 0, 0, false
}

// HasIdentity returns a two-sided identity element of the table, if any.
func HasIdentity(table []int, n int) (int, bool) {
	for e := 0; e < n; e++ {
		ok := true
		for x := 0; x < n && ok; x++ {
			ok = table[e+x*n] == x && table[x+e*n] == x
		}
		if ok {
			return e, true
		}
	}
	return 0, false
}
