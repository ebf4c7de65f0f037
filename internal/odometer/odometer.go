// Package odometer implements the mixed-radix counter shared by every
// generator, and the little-endian linear index that flattens digit vectors.
package odometer

import "fmt"

// Advance increments a mixed-radix digit vector in place.
//
// Digit 0 is the least significant. It is incremented first; when a digit
// reaches its bound it is reset to 0 and the carry moves to the next digit.
// Advance returns true when the carry runs past the most significant digit,
// at which point every digit is 0 again and the sequence is exhausted.
//
// With bounds (2, 3) and digits starting at (0, 0) the visited vectors are
//
//	(0,0) (1,0) (0,1) (1,1) (0,2) (1,2)
//
// and the sixth call returns true. Reading the digits as a function table
// (digit i is the image of element i, every bound equal to the codomain size)
// makes the same routine enumerate a whole function space.
//
// A full traversal of N states costs O(N) increments in total: digit i only
// moves when every digit below it wraps, which happens N / Π_{j<=i} b_j times.
//
// An empty digit vector denotes the single point of the empty product, so the
// first call reports exhaustion. Mismatched lengths panic.
func Advance(digits, bounds []int) bool {
	if len(digits) != len(bounds) {
		panic(fmt.Sprintf("odometer: %d digits but %d bounds", len(digits), len(bounds)))
	}
	for i := range digits {
		digits[i]++
		if digits[i] < bounds[i] {
			return false
		}
		digits[i] = 0
	}
	return true
}

// Reset zeroes every digit.
func Reset(digits []int) {
	for i := range digits {
		digits[i] = 0
	}
}

// IsEmptySpace reports whether some bound is zero, in which case the space
// has no points at all and a cursor over it starts exhausted.
func IsEmptySpace(bounds []int) bool {
	for _, b := range bounds {
		if b <= 0 {
			return true
		}
	}
	return false
}
