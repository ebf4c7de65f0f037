package odometer

import (
	"fmt"
	"math"
	"math/bits"
)

// LinearIndex flattens a digit vector into [0, Size(bounds)).
// The convention matches Advance: d_0 is least significant, so
// index = Σ d_i · Π_{j<i} b_j. Every tuple and function table in the
// module is addressed with this map.
func LinearIndex(digits, bounds []int) int {
	if len(digits) != len(bounds) {
		panic(fmt.Sprintf("odometer: %d digits but %d bounds", len(digits), len(bounds)))
	}
	index := 0
	multiplier := 1
	for i, d := range digits {
		index += d * multiplier
		multiplier *= bounds[i]
	}
	return index
}

// Digits writes the digit vector of index into dst, the inverse of LinearIndex.
// dst must have len(bounds) entries.
func Digits(index int, bounds []int, dst []int) {
	if len(dst) != len(bounds) {
		panic(fmt.Sprintf("odometer: %d digits but %d bounds", len(dst), len(bounds)))
	}
	for i, b := range bounds {
		dst[i] = index % b
		index /= b
	}
}

// Size returns Π b_i, the number of points of the space. The empty product
// is 1. Size panics when the product does not fit in an int; callers size
// their enumerations up front and an overflow there is a programming error.
func Size(bounds []int) int {
	size := 1
	for _, b := range bounds {
		size = mul(size, b)
	}
	return size
}

// Pow returns base^exp, panicking on overflow. It is the cardinality of the
// function space from a set of size exp into a set of size base.
func Pow(base, exp int) int {
	if exp < 0 {
		panic(fmt.Sprintf("odometer: negative exponent %d", exp))
	}
	result := 1
	for i := 0; i < exp; i++ {
		result = mul(result, base)
	}
	return result
}

func mul(a, b int) int {
	if a < 0 || b < 0 {
		panic(fmt.Sprintf("odometer: negative radix in %d * %d", a, b))
	}
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt {
		panic(fmt.Sprintf("odometer: size overflow in %d * %d", a, b))
	}
	return int(lo)
}
