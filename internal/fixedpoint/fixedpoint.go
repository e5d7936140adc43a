// Package fixedpoint implements the checked, overflow-safe integer math the
// sportsbook engine runs all money and odds through. Every value is an
// unsigned base-unit integer; odds and multipliers carry nine implied
// decimals (Scale).
package fixedpoint

import (
	"errors"
	"math"
	"math/bits"
)

// Scale is the fixed-point denominator for odds, multipliers, and any
// other 9-decimal value in the engine.
const Scale uint64 = 1_000_000_000

// BPSDenominator is the basis-points denominator (100% = 10000).
const BPSDenominator uint64 = 10000

// ErrOverflow is returned by any checked operation whose true result does
// not fit in a uint64.
var ErrOverflow = errors.New("fixedpoint: calculation overflow")

// MulDiv computes a*b/d using a 128-bit intermediate so that a*b can exceed
// 2^64 without wrapping. Division truncates toward zero. Returns
// ErrOverflow if the final result does not fit in uint64, or if d is zero.
func MulDiv(a, b, d uint64) (uint64, error) {
	if d == 0 {
		return 0, ErrOverflow
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= d {
		// Quotient would not fit in 64 bits.
		return 0, ErrOverflow
	}
	q, _ := bits.Div64(hi, lo, d)
	return q, nil
}

// Mul returns a*b, checked against uint64 overflow.
func Mul(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	c := a * b
	if c/a != b {
		return 0, ErrOverflow
	}
	return c, nil
}

// Add returns a+b, checked against uint64 overflow.
func Add(a, b uint64) (uint64, error) {
	c := a + b
	if c < a {
		return 0, ErrOverflow
	}
	return c, nil
}

// SaturatingSub returns a-b, or 0 if b > a (never underflows).
func SaturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

// SaturatingAdd returns a+b, clamped to math.MaxUint64 instead of wrapping.
func SaturatingAdd(a, b uint64) uint64 {
	c := a + b
	if c < a {
		return math.MaxUint64
	}
	return c
}

// ApplyBps returns amount*bps/BPSDenominator, checked.
func ApplyBps(amount, bps uint64) (uint64, error) {
	return MulDiv(amount, bps, BPSDenominator)
}

