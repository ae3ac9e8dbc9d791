// Package money holds the rounding and tolerance rules shared by the split
// engine and the settlement reducer. Every computed share is rounded with
// Round2 before it is persisted or compared; ApproxEqual carries the single
// Epsilon used wherever derived sums are checked against a target.
package money

import "math"

// Epsilon is the tolerance for comparing currency sums. Summing rounded
// per-participant shares in binary floating point drifts by fractions of a
// cent, so exact equality against a target total is never reliable.
const Epsilon = 0.01

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ApproxEqual reports whether a and b are equal within Epsilon.
func ApproxEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// IsZero reports whether v is within Epsilon of zero.
func IsZero(v float64) bool {
	return math.Abs(v) <= Epsilon
}
