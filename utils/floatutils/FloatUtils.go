// Package floatutils provides utilities for working with floats
package floatutils

import (
	"math"

	"gonum.org/v1/gonum/spatial/r1"
)

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max
// If min exceeds the floating point, then the function returns the min
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// ClipInterval is a wrapper to use Clip with an r1.Interval instead of
// a separate max and min value
func ClipInterval(value float64, interval r1.Interval) float64 {
	return Clip(value, interval.Min, interval.Max)
}

// Softplus computes log(1 + exp(x)) in a way that does not overflow
// for large positive x.
func Softplus(x float64) float64 {
	return math.Max(x, 0) + math.Log1p(math.Exp(-math.Abs(x)))
}

// TanhLogDeriv computes log|d tanh(x)/dx| = log(1 - tanh²(x)) through
// the identity 2*(log(2) - x - softplus(-2x)), which stays finite for
// large |x| where 1 - tanh²(x) underflows to 0.
func TanhLogDeriv(x float64) float64 {
	return 2 * (math.Ln2 - x - Softplus(-2*x))
}
