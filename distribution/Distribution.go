// Package distribution implements probability distributions over
// continuous action vectors, along with bijective transforms for
// bounding their support and Monte-Carlo estimators for statistics
// that have no closed form.
package distribution

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Distribution is a probability distribution over fixed-size vectors.
type Distribution interface {
	// Sample draws n independent vectors from the distribution, one
	// per row of the returned matrix. The src parameter determines the
	// randomness used; a nil src falls back on the global source.
	Sample(n int, src rand.Source) *mat.Dense

	// LogProb returns the log density of each row of x
	LogProb(x mat.Matrix) []float64

	// Dims returns the dimensionality of a single sampled vector
	Dims() int
}
