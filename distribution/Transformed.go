package distribution

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Transformed is the distribution of b.Forward(x) where x is drawn
// from a base distribution and b is a bijector applied elementwise.
// Log densities follow from the change-of-variables formula
//
//	log p(y) = log p_base(b.Inverse(y)) - Σⱼ log|db.Forward/dx|(xⱼ)
type Transformed struct {
	base Distribution
	bij  Bijector
}

// NewTransformed returns the distribution of base samples mapped
// through the bijector b
func NewTransformed(base Distribution, b Bijector) *Transformed {
	return &Transformed{base: base, bij: b}
}

// Base returns the underlying untransformed distribution
func (t *Transformed) Base() Distribution {
	return t.base
}

// Dims returns the dimensionality of a single sampled vector
func (t *Transformed) Dims() int {
	return t.base.Dims()
}

// Sample draws n vectors from the base distribution and maps each
// element through the bijector's forward function
func (t *Transformed) Sample(n int, src rand.Source) *mat.Dense {
	samples := t.base.Sample(n, src)

	rows, cols := samples.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			samples.Set(i, j, t.bij.Forward(samples.At(i, j)))
		}
	}
	return samples
}

// LogProb returns the log density of each row of y under the
// transformed distribution
func (t *Transformed) LogProb(y mat.Matrix) []float64 {
	rows, cols := y.Dims()

	x := mat.NewDense(rows, cols, nil)
	logDet := make([]float64, rows)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			xij := t.bij.Inverse(y.At(i, j))
			x.Set(i, j, xij)
			logDet[i] += t.bij.LogDetJacobian(xij)
		}
	}

	logProb := t.base.LogProb(x)
	for i := range logProb {
		logProb[i] -= logDet[i]
	}
	return logProb
}
