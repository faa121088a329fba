package distribution

import (
	"math"

	"github.com/yardenas/go-sac/utils/floatutils"
	"gonum.org/v1/gonum/spatial/r1"
)

// TanhClipBound is the largest magnitude the inverse of a stable tanh
// bijector will accept. Inputs are clipped to [-TanhClipBound,
// TanhClipBound] before computing arctanh so that values at or beyond
// the (-1, 1) boundary produce finite outputs and finite gradients.
const TanhClipBound float64 = 0.99999997

// Bijector is an invertible map applied elementwise to vectors,
// typically used to transform the support of a distribution.
type Bijector interface {
	// Forward maps an unconstrained value into the bijector's range
	Forward(x float64) float64

	// Inverse maps a value in the bijector's range back to the real
	// line
	Inverse(y float64) float64

	// LogDetJacobian returns log|dForward(x)/dx| at the argument x
	LogDetJacobian(x float64) float64
}

// Tanh is a bijector mapping the real line onto the open interval
// (-1, 1)
type Tanh struct{}

// Forward computes tanh(x)
func (Tanh) Forward(x float64) float64 {
	return math.Tanh(x)
}

// Inverse computes arctanh(y). The result is infinite at y = ±1; see
// NewStableTanh for the clipped variant.
func (Tanh) Inverse(y float64) float64 {
	return math.Atanh(y)
}

// LogDetJacobian computes log(1 - tanh²(x))
func (Tanh) LogDetJacobian(x float64) float64 {
	return floatutils.TanhLogDeriv(x)
}

// ClampedInverse decorates a Bijector so that inverse inputs are first
// clipped into [-Bound, Bound]. The forward map and log determinant
// are delegated unchanged.
type ClampedInverse struct {
	Bijector
	Bound float64
}

// Inverse clips y into [-Bound, Bound], then delegates to the wrapped
// bijector
func (c ClampedInverse) Inverse(y float64) float64 {
	interval := r1.Interval{Min: -c.Bound, Max: c.Bound}
	return c.Bijector.Inverse(floatutils.ClipInterval(y, interval))
}

// NewStableTanh returns a tanh bijector whose inverse is numerically
// stable at the boundary of (-1, 1). During training, squashed actions
// routinely land on the boundary, so the raw arctanh would produce
// infinite values and NaN gradients.
func NewStableTanh() Bijector {
	return ClampedInverse{Bijector: Tanh{}, Bound: TanhClipBound}
}
