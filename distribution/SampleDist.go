package distribution

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// DefaultSamples is the number of Monte-Carlo draws a SampleDist uses
// to estimate statistics when no explicit draw count is given
const DefaultSamples int = 100

// SampleDist wraps a Distribution and estimates its mean, mode, and
// entropy by sampling. A squashed Gaussian has no closed form for any
// of these, so sampling provides unbiased approximations at a cost
// controlled by the draw count.
//
// SampleDist itself satisfies the Distribution interface: Sample,
// LogProb, and Dims are forwarded unchanged to the wrapped
// distribution.
type SampleDist struct {
	dist    Distribution
	samples int
}

// NewSampleDist wraps dist with Monte-Carlo statistic estimators that
// use the argument number of draws per estimate. A non-positive value
// selects DefaultSamples.
func NewSampleDist(dist Distribution, samples int) *SampleDist {
	if samples <= 0 {
		samples = DefaultSamples
	}
	return &SampleDist{dist: dist, samples: samples}
}

// Name identifies the wrapper type
func (s *SampleDist) Name() string {
	return "SampleDist"
}

// Wrapped returns the underlying distribution
func (s *SampleDist) Wrapped() Distribution {
	return s.dist
}

// Dims returns the dimensionality of a single sampled vector
func (s *SampleDist) Dims() int {
	return s.dist.Dims()
}

// Sample forwards to the wrapped distribution
func (s *SampleDist) Sample(n int, src rand.Source) *mat.Dense {
	return s.dist.Sample(n, src)
}

// LogProb forwards to the wrapped distribution
func (s *SampleDist) LogProb(x mat.Matrix) []float64 {
	return s.dist.LogProb(x)
}

// Mean estimates the mean of the wrapped distribution as the
// elementwise arithmetic mean of the Monte-Carlo draws
func (s *SampleDist) Mean(src rand.Source) *mat.VecDense {
	draws := s.dist.Sample(s.samples, src)

	mean := mat.NewVecDense(s.Dims(), nil)
	for j := 0; j < s.Dims(); j++ {
		col := mat.Col(nil, j, draws)
		mean.SetVec(j, stat.Mean(col, nil))
	}
	return mean
}

// Mode estimates the mode of the wrapped distribution as the draw with
// the greatest log density. Ties select the earliest draw.
func (s *SampleDist) Mode(src rand.Source) *mat.VecDense {
	draws := s.dist.Sample(s.samples, src)
	logProb := s.dist.LogProb(draws)

	best := floats.MaxIdx(logProb)
	return mat.NewVecDense(s.Dims(), mat.Row(nil, best, draws))
}

// Entropy estimates the entropy of the wrapped distribution as the
// negative mean log density of the Monte-Carlo draws
func (s *SampleDist) Entropy(src rand.Source) float64 {
	draws := s.dist.Sample(s.samples, src)
	return -stat.Mean(s.dist.LogProb(draws), nil)
}
