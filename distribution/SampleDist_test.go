package distribution

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

func TestSampleDistName(t *testing.T) {
	g, err := NewGaussian([]float64{0}, []float64{1})
	if err != nil {
		t.Fatal(err)
	}

	wrapped := NewSampleDist(g, 0)
	if wrapped.Name() != "SampleDist" {
		t.Errorf("name \n\twant(SampleDist) \n\thave(%v)", wrapped.Name())
	}
	if wrapped.samples != DefaultSamples {
		t.Errorf("default draw count \n\twant(%v) \n\thave(%v)",
			DefaultSamples, wrapped.samples)
	}
	if wrapped.Wrapped() != Distribution(g) {
		t.Error("Wrapped() should return the inner distribution")
	}
}

func TestSampleDistForwardsToWrapped(t *testing.T) {
	g, err := NewGaussian([]float64{1, -1}, []float64{0.5, 2})
	if err != nil {
		t.Fatal(err)
	}
	wrapped := NewSampleDist(g, 50)

	// Sample and LogProb must pass through unchanged
	fromWrapper := wrapped.Sample(25, rand.NewSource(3))
	fromInner := g.Sample(25, rand.NewSource(3))
	if !mat.Equal(fromWrapper, fromInner) {
		t.Error("Sample should forward unchanged to the wrapped distribution")
	}

	lpWrapper := wrapped.LogProb(fromWrapper)
	lpInner := g.LogProb(fromWrapper)
	for i := range lpWrapper {
		if lpWrapper[i] != lpInner[i] {
			t.Fatalf("LogProb row %v \n\twant(%v) \n\thave(%v)", i,
				lpInner[i], lpWrapper[i])
		}
	}

	if wrapped.Dims() != 2 {
		t.Errorf("dims \n\twant(2) \n\thave(%v)", wrapped.Dims())
	}
}

// TestSampleDistMeanConverges checks the Monte-Carlo mean against a
// distribution with a known closed form, at two draw counts. The
// estimate from many draws must satisfy a proportionally tighter
// tolerance.
func TestSampleDistMeanConverges(t *testing.T) {
	mean := []float64{2.0, -0.5}
	stddev := []float64{1.0, 1.0}
	g, err := NewGaussian(mean, stddev)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		samples   int
		tolerance float64 // 5 standard errors of the mean
	}{
		{100, 0.5},
		{10000, 0.05},
	}

	for _, test := range tests {
		wrapped := NewSampleDist(g, test.samples)
		estimate := wrapped.Mean(rand.NewSource(11))

		for j := 0; j < 2; j++ {
			if math.Abs(estimate.AtVec(j)-mean[j]) > test.tolerance {
				t.Errorf("mean estimate with %v draws, dimension %v "+
					"\n\twant(%v ± %v) \n\thave(%v)", test.samples, j,
					mean[j], test.tolerance, estimate.AtVec(j))
			}
		}
	}
}

func TestSampleDistEntropyConverges(t *testing.T) {
	sigma := 0.7
	g, err := NewGaussian([]float64{0}, []float64{sigma})
	if err != nil {
		t.Fatal(err)
	}

	// Closed-form entropy of a univariate Gaussian
	expected := 0.5 * math.Log(2*math.Pi*math.E*sigma*sigma)

	wrapped := NewSampleDist(g, 10000)
	estimate := wrapped.Entropy(rand.NewSource(17))

	if math.Abs(estimate-expected) > 0.05 {
		t.Errorf("entropy estimate \n\twant(%v ± 0.05) \n\thave(%v)",
			expected, estimate)
	}
}

func TestSampleDistModeNearGaussianMean(t *testing.T) {
	mean := []float64{1.5}
	g, err := NewGaussian(mean, []float64{1.0})
	if err != nil {
		t.Fatal(err)
	}

	// A Gaussian's mode is its mean; with this many draws, the highest
	// density draw lands very close to it
	wrapped := NewSampleDist(g, 10000)
	mode := wrapped.Mode(rand.NewSource(23))

	if math.Abs(mode.AtVec(0)-mean[0]) > 0.05 {
		t.Errorf("mode estimate \n\twant(%v ± 0.05) \n\thave(%v)", mean[0],
			mode.AtVec(0))
	}
}
