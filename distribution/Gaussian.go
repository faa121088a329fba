package distribution

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Gaussian implements a multivariate Gaussian distribution with a
// diagonal covariance matrix. Samples are drawn by the
// reparameterization μ + σ * ɛ with ɛ ~ N(0, 1).
type Gaussian struct {
	mean   []float64
	stddev []float64
}

// NewGaussian returns a new diagonal Gaussian with the argument mean
// and standard deviation vectors. The standard deviation must be
// strictly positive in every dimension.
func NewGaussian(mean, stddev []float64) (*Gaussian, error) {
	if len(mean) != len(stddev) {
		return nil, fmt.Errorf("newGaussian: mean and stddev dimensions "+
			"differ \n\twant(%v) \n\thave(%v)", len(mean), len(stddev))
	}
	if len(mean) == 0 {
		return nil, fmt.Errorf("newGaussian: cannot create 0-dimensional " +
			"distribution")
	}
	for i, std := range stddev {
		if std <= 0 {
			return nil, fmt.Errorf("newGaussian: stddev must be strictly "+
				"positive, got %v at dimension %v", std, i)
		}
	}

	g := &Gaussian{
		mean:   make([]float64, len(mean)),
		stddev: make([]float64, len(stddev)),
	}
	copy(g.mean, mean)
	copy(g.stddev, stddev)
	return g, nil
}

// Dims returns the dimensionality of a single sampled vector
func (g *Gaussian) Dims() int {
	return len(g.mean)
}

// Mean returns the mean vector of the distribution
func (g *Gaussian) Mean() *mat.VecDense {
	mean := make([]float64, len(g.mean))
	copy(mean, g.mean)
	return mat.NewVecDense(len(mean), mean)
}

// Stddev returns the per-dimension standard deviation of the
// distribution
func (g *Gaussian) Stddev() *mat.VecDense {
	stddev := make([]float64, len(g.stddev))
	copy(stddev, g.stddev)
	return mat.NewVecDense(len(stddev), stddev)
}

// Sample draws n vectors from the distribution, one per row of the
// returned matrix
func (g *Gaussian) Sample(n int, src rand.Source) *mat.Dense {
	norm := distuv.Normal{Mu: 0.0, Sigma: 1.0, Src: src}

	samples := mat.NewDense(n, g.Dims(), nil)
	for i := 0; i < n; i++ {
		for j := 0; j < g.Dims(); j++ {
			samples.Set(i, j, g.mean[j]+g.stddev[j]*norm.Rand())
		}
	}
	return samples
}

// LogProb returns the log density of each row of x under the
// distribution
func (g *Gaussian) LogProb(x mat.Matrix) []float64 {
	rows, cols := x.Dims()
	if cols != g.Dims() {
		panic(fmt.Sprintf("logProb: invalid dimensions \n\twant(%v) "+
			"\n\thave(%v)", g.Dims(), cols))
	}

	halfLog2Pi := 0.5 * math.Log(2*math.Pi)

	logProb := make([]float64, rows)
	for i := 0; i < rows; i++ {
		var total float64
		for j := 0; j < cols; j++ {
			z := (x.At(i, j) - g.mean[j]) / g.stddev[j]
			total += -0.5*z*z - math.Log(g.stddev[j]) - halfLog2Pi
		}
		logProb[i] = total
	}
	return logProb
}
