// Package sac implements the core modules of a Soft Actor-Critic
// agent: a squashed-Gaussian stochastic policy, twin action-value
// critics, and a learned entropy-temperature bonus.
package sac

import (
	"fmt"

	"github.com/yardenas/go-sac/distribution"
	"github.com/yardenas/go-sac/network"
	"github.com/yardenas/go-sac/utils/floatutils"
	G "gorgonia.org/gorgonia"
)

// Actor implements a stochastic policy with actions bounded to
// (-1, 1) per dimension. A feed forward network maps an observation
// to the mean and spread of a diagonal Gaussian, which is squashed
// through a numerically stable tanh bijector and wrapped with
// Monte-Carlo statistic estimators, since the squashed distribution
// has no closed-form mean, mode, or entropy.
type Actor struct {
	net network.NeuralNet
	vm  G.VM

	actionDims int
	minStddev  float64
}

// NewActor returns a new Actor for features-dimensional observations
// and actionDims-dimensional actions. The policy network architecture
// is defined by hiddenSizes, biases, and activations as in
// network.NewMLP; its final layer always has width 2*actionDims, one
// half predicting the raw mean and the other the raw spread. The
// minStddev parameter is the strictly positive floor added to the
// softplus of the raw spread, preventing collapse to a deterministic
// policy.
func NewActor(features, actionDims int, hiddenSizes []int, biases []bool,
	activations []*network.Activation, init G.InitWFn,
	minStddev float64) (*Actor, error) {
	if actionDims < 1 {
		return nil, fmt.Errorf("newactor: actionDims must be >= 1")
	}
	if minStddev <= 0 {
		return nil, fmt.Errorf("newactor: minStddev must be > 0")
	}

	net, err := network.NewMLP(features, 1, 2*actionDims, G.NewGraph(),
		hiddenSizes, biases, activations, init)
	if err != nil {
		return nil, fmt.Errorf("newactor: could not create policy "+
			"network: %v", err)
	}

	return &Actor{
		net:        net,
		vm:         G.NewTapeMachine(net.Graph()),
		actionDims: actionDims,
		minStddev:  minStddev,
	}, nil
}

// Distribution returns the policy's action distribution at the
// argument observation. Callers sample actions or request
// log-probabilities from the returned distribution downstream.
func (a *Actor) Distribution(observation []float64) (
	*distribution.SampleDist, error) {
	if err := a.net.SetInput(observation); err != nil {
		return nil, fmt.Errorf("distribution: cannot set input: %v", err)
	}
	if err := a.vm.RunAll(); err != nil {
		return nil, fmt.Errorf("distribution: could not run policy VM: %v",
			err)
	}
	defer a.vm.Reset()

	out := a.net.Output().Data().([]float64)

	mean := make([]float64, a.actionDims)
	copy(mean, out[:a.actionDims])

	stddev := make([]float64, a.actionDims)
	for i, raw := range out[a.actionDims : 2*a.actionDims] {
		stddev[i] = floatutils.Softplus(raw) + a.minStddev
	}

	base, err := distribution.NewGaussian(mean, stddev)
	if err != nil {
		return nil, fmt.Errorf("distribution: %v", err)
	}

	squashed := distribution.NewTransformed(base, distribution.NewStableTanh())
	return distribution.NewSampleDist(squashed, 0), nil
}

// ActionDims returns the dimensionality of the policy's actions
func (a *Actor) ActionDims() int {
	return a.actionDims
}

// Network returns the policy network of the Actor
func (a *Actor) Network() network.NeuralNet {
	return a.net
}
