package sac

import (
	"fmt"

	"github.com/yardenas/go-sac/network"
	"gonum.org/v1/gonum/stat/distuv"
	G "gorgonia.org/gorgonia"
)

// DoubleCritic implements twin action-value estimates for double-Q
// learning. Two independently parameterized feed forward networks,
// with no shared weights, each map a concatenated (observation,
// action) vector to a scalar mean, returned as unit-variance Gaussian
// value distributions. The minimum/target computation over the pair is
// left to the caller.
type DoubleCritic struct {
	net1, net2 network.NeuralNet
	vm1, vm2   G.VM

	features   int
	actionDims int
}

// NewDoubleCritic returns a new DoubleCritic over features-dimensional
// observations and actionDims-dimensional actions. Both critic
// networks share the architecture given by hiddenSizes, biases, and
// activations, but are initialized and parameterized independently.
func NewDoubleCritic(features, actionDims int, hiddenSizes []int,
	biases []bool, activations []*network.Activation,
	init G.InitWFn) (*DoubleCritic, error) {
	if features < 1 || actionDims < 1 {
		return nil, fmt.Errorf("newdoublecritic: features and actionDims " +
			"must be >= 1")
	}

	net1, err := network.NewMLP(features+actionDims, 1, 1, G.NewGraph(),
		hiddenSizes, biases, activations, init)
	if err != nil {
		return nil, fmt.Errorf("newdoublecritic: could not create first "+
			"critic network: %v", err)
	}

	net2, err := network.NewMLP(features+actionDims, 1, 1, G.NewGraph(),
		hiddenSizes, biases, activations, init)
	if err != nil {
		return nil, fmt.Errorf("newdoublecritic: could not create second "+
			"critic network: %v", err)
	}

	return &DoubleCritic{
		net1:       net1,
		net2:       net2,
		vm1:        G.NewTapeMachine(net1.Graph()),
		vm2:        G.NewTapeMachine(net2.Graph()),
		features:   features,
		actionDims: actionDims,
	}, nil
}

// Evaluate returns the pair of action-value distributions at the
// argument observation and action. The first returned distribution is
// always produced by the first critic network and the second by the
// second; the association is never reordered.
func (d *DoubleCritic) Evaluate(observation, action []float64) (
	distuv.Normal, distuv.Normal, error) {
	var none distuv.Normal

	if len(observation) != d.features {
		return none, none, fmt.Errorf("evaluate: invalid observation size "+
			"\n\twant(%v) \n\thave(%v)", d.features, len(observation))
	}
	if len(action) != d.actionDims {
		return none, none, fmt.Errorf("evaluate: invalid action size "+
			"\n\twant(%v) \n\thave(%v)", d.actionDims, len(action))
	}

	input := make([]float64, 0, d.features+d.actionDims)
	input = append(input, observation...)
	input = append(input, action...)

	mu1, err := d.run(d.net1, d.vm1, input)
	if err != nil {
		return none, none, fmt.Errorf("evaluate: first critic: %v", err)
	}
	mu2, err := d.run(d.net2, d.vm2, input)
	if err != nil {
		return none, none, fmt.Errorf("evaluate: second critic: %v", err)
	}

	// Unit variance makes each estimate a value-with-uncertainty
	// rather than a point prediction
	return distuv.Normal{Mu: mu1, Sigma: 1.0},
		distuv.Normal{Mu: mu2, Sigma: 1.0}, nil
}

// run computes the scalar prediction of one critic network
func (d *DoubleCritic) run(net network.NeuralNet, vm G.VM,
	input []float64) (float64, error) {
	if err := net.SetInput(input); err != nil {
		return 0, err
	}
	if err := vm.RunAll(); err != nil {
		return 0, err
	}
	defer vm.Reset()

	// A (1, 1) output tensor may be reported as a scalar or a
	// single-element slice depending on the tensor backend
	switch out := net.Output().Data().(type) {
	case float64:
		return out, nil
	case []float64:
		return out[0], nil
	default:
		return 0, fmt.Errorf("run: unexpected critic output type %T", out)
	}
}

// Set sets the weights of both critic networks to those of the source
// DoubleCritic, which must share the same architecture
func (d *DoubleCritic) Set(source *DoubleCritic) error {
	if err := d.net1.Set(source.net1); err != nil {
		return fmt.Errorf("set: first critic: %v", err)
	}
	if err := d.net2.Set(source.net2); err != nil {
		return fmt.Errorf("set: second critic: %v", err)
	}
	return nil
}

// Polyak sets the weights of both critic networks to a Polyak average
// between their existing weights and those of the source DoubleCritic.
// Training loops use this to maintain slowly moving target critics.
func (d *DoubleCritic) Polyak(source *DoubleCritic, tau float64) error {
	if err := d.net1.Polyak(source.net1, tau); err != nil {
		return fmt.Errorf("polyak: first critic: %v", err)
	}
	if err := d.net2.Polyak(source.net2, tau); err != nil {
		return fmt.Errorf("polyak: second critic: %v", err)
	}
	return nil
}
