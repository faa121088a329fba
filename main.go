// Demo of the SAC building blocks: fill a replay buffer by rolling the
// policy on random observations, then iterate sampled minibatches and
// query the actor, critics, and entropy bonus the way a training loop
// would. No optimization happens here.
package main

import (
	"fmt"
	"math"

	"github.com/yardenas/go-sac/expreplay"
	"github.com/yardenas/go-sac/network"
	"github.com/yardenas/go-sac/sac"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	G "gorgonia.org/gorgonia"
)

const (
	features   int = 3
	actionDims int = 2

	capacity  int = 256
	batchSize int = 32
)

func main() {
	var seed int64 = 192382

	buffer, err := expreplay.New(capacity, batchSize, features, actionDims,
		seed)
	if err != nil {
		panic(err)
	}

	hidden := []int{64, 64}
	biases := []bool{true, true}
	activations := []*network.Activation{network.ReLU(), network.ReLU()}

	actor, err := sac.NewActor(features, actionDims, hidden, biases,
		activations, G.GlorotU(1.0), 0.1)
	if err != nil {
		panic(err)
	}

	critic, err := sac.NewDoubleCritic(features, actionDims, hidden, biases,
		activations, G.GlorotU(1.0))
	if err != nil {
		panic(err)
	}

	bonus := sac.NewEntropyBonus()

	src := rand.NewSource(uint64(seed))
	rng := rand.New(src)

	// Roll the untrained policy over random observations to seed the
	// buffer
	observation := randomObservation(rng)
	for i := 0; i < 2*batchSize; i++ {
		dist, err := actor.Distribution(observation)
		if err != nil {
			panic(err)
		}
		action := mat.Row(nil, 0, dist.Sample(1, src))

		next := randomObservation(rng)
		reward := rng.Float64()
		buffer.Store(observation, action, reward, next, false)
		observation = next
	}
	fmt.Printf("buffer: %v/%v transitions\n", buffer.Len(), buffer.Capacity())

	batches, err := buffer.Sample(3)
	if err != nil {
		panic(err)
	}

	for batches.Next() {
		batch := batches.Batch()

		// Inspect the first transition of the minibatch
		observation := mat.Row(nil, 0, batch.Observations)
		action := mat.Row(nil, 0, batch.Actions)

		dist, err := actor.Distribution(observation)
		if err != nil {
			panic(err)
		}
		logPi := dist.LogProb(batch.Actions.Slice(0, 1, 0, actionDims))[0]

		q1, q2, err := critic.Evaluate(observation, action)
		if err != nil {
			panic(err)
		}

		fmt.Printf("logπ %8.3f  entropy bonus %8.3f  minQ %8.3f  "+
			"policy entropy %6.3f\n", logPi, bonus.Bonus(logPi),
			math.Min(q1.Mu, q2.Mu), dist.Entropy(src))
	}
}

func randomObservation(rng *rand.Rand) []float64 {
	observation := make([]float64, features)
	for i := range observation {
		observation[i] = 2*rng.Float64() - 1
	}
	return observation
}
