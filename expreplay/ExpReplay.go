// Package expreplay implements a fixed-capacity experience replay
// buffer with uniform random minibatch sampling
package expreplay

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Transition packages together a single step of agent-environment
// interaction. Once stored, a transition is owned by the buffer slot
// it occupies and never mutated.
type Transition struct {
	Observation     *mat.VecDense
	Action          *mat.VecDense
	Reward          float64
	NextObservation *mat.VecDense
	Terminal        bool
}

// Batch holds a minibatch of transitions with each field stacked
// across the batch. Row i of every field belongs to the same
// transition.
type Batch struct {
	Observations     *mat.Dense // batchSize x featureSize
	Actions          *mat.Dense // batchSize x actionSize
	Rewards          *mat.VecDense
	NextObservations *mat.Dense
	Terminals        []bool
}

// Buffer is a fixed-capacity FIFO ring of transitions. Once the buffer
// is full, each store overwrites the oldest remaining slot.
//
// Buffer is not safe for concurrent use: callers running Store and
// Sample from multiple goroutines must serialize access externally.
// Sampling draws from a generator seeded once at construction, so a
// fixed seed and a fixed sequence of calls reproduce the same batches.
type Buffer struct {
	observationCache     []float64
	actionCache          []float64
	rewardCache          []float64
	nextObservationCache []float64
	terminalCache        []bool

	featureSize int
	actionSize  int
	capacity    int
	batchSize   int

	position int
	length   int

	rng *rand.Rand
}

// New returns an empty Buffer holding at most capacity transitions of
// featureSize-dimensional observations and actionSize-dimensional
// actions. Sampling returns minibatches of batchSize transitions drawn
// with the argument seed.
func New(capacity, batchSize, featureSize, actionSize int,
	seed int64) (*Buffer, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("new: capacity must be >= 1")
	}
	if batchSize < 1 {
		return nil, fmt.Errorf("new: batch size must be >= 1")
	}
	if batchSize > capacity {
		return nil, fmt.Errorf("new: cannot have batch size (%v) > buffer "+
			"capacity (%v)", batchSize, capacity)
	}
	if featureSize < 1 || actionSize < 1 {
		return nil, fmt.Errorf("new: feature and action sizes must be >= 1")
	}

	return &Buffer{
		observationCache:     make([]float64, capacity*featureSize),
		actionCache:          make([]float64, capacity*actionSize),
		rewardCache:          make([]float64, capacity),
		nextObservationCache: make([]float64, capacity*featureSize),
		terminalCache:        make([]bool, capacity),

		featureSize: featureSize,
		actionSize:  actionSize,
		capacity:    capacity,
		batchSize:   batchSize,

		rng: rand.New(rand.NewSource(seed)),
	}, nil
}

// Store records a transition at the current write cursor, overwriting
// the oldest slot once the buffer is full, and advances the cursor.
// Store panics if the observation or action vectors do not match the
// sizes the buffer was constructed with.
func (b *Buffer) Store(observation, action []float64, reward float64,
	nextObservation []float64, terminal bool) {
	if len(observation) != b.featureSize ||
		len(nextObservation) != b.featureSize {
		panic(fmt.Sprintf("store: invalid feature size \n\twant(%v) "+
			"\n\thave(%v, %v)", b.featureSize, len(observation),
			len(nextObservation)))
	}
	if len(action) != b.actionSize {
		panic(fmt.Sprintf("store: invalid action size \n\twant(%v) "+
			"\n\thave(%v)", b.actionSize, len(action)))
	}

	obsInd := b.position * b.featureSize
	copy(b.observationCache[obsInd:obsInd+b.featureSize], observation)
	copy(b.nextObservationCache[obsInd:obsInd+b.featureSize], nextObservation)

	actionInd := b.position * b.actionSize
	copy(b.actionCache[actionInd:actionInd+b.actionSize], action)

	b.rewardCache[b.position] = reward
	b.terminalCache[b.position] = terminal

	b.position = (b.position + 1) % b.capacity
	if b.length < b.capacity {
		b.length++
	}
}

// Add stores a Transition, copying its fields into the buffer's slot
// at the current write cursor
func (b *Buffer) Add(t Transition) {
	b.Store(t.Observation.RawVector().Data, t.Action.RawVector().Data,
		t.Reward, t.NextObservation.RawVector().Data, t.Terminal)
}

// Len returns the current number of stored transitions
func (b *Buffer) Len() int {
	return b.length
}

// Capacity returns the maximum number of transitions the buffer holds
func (b *Buffer) Capacity() int {
	return b.capacity
}

// BatchSize returns the number of transitions per sampled minibatch
func (b *Buffer) BatchSize() int {
	return b.batchSize
}

// Sample returns an iterator over n minibatches. Each minibatch is
// drawn independently: batchSize distinct transitions selected
// uniformly at random without replacement from the current buffer
// contents. The same transition may appear in different minibatches.
//
// Sample returns an error if the buffer is empty or holds fewer than
// batchSize transitions; callers must store enough data first. Each
// call returns an independent iterator drawing fresh batches.
func (b *Buffer) Sample(n int) (*Batches, error) {
	if b.length == 0 {
		return nil, &BufferError{Op: "sample", Err: errEmptyBuffer}
	}
	if b.length < b.batchSize {
		return nil, &BufferError{Op: "sample", Err: errInsufficientSamples}
	}

	return &Batches{buffer: b, remaining: n}, nil
}

// sampleIndices selects batchSize distinct slot indices uniformly at
// random by a partial Fisher-Yates shuffle
func (b *Buffer) sampleIndices() []int {
	indices := make([]int, b.length)
	for i := range indices {
		indices[i] = i
	}
	for i := 0; i < b.batchSize; i++ {
		j := i + b.rng.Intn(b.length-i)
		indices[i], indices[j] = indices[j], indices[i]
	}
	return indices[:b.batchSize]
}

// drawBatch stacks the transitions at freshly sampled indices into a
// Batch, fields aligned by row in selection order
func (b *Buffer) drawBatch() Batch {
	indices := b.sampleIndices()

	observations := mat.NewDense(b.batchSize, b.featureSize, nil)
	nextObservations := mat.NewDense(b.batchSize, b.featureSize, nil)
	actions := mat.NewDense(b.batchSize, b.actionSize, nil)
	rewards := mat.NewVecDense(b.batchSize, nil)
	terminals := make([]bool, b.batchSize)

	for i, index := range indices {
		obsInd := index * b.featureSize
		observations.SetRow(i,
			b.observationCache[obsInd:obsInd+b.featureSize])
		nextObservations.SetRow(i,
			b.nextObservationCache[obsInd:obsInd+b.featureSize])

		actionInd := index * b.actionSize
		actions.SetRow(i, b.actionCache[actionInd:actionInd+b.actionSize])

		rewards.SetVec(i, b.rewardCache[index])
		terminals[i] = b.terminalCache[index]
	}

	return Batch{
		Observations:     observations,
		Actions:          actions,
		Rewards:          rewards,
		NextObservations: nextObservations,
		Terminals:        terminals,
	}
}

// Batches is a finite iterator over freshly sampled minibatches.
// Batches are drawn lazily: each Next call samples a new minibatch
// from the buffer's contents at that moment.
type Batches struct {
	buffer    *Buffer
	remaining int
	batch     Batch
}

// Next draws the next minibatch, reporting whether one was available
func (it *Batches) Next() bool {
	if it.remaining <= 0 {
		return false
	}
	it.remaining--
	it.batch = it.buffer.drawBatch()
	return true
}

// Batch returns the minibatch drawn by the last successful call to
// Next
func (it *Batches) Batch() Batch {
	return it.batch
}
