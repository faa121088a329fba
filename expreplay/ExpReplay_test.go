package expreplay

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

// storeNumbered stores n transitions whose fields encode their ordinal
// k = 1..n: observation = [k, k], action = [10k], reward = k/10,
// nextObservation = [k+1, k+1], terminal on every third transition.
func storeNumbered(b *Buffer, n int) {
	for k := 1; k <= n; k++ {
		f := float64(k)
		b.Store(
			[]float64{f, f},
			[]float64{10 * f},
			f/10,
			[]float64{f + 1, f + 1},
			k%3 == 0,
		)
	}
}

func TestNewValidatesArguments(t *testing.T) {
	tests := []struct {
		name                                      string
		capacity, batchSize, features, actionSize int
	}{
		{"zero capacity", 0, 1, 1, 1},
		{"zero batch size", 3, 0, 1, 1},
		{"batch size exceeds capacity", 3, 4, 1, 1},
		{"zero feature size", 3, 2, 0, 1},
		{"zero action size", 3, 2, 1, 0},
	}

	for _, test := range tests {
		_, err := New(test.capacity, test.batchSize, test.features,
			test.actionSize, 1)
		if err == nil {
			t.Errorf("%v: expected constructor error", test.name)
		}
	}
}

func TestLenBelowCapacity(t *testing.T) {
	b, err := New(10, 2, 2, 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	// No eviction below capacity: length tracks the store count exactly
	for k := 1; k <= 7; k++ {
		storeNumbered(b, 1)
		if b.Len() != k {
			t.Fatalf("length after %v stores \n\twant(%v) \n\thave(%v)", k,
				k, b.Len())
		}
	}
}

func TestFifoEviction(t *testing.T) {
	b, err := New(3, 2, 2, 1, 42)
	if err != nil {
		t.Fatal(err)
	}

	storeNumbered(b, 5)

	if b.Len() != 3 {
		t.Fatalf("length after overfilling \n\twant(3) \n\thave(%v)", b.Len())
	}

	// After 5 stores into capacity 3, the cursor wrapped twice: slots
	// hold T4, T5, T3 and the cursor points at T5's successor slot
	wantSlots := []float64{4, 5, 3}
	for slot, want := range wantSlots {
		if have := b.observationCache[slot*2]; have != want {
			t.Errorf("slot %v observation \n\twant(T%v) \n\thave(T%v)", slot,
				want, have)
		}
	}
	if b.position != 2 {
		t.Errorf("write cursor \n\twant(2) \n\thave(%v)", b.position)
	}
}

// TestSampleAfterEviction is the concrete scenario: capacity 3, seed
// 42, batch size 2, five stores. One sampled batch must contain
// exactly 2 distinct members of {T3, T4, T5}.
func TestSampleAfterEviction(t *testing.T) {
	b, err := New(3, 2, 2, 1, 42)
	if err != nil {
		t.Fatal(err)
	}
	storeNumbered(b, 5)

	batches, err := b.Sample(1)
	if err != nil {
		t.Fatal(err)
	}

	count := 0
	for batches.Next() {
		count++
		batch := batches.Batch()

		first := batch.Observations.At(0, 0)
		second := batch.Observations.At(1, 0)
		if first == second {
			t.Errorf("duplicate transition T%v within one batch", first)
		}
		for _, k := range []float64{first, second} {
			if k < 3 || k > 5 {
				t.Errorf("sampled evicted or unknown transition T%v", k)
			}
		}
	}
	if count != 1 {
		t.Errorf("number of batches \n\twant(1) \n\thave(%v)", count)
	}
}

func TestSampleDistinctAndAligned(t *testing.T) {
	b, err := New(50, 10, 2, 1, 7)
	if err != nil {
		t.Fatal(err)
	}
	storeNumbered(b, 50)

	batches, err := b.Sample(20)
	if err != nil {
		t.Fatal(err)
	}

	count := 0
	for batches.Next() {
		count++
		batch := batches.Batch()

		seen := make(map[float64]bool)
		for i := 0; i < 10; i++ {
			k := batch.Observations.At(i, 0)
			if seen[k] {
				t.Fatalf("batch %v: duplicate transition T%v", count, k)
			}
			seen[k] = true

			// Every field in row i must come from the same transition
			if batch.Observations.At(i, 1) != k {
				t.Errorf("observation row %v not intact", i)
			}
			if have := batch.Actions.At(i, 0); have != 10*k {
				t.Errorf("action row %v \n\twant(%v) \n\thave(%v)", i, 10*k,
					have)
			}
			if have := batch.Rewards.AtVec(i); have != k/10 {
				t.Errorf("reward row %v \n\twant(%v) \n\thave(%v)", i, k/10,
					have)
			}
			if have := batch.NextObservations.At(i, 0); have != k+1 {
				t.Errorf("next observation row %v \n\twant(%v) \n\thave(%v)",
					i, k+1, have)
			}
			if have := batch.Terminals[i]; have != (int(k)%3 == 0) {
				t.Errorf("terminal row %v \n\twant(%v) \n\thave(%v)", i,
					int(k)%3 == 0, have)
			}
		}
	}
	if count != 20 {
		t.Errorf("number of batches \n\twant(20) \n\thave(%v)", count)
	}
}

func TestSamplePreconditions(t *testing.T) {
	b, err := New(10, 3, 2, 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := b.Sample(1); !IsEmptyBuffer(err) {
		t.Errorf("sampling an empty buffer \n\twant(empty buffer error) "+
			"\n\thave(%v)", err)
	}

	storeNumbered(b, 2)
	if _, err := b.Sample(1); !IsInsufficientSamples(err) {
		t.Errorf("sampling with %v < batch size transitions "+
			"\n\twant(insufficient samples error) \n\thave(%v)", b.Len(), err)
	}

	storeNumbered(b, 1)
	if _, err := b.Sample(1); err != nil {
		t.Errorf("sampling with length == batch size should succeed, got %v",
			err)
	}
}

func TestSampleReproducibleGivenSeed(t *testing.T) {
	draw := func(seed int64) Batch {
		b, err := New(20, 5, 2, 1, seed)
		if err != nil {
			t.Fatal(err)
		}
		storeNumbered(b, 20)

		batches, err := b.Sample(1)
		if err != nil {
			t.Fatal(err)
		}
		if !batches.Next() {
			t.Fatal("iterator yielded no batch")
		}
		return batches.Batch()
	}

	first, second := draw(42), draw(42)
	if !mat.Equal(first.Observations, second.Observations) {
		t.Error("identical seeds and call sequences should reproduce batches")
	}
}

func TestAddMatchesStore(t *testing.T) {
	viaStore, err := New(5, 2, 2, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	viaAdd, err := New(5, 2, 2, 1, 3)
	if err != nil {
		t.Fatal(err)
	}

	storeNumbered(viaStore, 4)
	for k := 1; k <= 4; k++ {
		f := float64(k)
		viaAdd.Add(Transition{
			Observation:     mat.NewVecDense(2, []float64{f, f}),
			Action:          mat.NewVecDense(1, []float64{10 * f}),
			Reward:          f / 10,
			NextObservation: mat.NewVecDense(2, []float64{f + 1, f + 1}),
			Terminal:        k%3 == 0,
		})
	}

	for i := range viaStore.observationCache {
		if viaStore.observationCache[i] != viaAdd.observationCache[i] {
			t.Fatal("Add should fill the buffer identically to Store")
		}
	}
	if viaStore.Len() != viaAdd.Len() {
		t.Error("Add and Store should agree on length")
	}
}

func TestStorePanicsOnMalformedInput(t *testing.T) {
	b, err := New(5, 2, 2, 1, 3)
	if err != nil {
		t.Fatal(err)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for wrong observation size")
		}
	}()
	b.Store([]float64{1}, []float64{1}, 0, []float64{1}, false)
}
