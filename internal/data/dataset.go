// Package data provides an in-memory training set and a shuffling
// supplier that feeds it to the optimizer in request-sized batches.
package data

import (
	"fmt"
	"math/rand"

	"github.com/cain-ml/cain/internal/graph"
)

// Dataset is an immutable in-memory collection of paired samples. Every
// input row has the same width, as does every target row.
type Dataset struct {
	inputs      [][]float64
	targets     [][]float64
	inputWidth  int
	targetWidth int
}

// NewDataset validates and wraps paired sample slices. The slices are
// retained, not copied; callers must not mutate them afterwards.
func NewDataset(inputs, targets [][]float64) (*Dataset, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}
	if len(inputs) != len(targets) {
		return nil, fmt.Errorf("input/target count mismatch: %d vs %d", len(inputs), len(targets))
	}

	iw := len(inputs[0])
	tw := len(targets[0])
	for i := range inputs {
		if len(inputs[i]) != iw {
			return nil, fmt.Errorf("inconsistent input width at row %d: got %d, want %d", i, len(inputs[i]), iw)
		}
		if len(targets[i]) != tw {
			return nil, fmt.Errorf("inconsistent target width at row %d: got %d, want %d", i, len(targets[i]), tw)
		}
	}

	return &Dataset{
		inputs:      inputs,
		targets:     targets,
		inputWidth:  iw,
		targetWidth: tw,
	}, nil
}

// Len returns the number of samples.
func (d *Dataset) Len() int { return len(d.inputs) }

// InputWidth returns the per-sample input length.
func (d *Dataset) InputWidth() int { return d.inputWidth }

// TargetWidth returns the per-sample target length.
func (d *Dataset) TargetWidth() int { return d.targetWidth }

// Supplier cycles through a Dataset, optionally reshuffling the visit
// order at every epoch boundary. It implements graph.Supplier.
//
// Not safe for concurrent use; the optimizer consumes it sequentially.
type Supplier struct {
	ds     *Dataset
	rng    *rand.Rand
	order  []int
	cursor int
	taken  uint64
}

var _ graph.Supplier = (*Supplier)(nil)

// NewSupplier wraps a Dataset. A nil rng yields sequential epoch order;
// otherwise the order is shuffled before the first epoch and after every
// wrap, so a seeded rng gives reproducible runs.
func NewSupplier(ds *Dataset, rng *rand.Rand) *Supplier {
	order := make([]int, ds.Len())
	for i := range order {
		order[i] = i
	}
	s := &Supplier{ds: ds, rng: rng, order: order}
	s.reshuffle()
	return s
}

func (s *Supplier) reshuffle() {
	if s.rng == nil {
		return
	}
	s.rng.Shuffle(len(s.order), func(i, j int) {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	})
}

// NextN returns the next n paired samples flattened sample-major,
// wrapping across epoch boundaries as needed.
func (s *Supplier) NextN(n int) ([]float64, []float64, error) {
	if n <= 0 {
		return nil, nil, fmt.Errorf("batch size must be positive, got %d", n)
	}

	inputs := make([]float64, 0, n*s.ds.inputWidth)
	targets := make([]float64, 0, n*s.ds.targetWidth)
	for i := 0; i < n; i++ {
		idx := s.order[s.cursor]
		inputs = append(inputs, s.ds.inputs[idx]...)
		targets = append(targets, s.ds.targets[idx]...)

		s.cursor++
		if s.cursor == len(s.order) {
			s.cursor = 0
			s.reshuffle()
		}
	}

	s.taken += uint64(n)
	return inputs, targets, nil
}

// SamplesTaken reports the total number of samples handed out so far.
func (s *Supplier) SamplesTaken() uint64 { return s.taken }
