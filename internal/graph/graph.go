// Package graph defines the contracts between the optimizer and its two
// external collaborators: the differentiable computational graph being
// trained and the training-data supplier.
//
// The optimizer never constructs or stores either collaborator; both are
// injected into every operation that needs them. Any failure they return
// is fatal to the run and propagates to the caller undecorated.
package graph

// Graph is a differentiable computational graph with a flat parameter
// vector.
//
// Backprop must be deterministic given identical inputs, targets and
// parameters for the same batch content; reproducibility of optimizer
// trajectories depends on it. The returned loss and gradient are totals
// summed over the batchSize samples, not per-sample averages. The gradient
// must have the same length as params. The aux value carries any extra
// evaluation data the graph produces; the optimizer ignores it.
type Graph interface {
	// NumParams returns the current length of the parameter vector.
	NumParams() int

	// Backprop evaluates the graph forward and backward over a batch.
	//
	// inputs and targets are flattened sample-major, exactly batchSize
	// samples each.
	Backprop(batchSize int, inputs, targets, params []float64) (loss float64, grad []float64, aux any, err error)
}

// Supplier hands out training samples in request-sized batches.
//
// Epoch bookkeeping, shuffling and partial final batches are the
// supplier's concern; NextN must return exactly n paired samples.
type Supplier interface {
	// NextN returns the next n paired samples, flattened sample-major.
	NextN(n int) (inputs, targets []float64, err error)

	// SamplesTaken reports the total number of samples handed out so
	// far. Used for progress reporting only.
	SamplesTaken() uint64
}
