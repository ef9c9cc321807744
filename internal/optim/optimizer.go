// Package optim implements the Cain adaptive stochastic optimizer.
//
// This package provides:
//   - Optimizer interface: Base interface for gradient optimizers
//   - Cain: first-order optimizer with adaptive batch size and step length
//   - Callback protocol for progress monitoring and run termination
//
// Cain trains the parameters of an externally-supplied differentiable
// graph. Each step draws several independent sub-batches, estimates the
// relative noise of the gradient samples, and feeds that estimate back
// into the batch size, while a cosine-similarity signal between the fresh
// mean gradient and the momentum vector drives the learning rate. The
// step direction is the momentum vector conditioned by a diagonal
// curvature estimate, as in Adam.
//
// There are no convergence guarantees. Given the same collaborators and
// configuration, the optimizer reproduces the exact same trajectory.
//
// Example usage:
//
//	opt := optim.New().
//	    NumSubbatches(8).
//	    Momentum(0.9).
//	    InitialLearningRate(1e-3).
//	    Finish(g)
//
//	opt.AddCallback(func(data optim.StepData) optim.Signal {
//	    if data.StepCount >= 1000 {
//	        return optim.Stop
//	    }
//	    return optim.Continue
//	})
//
//	params, err := opt.OptimizeFrom(g, supplier, params)
package optim

import (
	"fmt"
	"io"

	"github.com/cain-ml/cain/internal/graph"
)

// Signal is a callback's verdict on whether the run loop should keep
// going.
type Signal int

const (
	// Continue lets the run loop proceed to the next step.
	Continue Signal = iota

	// Stop terminates the run loop after the current callback round.
	Stop
)

// StepData is the read-only snapshot handed to every callback after each
// completed step.
type StepData struct {
	Loss      float64     // Mean per-sample loss across this step's sub-batches
	StepCount uint64      // Completed steps, including this one
	EvalCount uint64      // Total samples evaluated so far
	Graph     graph.Graph // The graph being trained
	Params    []float64   // Current parameter vector; callbacks must not mutate it
}

// Callback observes training progress and may terminate the run.
//
// Callbacks run in registration order after every step and may hold
// closures over external state (validation evaluators, checkpoint
// writers). When any callback returns Stop, the remaining callbacks of
// that round are still invoked, in order, before the loop exits.
type Callback func(StepData) Signal

// Optimizer is the base interface for gradient optimizers that drive the
// training loop themselves.
//
// The graph and supplier are injected into each call rather than stored,
// so the caller keeps ownership of both between steps.
type Optimizer interface {
	// AddCallback registers a step callback. Invocation order is
	// registration order.
	AddCallback(cb Callback)

	// Step performs one optimization step and returns the mean
	// per-sample loss together with the updated parameter vector.
	Step(g graph.Graph, sup graph.Supplier, params []float64) (float64, []float64, error)

	// OptimizeFrom repeatedly invokes Step until a callback returns
	// Stop, then returns the current parameter vector.
	OptimizeFrom(g graph.Graph, sup graph.Supplier, params []float64) ([]float64, error)
}

// Progress is the per-step diagnostic record emitted by the step engine.
//
// It exists purely for observability; dropping it does not change the
// optimization trajectory.
type Progress struct {
	SamplesTaken  uint64  // Supplier's running sample count
	Loss          float64 // Mean per-sample loss of this step
	RelErr        float64 // Unclamped relative gradient-noise estimate
	NumSubbatches float64 // Sub-batches per step
	BatchSize     int     // Floor of the continuous batch size after this step's adaptation
	Sim           float64 // Cosine-similarity signal driving the rate
	Rate          float64 // Learning rate after adaptation
	StepNorm      float64 // L2 norm of the parameter delta
}

// ProgressFunc receives one Progress record per step.
type ProgressFunc func(Progress)

// TableTo returns a ProgressFunc that writes a tab-separated progress
// table to w, one row per step with a header before the first row.
func TableTo(w io.Writer) ProgressFunc {
	headerDone := false
	return func(p Progress) {
		if !headerDone {
			fmt.Fprintf(w, "count\terr\trel_err\tbatchSize\tcos_sim\trate\tmovement\n")
			headerDone = true
		}
		fmt.Fprintf(w, "%d\t%v\t%.4f\t%vx%d\t%.4f\t%.4e\t%.4e\n",
			p.SamplesTaken, p.Loss, p.RelErr, p.NumSubbatches, p.BatchSize, p.Sim, p.Rate, p.StepNorm)
	}
}
