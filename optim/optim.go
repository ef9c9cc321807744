// Copyright 2026 Cain ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"io"

	"github.com/cain-ml/cain/internal/optim"
)

// Optimizer is the base interface for gradient optimizers that drive the
// training loop themselves.
type Optimizer = optim.Optimizer

// Signal is a callback's verdict on whether the run loop should keep
// going.
type Signal = optim.Signal

const (
	// Continue lets the run loop proceed to the next step.
	Continue = optim.Continue

	// Stop terminates the run loop after the current callback round.
	Stop = optim.Stop
)

// StepData is the read-only snapshot handed to every callback after each
// completed step.
type StepData = optim.StepData

// Callback observes training progress and may terminate the run.
type Callback = optim.Callback

// Progress is the per-step diagnostic record emitted by the step engine.
type Progress = optim.Progress

// ProgressFunc receives one Progress record per step.
type ProgressFunc = optim.ProgressFunc

// Builder assembles a Cain optimizer through fluent configuration calls.
type Builder = optim.Builder

// Cain is a first-order stochastic optimizer with adaptive batch size
// and adaptive step length.
type Cain = optim.Cain

// New returns a Builder loaded with the default hyperparameters.
//
// Example:
//
//	opt := optim.New().
//	    NumSubbatches(8).
//	    Momentum(0.9).
//	    InitialLearningRate(1e-3).
//	    Finish(g)
func New() *Builder {
	return optim.New()
}

// TableTo returns a ProgressFunc that writes a tab-separated progress
// table to w.
func TableTo(w io.Writer) ProgressFunc {
	return optim.TableTo(w)
}
