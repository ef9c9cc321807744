// Copyright 2026 Cain ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the Cain adaptive stochastic optimizer.
//
// # Overview
//
// Cain is a first-order optimizer that jointly adapts its mini-batch
// size and its learning rate while training an externally-supplied
// differentiable graph:
//   - several independent sub-batches per step estimate the relative
//     noise of the gradient samples, which feeds back into the batch size
//   - a cosine-similarity signal between the fresh mean gradient and the
//     momentum vector drives the learning rate
//   - the step direction is the momentum vector conditioned by a diagonal
//     curvature estimate, as in Adam
//
// # Basic Usage
//
//	import (
//	    "github.com/cain-ml/cain/data"
//	    "github.com/cain-ml/cain/optim"
//	)
//
//	func main() {
//	    g := newModel()                  // implements graph.Graph
//	    sup := data.NewSupplier(ds, rng) // implements graph.Supplier
//
//	    opt := optim.New().
//	        NumSubbatches(8).
//	        Momentum(0.9).
//	        TargetErr(0.75).
//	        InitialLearningRate(1e-3).
//	        Finish(g)
//
//	    opt.AddCallback(func(d optim.StepData) optim.Signal {
//	        if d.StepCount >= 1000 {
//	            return optim.Stop
//	        }
//	        return optim.Continue
//	    })
//
//	    params, err := opt.OptimizeFrom(g, sup, params)
//	}
//
// # Termination
//
// The run loop has no intrinsic iteration limit; registered callbacks
// decide when to stop. Collaborator failures abort the run and surface
// to the OptimizeFrom caller unchanged.
package optim
