// Copyright 2026 Cain ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph defines the contracts between the optimizer and its two
// external collaborators: the differentiable computational graph being
// trained and the training-data supplier. Implement these to train any
// model with the optim package.
package graph

import "github.com/cain-ml/cain/internal/graph"

// Graph is a differentiable computational graph with a flat parameter
// vector. Backprop returns loss and gradient totals summed over the
// batch and must be deterministic for identical inputs.
type Graph = graph.Graph

// Supplier hands out training samples in request-sized batches.
type Supplier = graph.Supplier
