// Copyright 2026 Cain ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package data provides an in-memory training set and a shuffling
// supplier implementing the graph.Supplier contract.
package data

import (
	"math/rand"

	"github.com/cain-ml/cain/internal/data"
)

// Dataset is an immutable in-memory collection of paired samples.
type Dataset = data.Dataset

// Supplier cycles through a Dataset, optionally reshuffling the visit
// order at every epoch boundary.
type Supplier = data.Supplier

// NewDataset validates and wraps paired sample slices.
func NewDataset(inputs, targets [][]float64) (*Dataset, error) {
	return data.NewDataset(inputs, targets)
}

// NewSupplier wraps a Dataset. A nil rng yields sequential epoch order;
// a seeded rng gives reproducible shuffled runs.
func NewSupplier(ds *Dataset, rng *rand.Rand) *Supplier {
	return data.NewSupplier(ds, rng)
}
