// Copyright 2026 Cain ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package initializer provides simple fill generators for parameter
// vectors.
package initializer

import "github.com/cain-ml/cain/internal/initializer"

// Initializer fills a parameter vector in place.
type Initializer = initializer.Initializer

// Gaussian draws every element from N(mean, stddev²).
func Gaussian(mean, stddev float64, seed uint64) Initializer {
	return initializer.Gaussian(mean, stddev, seed)
}

// Uniform draws every element from [low, high).
func Uniform(low, high float64, seed uint64) Initializer {
	return initializer.Uniform(low, high, seed)
}

// Fill sets every element to val.
func Fill(val float64) Initializer {
	return initializer.Fill(val)
}
