// Package initializer provides simple fill generators for parameter
// vectors. An Initializer writes every element of the destination; given
// the same seed it always produces the same values.
package initializer

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Initializer fills a parameter vector in place.
type Initializer func(dst []float64)

// Gaussian draws every element from N(mean, stddev²).
func Gaussian(mean, stddev float64, seed uint64) Initializer {
	norm := distuv.Normal{Mu: mean, Sigma: stddev, Src: rand.NewSource(seed)}
	return func(dst []float64) {
		for i := range dst {
			dst[i] = norm.Rand()
		}
	}
}

// Uniform draws every element from [low, high).
func Uniform(low, high float64, seed uint64) Initializer {
	uni := distuv.Uniform{Min: low, Max: high, Src: rand.NewSource(seed)}
	return func(dst []float64) {
		for i := range dst {
			dst[i] = uni.Rand()
		}
	}
}

// Fill sets every element to val.
func Fill(val float64) Initializer {
	return func(dst []float64) {
		for i := range dst {
			dst[i] = val
		}
	}
}
