package initializer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFill(t *testing.T) {
	dst := make([]float64, 8)
	Fill(3.5)(dst)
	for _, v := range dst {
		assert.Equal(t, 3.5, v)
	}
}

func TestUniform_RangeAndDeterminism(t *testing.T) {
	a := make([]float64, 1000)
	b := make([]float64, 1000)
	Uniform(-1, 2, 7)(a)
	Uniform(-1, 2, 7)(b)

	assert.Equal(t, a, b)
	for _, v := range a {
		assert.GreaterOrEqual(t, v, -1.0)
		assert.Less(t, v, 2.0)
	}
}

func TestGaussian_MomentsAndDeterminism(t *testing.T) {
	a := make([]float64, 10000)
	b := make([]float64, 10000)
	Gaussian(2, 0.5, 99)(a)
	Gaussian(2, 0.5, 99)(b)

	assert.Equal(t, a, b)

	var sum float64
	for _, v := range a {
		sum += v
	}
	mean := sum / float64(len(a))
	// Sample mean of 10k draws sits within a few standard errors.
	assert.InDelta(t, 2.0, mean, 4*0.5/math.Sqrt(10000))

	var ss float64
	for _, v := range a {
		ss += (v - mean) * (v - mean)
	}
	stddev := math.Sqrt(ss / float64(len(a)-1))
	assert.InDelta(t, 0.5, stddev, 0.05)
}

func TestDifferentSeedsDiffer(t *testing.T) {
	a := make([]float64, 100)
	b := make([]float64, 100)
	Gaussian(0, 1, 1)(a)
	Gaussian(0, 1, 2)(b)
	assert.NotEqual(t, a, b)
}
