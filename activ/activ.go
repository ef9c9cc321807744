// Copyright 2026 Cain ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package activ provides elementwise activation operators and their
// gradients as plain numeric functions.
package activ

import "github.com/cain-ml/cain/internal/activ"

// SrgbToLinear converts an sRGB-encoded component to linear light.
func SrgbToLinear(x float64) float64 {
	return activ.SrgbToLinear(x)
}

// SrgbToLinearGrad backpropagates outputGrad through SrgbToLinear at x.
func SrgbToLinearGrad(x, outputGrad float64) float64 {
	return activ.SrgbToLinearGrad(x, outputGrad)
}

// LinearToSrgb converts a linear-light component to sRGB encoding.
func LinearToSrgb(x float64) float64 {
	return activ.LinearToSrgb(x)
}

// LinearToSrgbGrad backpropagates outputGrad through LinearToSrgb at x.
func LinearToSrgbGrad(x, outputGrad float64) float64 {
	return activ.LinearToSrgbGrad(x, outputGrad)
}
