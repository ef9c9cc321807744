// Package activ provides elementwise activation operators and their
// gradients as plain numeric functions, independent of any graph
// machinery.
//
// The sRGB transfer functions here are fast polynomial approximations of
// the piecewise gamma curves, accurate to a few 1e-4 over [0, 1], with
// the standard linear segment below the breakpoint.
package activ

import "math"

// Breakpoints of the piecewise sRGB transfer functions.
const (
	srgbLinearThreshold    = 0.0404482362771082
	linearSrgbThreshold    = 0.00313066844250063
	srgbLinearSegmentSlope = 12.92
)

// SrgbToLinear converts an sRGB-encoded component to linear light.
func SrgbToLinear(x float64) float64 {
	if x <= srgbLinearThreshold {
		return x / srgbLinearSegmentSlope
	}
	return 0.001522305 + 0.012475774*x + 0.662456816212772*x*x + 0.32679397543773*x*x*x
}

// SrgbToLinearGrad backpropagates outputGrad through SrgbToLinear at x.
func SrgbToLinearGrad(x, outputGrad float64) float64 {
	if x <= srgbLinearThreshold {
		return outputGrad / srgbLinearSegmentSlope
	}
	return outputGrad * (0.012475774 + 2.0*0.662456816212772*x + 3.0*0.32679397543773*x*x)
}

// LinearToSrgb converts a linear-light component to sRGB encoding.
func LinearToSrgb(x float64) float64 {
	if x <= linearSrgbThreshold {
		return x * srgbLinearSegmentSlope
	}
	s1 := math.Sqrt(x)
	s2 := math.Sqrt(s1)
	return -0.074312538 + 0.852548197*s1 + 0.284336309*s2 - 0.063628643*x
}

// LinearToSrgbGrad backpropagates outputGrad through LinearToSrgb at x.
func LinearToSrgbGrad(x, outputGrad float64) float64 {
	if x <= linearSrgbThreshold {
		return outputGrad * srgbLinearSegmentSlope
	}
	s1 := math.Sqrt(x)
	s2 := math.Sqrt(s1)
	return outputGrad * (0.5*0.852548197/s1 + 0.25*0.284336309/(s1*s2) - 0.063628643)
}
