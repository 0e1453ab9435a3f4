//go:build !fastmath

package staircase

import "math"

// expNeg computes e^-x using the standard library.
func expNeg(x float64) float64 {
	return math.Exp(-x)
}

// pow10 computes 10^x using the standard library.
func pow10(x float64) float64 {
	return math.Pow(10, x)
}
