//go:build fastmath

package staircase

import (
	"github.com/meko-christian/algo-approx"
)

// ln10 is the natural logarithm of 10, used for log base conversions.
const ln10 = 2.302585092994045684017991454684

// expNeg computes e^-x using fast approximation.
func expNeg(x float64) float64 {
	return approx.FastExp(-x)
}

// pow10 computes 10^x using fast approximation.
// Uses the identity: 10^x = e^(x * ln(10))
func pow10(x float64) float64 {
	return approx.FastExp(x * ln10)
}
