package stimulus

import "math"

// FrequencyGrid is an ordered set of log-uniformly spaced candidate
// frequencies. All stimulus tones are drawn from this grid; grid indices are
// the unit in which the figure steps up or down.
type FrequencyGrid struct {
	freqs []float64
}

// NewFrequencyGrid builds a grid of length points spanning [minFreq, maxFreq]
// with uniform spacing in log frequency:
//
//	f[i] = exp(ln(minFreq) + i/(length-1) * ln(maxFreq/minFreq))
//
// Both endpoints are included.
func NewFrequencyGrid(minFreq, maxFreq float64, length int) (*FrequencyGrid, error) {
	if minFreq <= 0 || maxFreq <= minFreq || length < 2 {
		return nil, ErrInvalidGrid
	}

	logMin := math.Log(minFreq)
	logStep := math.Log(maxFreq/minFreq) / float64(length-1)

	freqs := make([]float64, length)
	for i := range freqs {
		freqs[i] = math.Exp(logMin + float64(i)*logStep)
	}

	// Pin the endpoints so float rounding never drifts them off the bounds.
	freqs[0] = minFreq
	freqs[length-1] = maxFreq

	return &FrequencyGrid{freqs: freqs}, nil
}

// Len returns the number of grid points.
func (g *FrequencyGrid) Len() int {
	return len(g.freqs)
}

// Freq returns the frequency in Hz at grid index i.
func (g *FrequencyGrid) Freq(i int) float64 {
	return g.freqs[i]
}

// Freqs returns a copy of the full grid.
func (g *FrequencyGrid) Freqs() []float64 {
	out := make([]float64, len(g.freqs))
	copy(out, g.freqs)

	return out
}
