package stimulus

import "math"

// Gate returns the onset/offset envelope applied to every chord: a quarter-
// sine rise over rampLength samples, a flat middle at 1, and the mirrored
// fall. The rise is
//
//	g[i] = sin(i/(rampLength-1) * π/2)
//
// which starts at exactly 0 and reaches exactly 1, removing the click that a
// hard tone onset would produce. A rampLength of 0 or 1 yields a rectangular
// gate. Lengths are clamped so the two ramps never overlap.
func Gate(length, rampLength int) []float64 {
	if length <= 0 {
		return nil
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = 1
	}

	if rampLength > length/2 {
		rampLength = length / 2
	}

	if rampLength < 2 {
		return out
	}

	den := float64(rampLength - 1)
	for i := 0; i < rampLength; i++ {
		v := math.Sin(float64(i) / den * math.Pi / 2)
		out[i] = v
		out[length-1-i] = v
	}

	return out
}
