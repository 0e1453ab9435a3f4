package stimulus

import "math"

// Output holds one rendered stimulus.
//
// Left and Right carry identical samples (monophonic content, duplicated for
// two-channel playback), normalized so the global peak magnitude is exactly 1.
// FigureFreqs and BackgroundFreqs are diagnostic matrices of rounded tone
// frequencies in Hz, one column per chord; entries without a tone are NaN.
// For a figure-absent stimulus the decoy tones occupy the FigureFreqs rows of
// the chords inside the figure window.
type Output struct {
	Left  []float64
	Right []float64

	FigureFreqs     [][]float64 // [FigureCoherence][NumChords]
	BackgroundFreqs [][]float64 // [max background count][NumChords]

	FigureStartChord int
	FigureEndChord   int // inclusive
}

// NumChords returns the number of chord columns in the frequency matrices.
func (o *Output) NumChords() int {
	if len(o.FigureFreqs) == 0 {
		return 0
	}

	return len(o.FigureFreqs[0])
}

// newFreqMatrix allocates a rows x cols matrix filled with NaN.
func newFreqMatrix(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		row := make([]float64, cols)
		for j := range row {
			row[j] = math.NaN()
		}

		m[i] = row
	}

	return m
}
