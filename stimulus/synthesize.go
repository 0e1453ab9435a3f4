package stimulus

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"
)

// Synthesize renders one stochastic figure-ground stimulus from p.
//
// With figurePresent, the chords inside the figure window carry the coherent
// figure tones from the pre-computed trajectory; without it, the same window
// receives decoy tones drawn independently per chord with the figure's
// coherence count, so the two conditions match acoustically except for the
// coherent pattern.
//
// The generator is seeded once from p.Seed and consumed in a fixed order:
// figure start chord (when the onset is random), figure trajectory start
// indices, then per chord in order the background tone count, the background
// grid indices, and finally the decoy indices when figurePresent is false.
// Equal parameters therefore yield bit-identical output.
//
// TotalDuration is truncated to a whole number of chords; the returned
// buffers cover NumChords()*ChordSamples() samples.
func Synthesize(p Parameters, figurePresent bool) (*Output, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	grid, err := NewFrequencyGrid(p.GridMinFreq, p.GridMaxFreq, p.GridLength)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(p.Seed))

	plan, err := PlanFigure(&p, grid, rng)
	if err != nil {
		return nil, err
	}

	numChords := p.NumChords()
	chordSamples := p.ChordSamples()
	gate := Gate(chordSamples, p.RampSamples())

	out := &Output{
		FigureFreqs:      newFreqMatrix(p.FigureCoherence, numChords),
		BackgroundFreqs:  newFreqMatrix(p.maxBackgroundTones(), numChords),
		FigureStartChord: plan.StartChord,
		FigureEndChord:   plan.EndChord,
	}

	mono := make([]float64, numChords*chordSamples)
	tone := make([]float64, chordSamples)

	for c := 0; c < numChords; c++ {
		chordBuf := mono[c*chordSamples : (c+1)*chordSamples]

		figIdx := plan.ChordIndices(c)
		inWindow := figIdx != nil
		if !figurePresent {
			figIdx = nil
		}

		// Chords inside the figure window reserve the coherence slots even in
		// the figure-absent variant, so both variants carry the same total
		// tone count per chord.
		reserved := 0
		if inWindow {
			reserved = p.FigureCoherence
		}

		bgIdx := drawBackground(&p, grid, rng, figIdx, reserved)

		var decoyIdx []int
		if !figurePresent && inWindow {
			decoyIdx = drawDecoys(&p, grid, rng, bgIdx)
		}

		renderColumn(&p, grid, chordBuf, tone, bgIdx, out.BackgroundFreqs, c)
		if figurePresent && inWindow {
			renderColumn(&p, grid, chordBuf, tone, figIdx, out.FigureFreqs, c)
		} else if decoyIdx != nil {
			renderColumn(&p, grid, chordBuf, tone, decoyIdx, out.FigureFreqs, c)
		}

		vecmath.MulBlockInPlace(chordBuf, gate)
	}

	normalizeStereo(out, mono)

	return out, nil
}

// maxBackgroundTones returns the largest background tone count any chord can
// receive, sizing the BackgroundFreqs matrix.
func (p *Parameters) maxBackgroundTones() int {
	if p.SNR > 0 {
		return p.snrBackgroundMean() + p.SNRMaxDeviation
	}

	return p.ToneCountMax
}

// drawBackground draws the chord's background grid indices: first the count,
// then that many distinct indices excluding the chord's figure indices.
//
// In fixed-range mode the combined figure+background count is capped at
// ToneCountMax by dropping the tail of the drawn background set. The trim is
// deterministic and happens after the draw, so the generator consumption does
// not depend on whether trimming occurs. Dropping the tail slightly
// underrepresents later-drawn indices at the ceiling; this matches the
// established procedure and is kept for compatibility.
func drawBackground(p *Parameters, grid *FrequencyGrid, rng *rand.Rand, figIdx []int, reserved int) []int {
	var count int
	if p.SNR > 0 {
		count = p.snrBackgroundMean() - p.SNRMaxDeviation + rng.Intn(2*p.SNRMaxDeviation+1)
		if count < 0 {
			count = 0
		}
	} else {
		count = p.ToneCountMin + rng.Intn(p.ToneCountMax-p.ToneCountMin+1)
	}

	idx := drawDistinct(rng, excludeIndices(grid.Len(), figIdx), count)

	if p.SNR == 0 && reserved+len(idx) > p.ToneCountMax {
		idx = idx[:p.ToneCountMax-reserved]
	}

	return idx
}

// drawDecoys draws FigureCoherence distinct indices disjoint from the chord's
// background. Each decoy chord is drawn independently: the decoys fill the
// figure slots without forming a trajectory.
func drawDecoys(p *Parameters, grid *FrequencyGrid, rng *rand.Rand, bgIdx []int) []int {
	return drawDistinct(rng, excludeIndices(grid.Len(), bgIdx), p.FigureCoherence)
}

// excludeIndices returns the grid indices [0, gridLen) not present in used.
func excludeIndices(gridLen int, used []int) []int {
	taken := make(map[int]bool, len(used))
	for _, i := range used {
		taken[i] = true
	}

	out := make([]int, 0, gridLen-len(used))
	for i := 0; i < gridLen; i++ {
		if !taken[i] {
			out = append(out, i)
		}
	}

	return out
}

// renderColumn adds a unit-amplitude sinusoid per grid index into chordBuf
// and records the rounded frequencies in column chord of freqs. Rendering
// uses the same rounded values that land in the matrix, so the diagnostics
// match the audio exactly.
func renderColumn(p *Parameters, grid *FrequencyGrid, chordBuf, tone []float64, indices []int, freqs [][]float64, chord int) {
	for row, gi := range indices {
		f := math.Round(grid.Freq(gi))
		freqs[row][chord] = f

		step := 2 * math.Pi * f / p.SampleRate
		for i := range tone {
			tone[i] = math.Sin(step * float64(i))
		}

		vecmath.AddBlockInPlace(chordBuf, tone)
	}
}

// normalizeStereo scales mono to a global peak magnitude of 1 and duplicates
// it into both output channels. Division by the peak keeps the peak sample at
// exactly +/-1.
func normalizeStereo(out *Output, mono []float64) {
	peak := vecmath.MaxAbs(mono)
	if peak == 0 {
		peak = 1
	}

	out.Left = make([]float64, len(mono))
	for i, v := range mono {
		out.Left[i] = v / peak
	}

	out.Right = make([]float64, len(mono))
	copy(out.Right, out.Left)
}
