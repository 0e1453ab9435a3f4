package stimulus

import (
	"errors"
	"math"
)

// Errors returned by stimulus functions.
var (
	ErrInvalidSampleRate    = errors.New("stimulus: sample rate must be positive")
	ErrInvalidChordDuration = errors.New("stimulus: chord duration must be positive")
	ErrInvalidTotalDuration = errors.New("stimulus: total duration must cover at least one chord")
	ErrInvalidRamp          = errors.New("stimulus: ramp duration must be non-negative and fit twice into a chord")
	ErrInvalidGrid          = errors.New("stimulus: frequency grid needs positive ascending bounds and at least two points")
	ErrInvalidToneCount     = errors.New("stimulus: tone count range must satisfy 0 < min <= max")
	ErrToneCountExceedsGrid = errors.New("stimulus: requested tone count exceeds frequency grid size")
	ErrInvalidCoherence     = errors.New("stimulus: figure coherence must be positive and within the tone budget")
	ErrInvalidFigure        = errors.New("stimulus: figure duration must be positive")
	ErrFigureWindowEmpty    = errors.New("stimulus: no feasible figure placement window")
	ErrStepOutOfRange       = errors.New("stimulus: figure step leaves no valid starting indices")
	ErrInvalidSNR           = errors.New("stimulus: snr must be positive")
)

// RandomOnset requests that the figure start chord is drawn uniformly
// from all feasible windows instead of being fixed.
const RandomOnset = -1

// Parameters describes one stochastic figure-ground stimulus.
//
// A stimulus is a sequence of chords, each a sum of pure tones drawn from a
// log-spaced frequency grid. Within a contiguous window of chords a "figure"
// of FigureCoherence tones repeats (or steps) across chords while the
// background is redrawn independently per chord.
type Parameters struct {
	SampleRate    float64 // Hz
	ChordDuration float64 // seconds per chord
	RampDuration  float64 // seconds of onset and of offset gating per chord
	TotalDuration float64 // seconds; trailing remainder beyond a whole chord count is truncated

	// Background tone budget per chord. With SNR == 0 the count is drawn
	// uniformly from [ToneCountMin, ToneCountMax]; ToneCountMax is also the
	// per-chord ceiling for figure plus background tones.
	ToneCountMin int
	ToneCountMax int

	// Frequency grid: GridLength log-uniformly spaced values covering
	// [GridMinFreq, GridMaxFreq].
	GridMinFreq float64
	GridMaxFreq float64
	GridLength  int

	FigureCoherence  int // tones moving together
	FigureDuration   int // chords
	FigureStep       int // grid steps per chord; 0 holds the figure static
	FigureOnsetChord int // fixed start chord, or RandomOnset
	OnsetMargin      int // chords kept figure-free at both ends of the stimulus

	// SNR > 0 switches the background budget to an SNR-derived count:
	// mean = FigureDuration*FigureCoherence / (numChords*SNR), then a uniform
	// integer offset in [-SNRMaxDeviation, SNRMaxDeviation] is added.
	SNR             float64
	SNRMaxDeviation int

	Seed int64
}

// NumChords returns the whole number of chords covered by TotalDuration.
// Any trailing remainder shorter than one chord is truncated, not an error.
func (p *Parameters) NumChords() int {
	if p.ChordDuration <= 0 {
		return 0
	}

	return int(math.Floor(p.TotalDuration / p.ChordDuration))
}

// ChordSamples returns the number of samples in one chord.
func (p *Parameters) ChordSamples() int {
	return int(math.Round(p.ChordDuration * p.SampleRate))
}

// RampSamples returns the number of samples in one onset (or offset) ramp.
func (p *Parameters) RampSamples() int {
	return int(math.Round(p.RampDuration * p.SampleRate))
}

// Validate checks that the parameters describe a feasible stimulus.
//
// Infeasible combinations (tone demand above the grid size, no room for the
// figure window) are configuration errors that the caller must fix; they are
// never silently clamped.
func (p *Parameters) Validate() error {
	if p.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	if p.ChordDuration <= 0 || p.ChordSamples() < 1 {
		return ErrInvalidChordDuration
	}

	if p.NumChords() < 1 {
		return ErrInvalidTotalDuration
	}

	if p.RampDuration < 0 || 2*p.RampSamples() > p.ChordSamples() {
		return ErrInvalidRamp
	}

	if p.GridMinFreq <= 0 || p.GridMaxFreq <= p.GridMinFreq || p.GridLength < 2 {
		return ErrInvalidGrid
	}

	if p.ToneCountMin <= 0 || p.ToneCountMax < p.ToneCountMin {
		return ErrInvalidToneCount
	}

	if p.FigureCoherence <= 0 || p.FigureCoherence > p.ToneCountMax {
		return ErrInvalidCoherence
	}

	if p.FigureDuration <= 0 {
		return ErrInvalidFigure
	}

	if p.SNR < 0 || (p.SNR > 0 && p.SNRMaxDeviation < 0) {
		return ErrInvalidSNR
	}

	// Worst-case simultaneous tone demand must fit onto the grid, otherwise
	// distinct index draws are impossible.
	if p.maxSimultaneousTones() > p.GridLength {
		return ErrToneCountExceedsGrid
	}

	if err := p.validatePlacement(); err != nil {
		return err
	}

	return nil
}

// maxSimultaneousTones returns the largest per-chord tone demand implied by
// the configuration.
func (p *Parameters) maxSimultaneousTones() int {
	if p.SNR > 0 {
		return p.snrBackgroundMean() + p.SNRMaxDeviation + p.FigureCoherence
	}

	return p.ToneCountMax
}

// snrBackgroundMean returns the rounded mean background tone count implied by
// the SNR target.
func (p *Parameters) snrBackgroundMean() int {
	n := p.NumChords()
	if n == 0 || p.SNR <= 0 {
		return 0
	}

	mean := float64(p.FigureDuration*p.FigureCoherence) / (float64(n) * p.SNR)

	return int(math.Round(mean))
}

// validatePlacement checks that at least one figure window of FigureDuration
// chords fits between the onset margins, and that a fixed onset lies inside
// the feasible range.
func (p *Parameters) validatePlacement() error {
	first, last := p.placementRange()
	if last < first {
		return ErrFigureWindowEmpty
	}

	if p.FigureOnsetChord != RandomOnset &&
		(p.FigureOnsetChord < first || p.FigureOnsetChord > last) {
		return ErrFigureWindowEmpty
	}

	return nil
}

// placementRange returns the first and last feasible figure start chords.
// The window [start, start+FigureDuration-1] must lie fully inside
// [OnsetMargin, NumChords()-OnsetMargin-1].
func (p *Parameters) placementRange() (first, last int) {
	first = p.OnsetMargin
	last = p.NumChords() - p.OnsetMargin - p.FigureDuration

	return first, last
}
