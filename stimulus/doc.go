// Package stimulus synthesizes stochastic figure-ground (SFG) auditory test
// signals.
//
// An SFG stimulus is a rapid sequence of chords, each a sum of pure tones
// drawn from a fixed log-spaced frequency grid. The background tones are
// redrawn independently for every chord. Inside a contiguous window of chords
// a "figure" appears: a set of tones that either repeats exactly or steps
// coherently across the grid from chord to chord. Listeners detect the figure
// purely through its cross-chord coherence, which makes the paradigm a
// direct measure of auditory scene analysis.
//
// # Usage
//
// Fill in Parameters, then render the figure-present and figure-absent
// variants from the same seed:
//
//	p := stimulus.Parameters{
//	    SampleRate:    44100,
//	    ChordDuration: 0.05,
//	    RampDuration:  0.005,
//	    TotalDuration: 2.0,
//	    ToneCountMin:  9,
//	    ToneCountMax:  21,
//	    GridMinFreq:   179,
//	    GridMaxFreq:   7246,
//	    GridLength:    129,
//	    FigureCoherence:  8,
//	    FigureDuration:   10,
//	    FigureOnsetChord: stimulus.RandomOnset,
//	    OnsetMargin:      4,
//	    Seed:             42,
//	}
//	target, _ := stimulus.Synthesize(p, true)
//	decoy, _ := stimulus.Synthesize(p, false)
//
// Synthesize is pure: it owns no hidden random state, performs no I/O, and
// returns fresh buffers. Equal parameters (including Seed) reproduce the
// output bit for bit. Playback, persistence, and trial sequencing belong to
// the caller.
package stimulus
