// Command sfginfo prints the derived layout of a stochastic figure-ground
// stimulus configuration without rendering audio.
//
// Usage:
//
//	sfginfo [flags]
//
// It validates the parameter combination, then reports chord and sample
// counts, the feasible figure placement range, and the frequency grid.
//
// Examples:
//
//	sfginfo
//	sfginfo -total 3 -chord 0.025 -coherence 4
//	sfginfo -snr 0.25 -snrdev 2
//	sfginfo -grid
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-sfg/stimulus"
)

func main() {
	sampleRate := flag.Float64("rate", 44100, "sample rate in Hz")
	chord := flag.Float64("chord", 0.05, "chord duration in seconds")
	ramp := flag.Float64("ramp", 0.005, "onset/offset ramp duration in seconds")
	total := flag.Float64("total", 2.0, "total stimulus duration in seconds")
	toneMin := flag.Int("tonemin", 9, "minimum background tones per chord")
	toneMax := flag.Int("tonemax", 21, "maximum background tones per chord")
	freqMin := flag.Float64("fmin", 179, "lowest grid frequency in Hz")
	freqMax := flag.Float64("fmax", 7246, "highest grid frequency in Hz")
	gridLen := flag.Int("gridlen", 129, "number of grid frequencies")
	coherence := flag.Int("coherence", 8, "figure coherence (tones moving together)")
	duration := flag.Int("figdur", 10, "figure duration in chords")
	step := flag.Int("step", 0, "figure step in grid indices per chord")
	margin := flag.Int("margin", 4, "figure-free margin in chords at both ends")
	snr := flag.Float64("snr", 0, "SNR target (0 uses the fixed tone-count range)")
	snrDev := flag.Int("snrdev", 0, "maximum deviation from the SNR-derived count")
	grid := flag.Bool("grid", false, "print every grid frequency")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sfginfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the derived layout of an SFG stimulus configuration.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	p := stimulus.Parameters{
		SampleRate:       *sampleRate,
		ChordDuration:    *chord,
		RampDuration:     *ramp,
		TotalDuration:    *total,
		ToneCountMin:     *toneMin,
		ToneCountMax:     *toneMax,
		GridMinFreq:      *freqMin,
		GridMaxFreq:      *freqMax,
		GridLength:       *gridLen,
		FigureCoherence:  *coherence,
		FigureDuration:   *duration,
		FigureStep:       *step,
		FigureOnsetChord: stimulus.RandomOnset,
		OnsetMargin:      *margin,
		SNR:              *snr,
		SNRMaxDeviation:  *snrDev,
	}

	if err := p.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *grid {
		printGrid(&p)
		return
	}

	printLayout(&p)
}

func printLayout(p *stimulus.Parameters) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "chords\t%d\n", p.NumChords())
	fmt.Fprintf(w, "samples per chord\t%d\n", p.ChordSamples())
	fmt.Fprintf(w, "samples total\t%d\n", p.NumChords()*p.ChordSamples())
	fmt.Fprintf(w, "ramp samples\t%d\n", p.RampSamples())
	fmt.Fprintf(w, "grid\t%d points, %.0f-%.0f Hz\n", p.GridLength, p.GridMinFreq, p.GridMaxFreq)
	fmt.Fprintf(w, "figure\t%d tones x %d chords, step %d\n", p.FigureCoherence, p.FigureDuration, p.FigureStep)

	first := p.OnsetMargin
	last := p.NumChords() - p.OnsetMargin - p.FigureDuration
	fmt.Fprintf(w, "figure onset range\tchords %d-%d\n", first, last)

	if p.SNR > 0 {
		fmt.Fprintf(w, "background budget\tSNR %.3g derived\n", p.SNR)
	} else {
		fmt.Fprintf(w, "background budget\t%d-%d tones per chord\n", p.ToneCountMin, p.ToneCountMax)
	}

	w.Flush()
}

func printGrid(p *stimulus.Parameters) {
	g, err := stimulus.NewFrequencyGrid(p.GridMinFreq, p.GridMaxFreq, p.GridLength)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	for i := 0; i < g.Len(); i++ {
		fmt.Fprintf(w, "%d\t%.1f Hz\t\n", i, g.Freq(i))
	}

	w.Flush()
}
