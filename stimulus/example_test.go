package stimulus_test

import (
	"fmt"

	"github.com/cwbudde/algo-sfg/stimulus"
)

func ExampleSynthesize() {
	p := stimulus.Parameters{
		SampleRate:       44100,
		ChordDuration:    0.05,
		RampDuration:     0.005,
		TotalDuration:    2.0,
		ToneCountMin:     9,
		ToneCountMax:     21,
		GridMinFreq:      179,
		GridMaxFreq:      7246,
		GridLength:       129,
		FigureCoherence:  8,
		FigureDuration:   10,
		FigureOnsetChord: 15,
		OnsetMargin:      4,
		Seed:             42,
	}

	out, err := stimulus.Synthesize(p, true)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Chords: %d\n", p.NumChords())
	fmt.Printf("Samples per channel: %d\n", len(out.Left))
	fmt.Printf("Figure window: chords %d-%d\n", out.FigureStartChord, out.FigureEndChord)

	// Output:
	// Chords: 40
	// Samples per channel: 88200
	// Figure window: chords 15-24
}

func ExampleNewFrequencyGrid() {
	grid, err := stimulus.NewFrequencyGrid(179, 7246, 129)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Points: %d\n", grid.Len())
	fmt.Printf("First: %.0f Hz\n", grid.Freq(0))
	fmt.Printf("Last: %.0f Hz\n", grid.Freq(128))

	// Output:
	// Points: 129
	// First: 179 Hz
	// Last: 7246 Hz
}

func ExampleGate() {
	g := stimulus.Gate(12, 4)

	fmt.Printf("First: %.3f\n", g[0])
	fmt.Printf("Middle: %.3f\n", g[6])
	fmt.Printf("Last: %.3f\n", g[11])

	// Output:
	// First: 0.000
	// Middle: 1.000
	// Last: 0.000
}
