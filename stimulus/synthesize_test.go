package stimulus

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-sfg/internal/testutil"
)

// requireSameMatrix compares two frequency matrices treating NaN as equal to NaN.
func requireSameMatrix(t *testing.T, got, want [][]float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("row count: got %d, want %d", len(got), len(want))
	}

	for r := range got {
		if len(got[r]) != len(want[r]) {
			t.Fatalf("row %d length: got %d, want %d", r, len(got[r]), len(want[r]))
		}

		for c := range got[r] {
			g, w := got[r][c], want[r][c]
			if math.IsNaN(g) && math.IsNaN(w) {
				continue
			}

			if g != w {
				t.Fatalf("[%d][%d]: got %v, want %v", r, c, g, w)
			}
		}
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	p := validParams()

	for _, present := range []bool{true, false} {
		a, err := Synthesize(p, present)
		if err != nil {
			t.Fatal(err)
		}

		b, err := Synthesize(p, present)
		if err != nil {
			t.Fatal(err)
		}

		testutil.RequireSameSamples(t, a.Left, b.Left)
		testutil.RequireSameSamples(t, a.Right, b.Right)
		requireSameMatrix(t, a.FigureFreqs, b.FigureFreqs)
		requireSameMatrix(t, a.BackgroundFreqs, b.BackgroundFreqs)

		if a.FigureStartChord != b.FigureStartChord || a.FigureEndChord != b.FigureEndChord {
			t.Errorf("placement differs across runs: [%d,%d] vs [%d,%d]",
				a.FigureStartChord, a.FigureEndChord, b.FigureStartChord, b.FigureEndChord)
		}
	}
}

func TestSynthesizeSeedChangesOutput(t *testing.T) {
	p := validParams()

	a, err := Synthesize(p, true)
	if err != nil {
		t.Fatal(err)
	}

	p.Seed = 2

	b, err := Synthesize(p, true)
	if err != nil {
		t.Fatal(err)
	}

	same := true
	for i := range a.Left {
		if a.Left[i] != b.Left[i] {
			same = false
			break
		}
	}

	if same {
		t.Error("different seeds produced identical audio")
	}
}

func TestSynthesizeAmplitudeBound(t *testing.T) {
	p := validParams()

	out, err := Synthesize(p, true)
	if err != nil {
		t.Fatal(err)
	}

	wantLen := p.NumChords() * p.ChordSamples()
	if len(out.Left) != wantLen || len(out.Right) != wantLen {
		t.Fatalf("buffer length = %d/%d, want %d", len(out.Left), len(out.Right), wantLen)
	}

	testutil.RequireFinite(t, out.Left)

	peak := 0.0
	for i, v := range out.Left {
		if v < -1 || v > 1 {
			t.Fatalf("sample %d = %v outside [-1, 1]", i, v)
		}

		if math.Abs(v) > peak {
			peak = math.Abs(v)
		}

		if out.Right[i] != v {
			t.Fatalf("channels differ at sample %d", i)
		}
	}

	if peak != 1 {
		t.Errorf("peak = %v, want exactly 1", peak)
	}
}

func TestSynthesizeDisjointFigureAndBackground(t *testing.T) {
	p := validParams()

	for _, present := range []bool{true, false} {
		out, err := Synthesize(p, present)
		if err != nil {
			t.Fatal(err)
		}

		for c := 0; c < p.NumChords(); c++ {
			fig := testutil.ColumnSet(out.FigureFreqs, c)
			for f := range testutil.ColumnSet(out.BackgroundFreqs, c) {
				if fig[f] {
					t.Fatalf("present=%v chord %d: frequency %v in both figure and background", present, c, f)
				}
			}
		}
	}
}

func TestSynthesizeToneBudget(t *testing.T) {
	p := validParams()

	for _, present := range []bool{true, false} {
		out, err := Synthesize(p, present)
		if err != nil {
			t.Fatal(err)
		}

		for c := 0; c < p.NumChords(); c++ {
			n := len(testutil.Column(out.FigureFreqs, c)) + len(testutil.Column(out.BackgroundFreqs, c))
			if n > p.ToneCountMax {
				t.Fatalf("present=%v chord %d: %d tones exceed budget %d", present, c, n, p.ToneCountMax)
			}

			if n < p.ToneCountMin {
				t.Fatalf("present=%v chord %d: %d tones below minimum %d", present, c, n, p.ToneCountMin)
			}
		}
	}
}

func TestSynthesizeBudgetTrim(t *testing.T) {
	p := validParams()
	p.ToneCountMin = 10
	p.ToneCountMax = 10 // background always drawn at 10, trimmed to 2 inside the window
	p.FigureOnsetChord = 10

	out, err := Synthesize(p, true)
	if err != nil {
		t.Fatal(err)
	}

	for c := 0; c < p.NumChords(); c++ {
		fig := len(testutil.Column(out.FigureFreqs, c))
		bg := len(testutil.Column(out.BackgroundFreqs, c))

		if c >= 10 && c <= 19 {
			if fig != 8 || bg != 2 {
				t.Fatalf("chord %d: figure %d + background %d, want 8 + 2", c, fig, bg)
			}
		} else {
			if fig != 0 || bg != 10 {
				t.Fatalf("chord %d: figure %d + background %d, want 0 + 10", c, fig, bg)
			}
		}
	}
}

func TestSynthesizeFigureWindow(t *testing.T) {
	p := validParams()
	p.FigureOnsetChord = 15

	out, err := Synthesize(p, true)
	if err != nil {
		t.Fatal(err)
	}

	if out.FigureStartChord != 15 || out.FigureEndChord != 24 {
		t.Fatalf("window = [%d, %d], want [15, 24]", out.FigureStartChord, out.FigureEndChord)
	}

	for c := 0; c < p.NumChords(); c++ {
		n := len(testutil.Column(out.FigureFreqs, c))

		inside := c >= 15 && c <= 24
		if inside && n != p.FigureCoherence {
			t.Fatalf("chord %d: %d figure tones, want %d", c, n, p.FigureCoherence)
		}

		if !inside && n != 0 {
			t.Fatalf("chord %d: %d figure tones outside the window", c, n)
		}
	}

	// Static figure: every window chord repeats the same frequency set.
	first := testutil.ColumnSet(out.FigureFreqs, 15)
	for c := 16; c <= 24; c++ {
		set := testutil.ColumnSet(out.FigureFreqs, c)
		if len(set) != len(first) {
			t.Fatalf("chord %d: figure set size changed", c)
		}

		for f := range set {
			if !first[f] {
				t.Fatalf("chord %d: figure frequency %v not in first chord's set", c, f)
			}
		}
	}
}

func TestSynthesizeDecoysDoNotRepeat(t *testing.T) {
	p := validParams()
	p.FigureOnsetChord = 15

	out, err := Synthesize(p, false)
	if err != nil {
		t.Fatal(err)
	}

	// Decoys fill the figure slots inside the window.
	for c := 15; c <= 24; c++ {
		if n := len(testutil.Column(out.FigureFreqs, c)); n != p.FigureCoherence {
			t.Fatalf("chord %d: %d decoy tones, want %d", c, n, p.FigureCoherence)
		}
	}

	// Independent draws per chord: with 8 of 121 candidate indices per chord
	// the chance of ten identical columns is nil.
	first := testutil.ColumnSet(out.FigureFreqs, 15)
	allSame := true
	for c := 16; c <= 24 && allSame; c++ {
		set := testutil.ColumnSet(out.FigureFreqs, c)
		for f := range set {
			if !first[f] {
				allSame = false
				break
			}
		}
	}

	if allSame {
		t.Error("decoy columns form a repeating pattern; expected independent draws")
	}
}

func TestSynthesizeSNRBudget(t *testing.T) {
	p := validParams()
	p.SNR = 0.25 // mean background count (10*8)/(40*0.25) = 8
	p.SNRMaxDeviation = 2

	out, err := Synthesize(p, true)
	if err != nil {
		t.Fatal(err)
	}

	for c := 0; c < p.NumChords(); c++ {
		bg := len(testutil.Column(out.BackgroundFreqs, c))
		if bg < 6 || bg > 10 {
			t.Fatalf("chord %d: background count %d outside [6, 10]", c, bg)
		}
	}
}

func TestSynthesizeFrequenciesOnGrid(t *testing.T) {
	p := validParams()

	grid, err := NewFrequencyGrid(p.GridMinFreq, p.GridMaxFreq, p.GridLength)
	if err != nil {
		t.Fatal(err)
	}

	onGrid := make(map[float64]bool, grid.Len())
	for i := 0; i < grid.Len(); i++ {
		onGrid[math.Round(grid.Freq(i))] = true
	}

	out, err := Synthesize(p, true)
	if err != nil {
		t.Fatal(err)
	}

	for c := 0; c < p.NumChords(); c++ {
		for _, f := range testutil.Column(out.FigureFreqs, c) {
			if !onGrid[f] {
				t.Fatalf("chord %d: figure frequency %v not on the rounded grid", c, f)
			}
		}

		for _, f := range testutil.Column(out.BackgroundFreqs, c) {
			if !onGrid[f] {
				t.Fatalf("chord %d: background frequency %v not on the rounded grid", c, f)
			}
		}
	}
}

func TestSynthesizeChordOnsetsGated(t *testing.T) {
	p := validParams()

	out, err := Synthesize(p, true)
	if err != nil {
		t.Fatal(err)
	}

	cs := p.ChordSamples()
	for c := 0; c < p.NumChords(); c++ {
		if v := out.Left[c*cs]; v != 0 {
			t.Fatalf("chord %d: first sample %v, want 0 (gated onset)", c, v)
		}

		if v := out.Left[(c+1)*cs-1]; v != 0 {
			t.Fatalf("chord %d: last sample %v, want 0 (gated offset)", c, v)
		}
	}
}

func TestSynthesizeReferenceScenario(t *testing.T) {
	// 2 s of 50 ms chords on the 179-7246 Hz, 129-point grid with a static
	// 8-tone, 10-chord figure: the canonical configuration. Seed 12345 must
	// reproduce the assignment tables recorded below; a change in the draw
	// order, the generator, or the grid math shows up as a mismatch here
	// even when run-to-run determinism still holds.
	p := validParams()
	p.Seed = 12345
	p.FigureOnsetChord = RandomOnset

	if p.NumChords() != 40 {
		t.Fatalf("NumChords() = %d, want 40", p.NumChords())
	}

	out, err := Synthesize(p, true)
	if err != nil {
		t.Fatal(err)
	}

	if len(out.FigureFreqs) != 8 || len(out.FigureFreqs[0]) != 40 {
		t.Fatalf("figure matrix %dx%d, want 8x40", len(out.FigureFreqs), len(out.FigureFreqs[0]))
	}

	if len(out.BackgroundFreqs) != 21 || len(out.BackgroundFreqs[0]) != 40 {
		t.Fatalf("background matrix %dx%d, want 21x40", len(out.BackgroundFreqs), len(out.BackgroundFreqs[0]))
	}

	const wantStart, wantEnd = 18, 27
	if out.FigureStartChord != wantStart || out.FigureEndChord != wantEnd {
		t.Fatalf("window [%d, %d], want [%d, %d]",
			out.FigureStartChord, out.FigureEndChord, wantStart, wantEnd)
	}

	// Rounded Hz of the eight trajectory tones, in draw order. The figure is
	// static, so every window chord carries the same column.
	wantFigure := []float64{1757, 4696, 4064, 1809, 853, 246, 426, 478}
	for c := wantStart; c <= wantEnd; c++ {
		requireSameColumn(t, "figure", c, testutil.Column(out.FigureFreqs, c), wantFigure)
	}

	for c := 0; c < wantStart; c++ {
		if got := testutil.Column(out.FigureFreqs, c); len(got) != 0 {
			t.Fatalf("chord %d: %d figure tones before the window", c, len(got))
		}
	}

	wantCounts := []int{
		13, 12, 18, 16, 12, 15, 16, 14, 16, 21,
		16, 19, 10, 10, 11, 9, 11, 15, 13, 13,
		13, 9, 12, 10, 13, 13, 13, 12, 17, 13,
		11, 18, 17, 10, 11, 14, 21, 19, 11, 12,
	}
	for c := range wantCounts {
		if got := len(testutil.Column(out.BackgroundFreqs, c)); got != wantCounts[c] {
			t.Fatalf("chord %d: %d background tones, want %d", c, got, wantCounts[c])
		}
	}

	wantFirstChord := []float64{
		492, 3836, 1757, 1973, 4306, 878, 4696, 1139, 319, 478, 2634, 1809, 293,
	}
	requireSameColumn(t, "background", 0, testutil.Column(out.BackgroundFreqs, 0), wantFirstChord)

	wantLastChord := []float64{
		569, 452, 2090, 2415, 261, 4183, 507, 1139, 522, 1014, 1044, 5918,
	}
	requireSameColumn(t, "background", 39, testutil.Column(out.BackgroundFreqs, 39), wantLastChord)
}

func requireSameColumn(t *testing.T, name string, chord int, got, want []float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("chord %d: %s column has %d tones, want %d", chord, name, len(got), len(want))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("chord %d: %s tone %d = %v Hz, want %v Hz", chord, name, i, got[i], want[i])
		}
	}
}

func TestSynthesizeConfigurationErrors(t *testing.T) {
	p := validParams()
	p.ToneCountMin = 130
	p.ToneCountMax = 200

	if _, err := Synthesize(p, true); err != ErrToneCountExceedsGrid {
		t.Errorf("Synthesize() error = %v, want %v", err, ErrToneCountExceedsGrid)
	}

	p = validParams()
	p.FigureStep = 20

	if _, err := Synthesize(p, true); err != ErrStepOutOfRange {
		t.Errorf("Synthesize() error = %v, want %v", err, ErrStepOutOfRange)
	}
}
