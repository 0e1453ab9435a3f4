package stimulus

import "math/rand"

// FigurePlan fixes the temporal placement and the frequency trajectory of the
// figure before any chord is rendered.
//
// Trajectory holds one row per chord of the figure window; each row lists the
// grid indices of the coherent tones in that chord. With FigureStep == 0 every
// row repeats the starting indices; otherwise every row shifts all indices by
// FigureStep relative to the previous one. The starting range is clamped so
// that the whole trajectory stays inside the grid.
type FigurePlan struct {
	StartChord int
	EndChord   int // inclusive
	Trajectory [][]int
}

// Contains reports whether chord lies inside the figure window.
func (f *FigurePlan) Contains(chord int) bool {
	return chord >= f.StartChord && chord <= f.EndChord
}

// ChordIndices returns the figure grid indices for the given chord, or nil
// when the chord lies outside the figure window.
func (f *FigurePlan) ChordIndices(chord int) []int {
	if !f.Contains(chord) {
		return nil
	}

	return f.Trajectory[chord-f.StartChord]
}

// PlanFigure selects the figure window and its frequency trajectory.
//
// Random draws happen in a fixed order: first the start chord (only when the
// onset is not fixed), then the FigureCoherence distinct starting grid
// indices. Callers relying on reproducibility must not consume rng between
// Synthesize's seeding and this call.
func PlanFigure(p *Parameters, grid *FrequencyGrid, rng *rand.Rand) (*FigurePlan, error) {
	first, last := p.placementRange()
	if last < first {
		return nil, ErrFigureWindowEmpty
	}

	start := p.FigureOnsetChord
	if start == RandomOnset {
		start = first + rng.Intn(last-first+1)
	} else if start < first || start > last {
		return nil, ErrFigureWindowEmpty
	}

	starts, err := drawTrajectoryStarts(p, grid, rng)
	if err != nil {
		return nil, err
	}

	traj := make([][]int, p.FigureDuration)
	for c := range traj {
		row := make([]int, len(starts))
		for i, s := range starts {
			row[i] = s + c*p.FigureStep
		}

		traj[c] = row
	}

	return &FigurePlan{
		StartChord: start,
		EndChord:   start + p.FigureDuration - 1,
		Trajectory: traj,
	}, nil
}

// drawTrajectoryStarts draws FigureCoherence distinct starting grid indices
// from the range that keeps every stepped chord in bounds. With step s over d
// chords the valid starts are [0, L-1-s*(d-1)] for s > 0 and
// [-s*(d-1), L-1] for s < 0.
func drawTrajectoryStarts(p *Parameters, grid *FrequencyGrid, rng *rand.Rand) ([]int, error) {
	lo := 0
	hi := grid.Len() - 1

	shift := p.FigureStep * (p.FigureDuration - 1)
	if shift > 0 {
		hi -= shift
	} else {
		lo -= shift
	}

	if hi-lo+1 < p.FigureCoherence {
		return nil, ErrStepOutOfRange
	}

	candidates := make([]int, hi-lo+1)
	for i := range candidates {
		candidates[i] = lo + i
	}

	return drawDistinct(rng, candidates, p.FigureCoherence), nil
}

// drawDistinct draws k distinct values from candidates without replacement
// using a partial Fisher-Yates shuffle. The candidates slice is reordered in
// place; the returned slice aliases its first k elements.
func drawDistinct(rng *rand.Rand, candidates []int, k int) []int {
	if k > len(candidates) {
		k = len(candidates)
	}

	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}

	return candidates[:k]
}
