package staircase

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by staircase functions.
var (
	ErrInvalidPrior      = errors.New("staircase: prior standard deviation must be positive")
	ErrInvalidBeta       = errors.New("staircase: beta must be positive")
	ErrInvalidRates      = errors.New("staircase: gamma and delta must satisfy 0 <= gamma, 0 <= delta, gamma+delta < 1")
	ErrInvalidPThreshold = errors.New("staircase: pThreshold must lie strictly between gamma and 1-delta")
	ErrInvalidGrid       = errors.New("staircase: grain and range must be positive with range >= grain")
	ErrInvalidStopRule   = errors.New("staircase: stop rule needs 0 < minTrials <= maxTrials and targetSD > 0")
	ErrInvalidQuantile   = errors.New("staircase: quantile must lie strictly between 0 and 1")
	ErrFinished          = errors.New("staircase: run already terminated")
	ErrDegenerate        = errors.New("staircase: posterior mass vanished; threshold outside grid range or model misconfigured")
	ErrEmptyGrid         = errors.New("staircase: recommendation grid is empty")
)

// Outcome is one trial's behavioral result.
type Outcome int

const (
	// Incorrect marks a wrong response.
	Incorrect Outcome = iota
	// Correct marks a right response.
	Correct
	// NoResponse marks a missing or timed-out response. It updates the
	// posterior exactly like Incorrect; the policy is explicit so missing
	// data cannot stall convergence.
	NoResponse
)

// State identifies where a run is in its lifecycle.
type State int

const (
	// Active accepts further trials.
	Active State = iota
	// Converged means the posterior SD dropped below TargetSD after at
	// least MinTrials counted trials.
	Converged
	// MaxTrialsReached means the counted-trial ceiling forced termination
	// before the SD target was met.
	MaxTrialsReached
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Converged:
		return "converged"
	case MaxTrialsReached:
		return "max-trials-reached"
	default:
		return "unknown"
	}
}

// Staircase is a QUEST-style Bayesian threshold estimator.
//
// It keeps a discretized posterior over the threshold t of a Weibull
// psychometric function in log units,
//
//	P(correct | t, x) = gamma + (1-gamma-delta) * (1 - exp(-10^(beta*(x-t+c))))
//
// where x is the presented value and c places PThreshold exactly at x = t.
// Each counted trial multiplies the posterior by the likelihood of the
// observed outcome and renormalizes. A run is strictly sequential; a
// Staircase must not be shared across concurrent trials.
type Staircase struct {
	cfg Config

	tGrid   []float64 // absolute threshold values
	tGrid2  []float64 // squared, for the second moment
	pdf     []float64 // normalized posterior
	scratch []float64

	offset float64 // c above: shifts the Weibull so P(t|t) = PThreshold

	presented int // all trials, including ignored leading ones
	counted   int // trials that updated the posterior
	state     State
}

// New creates an Active staircase from the default config and options.
func New(opts ...Option) (*Staircase, error) {
	return NewFromConfig(ApplyOptions(opts...))
}

// NewFromConfig creates an Active staircase from an explicit config.
func NewFromConfig(cfg Config) (*Staircase, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	n := int(math.Floor(cfg.Range/cfg.Grain)) + 1

	s := &Staircase{
		cfg:     cfg,
		tGrid:   make([]float64, n),
		tGrid2:  make([]float64, n),
		pdf:     make([]float64, n),
		scratch: make([]float64, n),
		offset:  thresholdOffset(cfg),
		state:   Active,
	}

	// Gaussian prior centered on TGuess over tGuess +/- Range/2.
	for i := range s.pdf {
		t := cfg.TGuess - cfg.Range/2 + float64(i)*cfg.Grain
		s.tGrid[i] = t
		s.tGrid2[i] = t * t

		z := (t - cfg.TGuess) / cfg.TGuessSD
		s.pdf[i] = expNeg(0.5 * z * z)
	}

	vecmath.ScaleBlockInPlace(s.pdf, 1/vecmath.Sum(s.pdf))

	return s, nil
}

func validateConfig(cfg Config) error {
	if cfg.TGuessSD <= 0 {
		return ErrInvalidPrior
	}

	if cfg.Beta <= 0 {
		return ErrInvalidBeta
	}

	if cfg.Gamma < 0 || cfg.Delta < 0 || cfg.Gamma+cfg.Delta >= 1 {
		return ErrInvalidRates
	}

	if cfg.PThreshold <= cfg.Gamma || cfg.PThreshold >= 1-cfg.Delta {
		return ErrInvalidPThreshold
	}

	if cfg.Grain <= 0 || cfg.Range < cfg.Grain {
		return ErrInvalidGrid
	}

	if cfg.MinTrials <= 0 || cfg.MaxTrials < cfg.MinTrials || cfg.TargetSD <= 0 {
		return ErrInvalidStopRule
	}

	if cfg.IgnoreTrials < 0 {
		return errors.New("staircase: ignore trial count must be non-negative")
	}

	return nil
}

// thresholdOffset solves P(t | t) = PThreshold for the Weibull shift c:
//
//	10^(beta*c) = -ln(1 - (pThreshold-gamma)/(1-gamma-delta))
func thresholdOffset(cfg Config) float64 {
	frac := (cfg.PThreshold - cfg.Gamma) / (1 - cfg.Gamma - cfg.Delta)

	return math.Log10(-math.Log(1-frac)) / cfg.Beta
}

// ProbCorrect returns the model's detection probability for a stimulus at
// value x when the true threshold is t.
func (s *Staircase) ProbCorrect(t, x float64) float64 {
	return s.cfg.Gamma + (1-s.cfg.Gamma-s.cfg.Delta)*(1-expNeg(pow10(s.cfg.Beta*(x-t+s.offset))))
}

// Update ingests one trial presented at value x.
//
// The first IgnoreTrials presented trials orient the subject and are
// deliberately not fed into the posterior. NoResponse is treated as
// Incorrect. On a degenerate update (likelihood annihilates the posterior
// everywhere on the grid) ErrDegenerate is returned and the posterior and
// lifecycle state are left untouched.
func (s *Staircase) Update(x float64, outcome Outcome) error {
	if s.state != Active {
		return ErrFinished
	}

	s.presented++
	if s.presented <= s.cfg.IgnoreTrials {
		return nil
	}

	correct := outcome == Correct

	for i, t := range s.tGrid {
		p := s.ProbCorrect(t, x)
		if !correct {
			p = 1 - p
		}

		s.scratch[i] = s.pdf[i] * p
	}

	mass := vecmath.Sum(s.scratch)
	if mass <= 0 || math.IsNaN(mass) {
		return ErrDegenerate
	}

	vecmath.ScaleBlock(s.pdf, s.scratch, 1/mass)
	s.counted++

	switch {
	case s.counted >= s.cfg.MinTrials && s.SD() < s.cfg.TargetSD:
		s.state = Converged
	case s.counted >= s.cfg.MaxTrials:
		s.state = MaxTrialsReached
	}

	return nil
}

// Mean returns the posterior mean of the threshold. Before any counted trial
// this is the prior mean.
func (s *Staircase) Mean() float64 {
	return vecmath.DotProduct(s.pdf, s.tGrid)
}

// SD returns the posterior standard deviation, the convergence metric of the
// stopping rule.
func (s *Staircase) SD() float64 {
	mean := s.Mean()

	variance := vecmath.DotProduct(s.pdf, s.tGrid2) - mean*mean
	if variance < 0 {
		variance = 0
	}

	return math.Sqrt(variance)
}

// Quantile returns the smallest grid threshold whose cumulative posterior
// mass reaches q. Quantile(0.5) is the posterior median.
func (s *Staircase) Quantile(q float64) (float64, error) {
	if q <= 0 || q >= 1 {
		return 0, ErrInvalidQuantile
	}

	cum := 0.0
	for i, p := range s.pdf {
		cum += p
		if cum >= q {
			return s.tGrid[i], nil
		}
	}

	// Rounding can leave the running sum a hair under 1.
	return s.tGrid[len(s.tGrid)-1], nil
}

// Mode returns the grid threshold carrying the largest posterior mass. When
// several grid points tie, the lowest value wins.
func (s *Staircase) Mode() float64 {
	best := 0
	for i, p := range s.pdf {
		if p > s.pdf[best] {
			best = i
		}
	}

	return s.tGrid[best]
}

// Recommend returns the value to present on the next trial: the current
// posterior mean.
func (s *Staircase) Recommend() float64 {
	return s.Mean()
}

// RecommendOn maps the recommendation onto the caller's discrete stimulus
// grid and returns the nearest value, with ties resolved by NearestValue's
// lower-value rule.
func (s *Staircase) RecommendOn(grid []float64) (float64, error) {
	if len(grid) == 0 {
		return 0, ErrEmptyGrid
	}

	return NearestValue(s.Recommend(), grid), nil
}

// NearestValue returns the grid value closest to target. When two grid
// values are exactly equidistant the lower one wins; a naive nearest-index
// search would make that case depend on grid order.
func NearestValue(target float64, grid []float64) float64 {
	best := grid[0]
	bestDiff := math.Abs(grid[0] - target)

	for _, v := range grid[1:] {
		diff := math.Abs(v - target)
		if diff < bestDiff || (diff == bestDiff && v < best) {
			best = v
			bestDiff = diff
		}
	}

	return best
}

// State returns the run's lifecycle state. Both terminal states keep
// answering Mean, SD, and Recommend queries.
func (s *Staircase) State() State {
	return s.state
}

// Presented returns the total number of trials seen, including ignored ones.
func (s *Staircase) Presented() int {
	return s.presented
}

// Counted returns the number of trials that updated the posterior.
func (s *Staircase) Counted() int {
	return s.counted
}

// Config returns the run's configuration.
func (s *Staircase) Config() Config {
	return s.cfg
}
