package staircase

// Config defines the prior, the psychometric model, and the stopping rule of
// a threshold run. The threshold parameter t lives in log units (e.g. log
// coherence or log SNR); Grain and Range are expressed in the same units.
type Config struct {
	TGuess   float64 // prior mean of the threshold
	TGuessSD float64 // prior standard deviation

	Beta       float64 // psychometric slope
	Delta      float64 // lapse rate
	Gamma      float64 // guess rate (e.g. 0.5 for 2AFC)
	PThreshold float64 // detection probability that defines "threshold"

	Grain float64 // posterior grid resolution
	Range float64 // posterior grid half-width is Range/2 around TGuess

	IgnoreTrials int     // leading trials presented but never fed to the posterior
	MinTrials    int     // counted trials before convergence may be declared
	MaxTrials    int     // counted-trial ceiling forcing termination
	TargetSD     float64 // posterior SD below which the run converges
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns sensible defaults for a two-alternative forced-choice
// run. TGuess intentionally defaults to 0: the caller maps its stimulus
// dimension into log units around the expected threshold.
func DefaultConfig() Config {
	return Config{
		TGuess:       0,
		TGuessSD:     2,
		Beta:         3.5,
		Delta:        0.01,
		Gamma:        0.5,
		PThreshold:   0.75,
		Grain:        0.01,
		Range:        5,
		IgnoreTrials: 1,
		MinTrials:    10,
		MaxTrials:    100,
		TargetSD:     0.05,
	}
}

// WithPrior sets the prior mean and standard deviation of the threshold.
func WithPrior(tGuess, tGuessSD float64) Option {
	return func(cfg *Config) {
		cfg.TGuess = tGuess
		if tGuessSD > 0 {
			cfg.TGuessSD = tGuessSD
		}
	}
}

// WithPsychometric sets the Weibull slope, lapse rate, and guess rate.
func WithPsychometric(beta, delta, gamma float64) Option {
	return func(cfg *Config) {
		if beta > 0 {
			cfg.Beta = beta
		}

		if delta >= 0 {
			cfg.Delta = delta
		}

		if gamma >= 0 {
			cfg.Gamma = gamma
		}
	}
}

// WithPThreshold sets the detection probability the estimate targets.
func WithPThreshold(p float64) Option {
	return func(cfg *Config) {
		if p > 0 && p < 1 {
			cfg.PThreshold = p
		}
	}
}

// WithGrid sets the posterior grid resolution and total width.
func WithGrid(grain, width float64) Option {
	return func(cfg *Config) {
		if grain > 0 {
			cfg.Grain = grain
		}

		if width > 0 {
			cfg.Range = width
		}
	}
}

// WithIgnoreTrials sets how many leading trials orient the subject without
// updating the posterior. Zero disables the warm-up entirely, so every
// presented trial counts; simulations and offline reanalysis want that,
// live experiments keep the default of one.
func WithIgnoreTrials(n int) Option {
	return func(cfg *Config) {
		if n >= 0 {
			cfg.IgnoreTrials = n
		}
	}
}

// WithStopRule sets the minimum counted trials, the counted-trial ceiling,
// and the posterior-SD convergence target.
func WithStopRule(minTrials, maxTrials int, targetSD float64) Option {
	return func(cfg *Config) {
		if minTrials > 0 {
			cfg.MinTrials = minTrials
		}

		if maxTrials > 0 {
			cfg.MaxTrials = maxTrials
		}

		if targetSD > 0 {
			cfg.TargetSD = targetSD
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
