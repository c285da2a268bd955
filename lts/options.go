package lts

// Config holds the tunable parameters of the FAST-LTS search.
type Config struct {
	// Trials is the number of random elemental-subset starts in the
	// coarse search phase.
	Trials int
	// Seed is the base pseudo-random seed. Trial t uses the stream
	// seeded with Seed+t, so results do not depend on Workers.
	Seed int64
	// Workers is the number of goroutines running coarse trials.
	Workers int
	// CoarseCSteps caps the concentration steps per coarse trial.
	CoarseCSteps int
	// FinalCSteps caps the concentration steps when refining pooled
	// candidates. It is shortened automatically when n*p is large.
	FinalCSteps int
	// SubsetRetries bounds the redraws of a singular elemental subset
	// within one trial before Solve fails with ErrSingularSubset.
	SubsetRetries int
	// ScaleTol is the threshold below which the raw scale estimate is
	// treated as an exact fit.
	ScaleTol float64
	// CoverageQuantile is the standard-normal probability defining the
	// inlier cutoff of the first reweighting pass.
	CoverageQuantile float64
	// FinalCutoff is the standardized-residual magnitude below which an
	// observation counts as a final inlier.
	FinalCutoff float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the parameters of the reference algorithm,
// tuned for arrays of up to about a hundred sensors.
func DefaultConfig() Config {
	return Config{
		Trials:           500,
		Seed:             0,
		Workers:          1,
		CoarseCSteps:     4,
		FinalCSteps:      100,
		SubsetRetries:    500,
		ScaleTol:         1e-7,
		CoverageQuantile: 0.9875,
		FinalCutoff:      2.5,
	}
}

// WithTrials sets the number of coarse random starts.
func WithTrials(trials int) Option {
	return func(cfg *Config) {
		if trials > 0 {
			cfg.Trials = trials
		}
	}
}

// WithSeed sets the base pseudo-random seed.
func WithSeed(seed int64) Option {
	return func(cfg *Config) {
		cfg.Seed = seed
	}
}

// WithWorkers sets the number of goroutines used for the coarse search.
func WithWorkers(workers int) Option {
	return func(cfg *Config) {
		if workers > 0 {
			cfg.Workers = workers
		}
	}
}

// WithCoverageQuantile sets the standard-normal probability of the
// first reweighting cutoff.
func WithCoverageQuantile(q float64) Option {
	return func(cfg *Config) {
		if q > 0.5 && q < 1 {
			cfg.CoverageQuantile = q
		}
	}
}

// applyOptions applies zero or more options to the default config.
func applyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
