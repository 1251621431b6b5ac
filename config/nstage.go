// Package config holds the functional-options parameter structs consumed by
// the nstage and berclaz drivers: a default constructor, Option funcs that
// assign fields, and a final Validate pass, run by the New* constructors,
// that reports invalid or inconsistent parameters as an error.
package config

// NStageOption configures an NStageConfig.
type NStageOption func(*NStageConfig)

// NStageConfig holds three parallel per-stage vectors. The number of stages
// run is len(MaxFrameSkip); all three vectors must agree in length, which
// Validate enforces rather than silently truncating to the shortest one.
type NStageConfig struct {
	MaxFrameSkip     []int
	PenaltyValue     []float64
	MaxTrackletCount []int
}

// DefaultNStageConfig returns a single-stage configuration with permissive
// defaults, meant to be overridden via options or direct field assignment.
func DefaultNStageConfig() NStageConfig {
	return NStageConfig{
		MaxFrameSkip:     []int{1},
		PenaltyValue:     []float64{1.0},
		MaxTrackletCount: []int{100},
	}
}

// WithStages replaces the three parallel stage vectors at once.
func WithStages(maxFrameSkip []int, penaltyValue []float64, maxTrackletCount []int) NStageOption {
	return func(c *NStageConfig) {
		c.MaxFrameSkip = maxFrameSkip
		c.PenaltyValue = penaltyValue
		c.MaxTrackletCount = maxTrackletCount
	}
}

// NewNStageConfig builds an NStageConfig from options, validating the
// result.
func NewNStageConfig(opts ...NStageOption) (NStageConfig, error) {
	c := DefaultNStageConfig()
	for _, opt := range opts {
		opt(&c)
	}

	return c, c.Validate()
}

// Iterations returns the number of stages configured.
func (c NStageConfig) Iterations() int { return len(c.MaxFrameSkip) }

// Validate checks internal consistency of the stage vectors.
func (c NStageConfig) Validate() error {
	if len(c.MaxFrameSkip) == 0 {
		return ErrNoStages
	}
	if len(c.PenaltyValue) != len(c.MaxFrameSkip) || len(c.MaxTrackletCount) != len(c.MaxFrameSkip) {
		return ErrMismatchedStageLengths
	}

	return nil
}
