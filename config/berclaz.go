package config

// BerclazOption configures a BerclazConfig.
type BerclazOption func(*BerclazConfig)

// BerclazConfig collects the grid resolution, vicinity, batching, and track
// count parameters into one struct so the driver takes a single config value.
type BerclazConfig struct {
	HorizontalResolution int
	VerticalResolution   int
	VicinitySize         int
	BatchSize            int
	MaxTrackCount        int
	ClampScoreQuantile   bool
}

// DefaultBerclazConfig returns a small single-batch configuration.
func DefaultBerclazConfig() BerclazConfig {
	return BerclazConfig{
		HorizontalResolution: 10,
		VerticalResolution:   10,
		VicinitySize:         1,
		BatchSize:            100,
		MaxTrackCount:        10,
	}
}

// WithResolution sets the grid's horizontal and vertical cell counts.
func WithResolution(h, v int) BerclazOption {
	return func(c *BerclazConfig) {
		c.HorizontalResolution = h
		c.VerticalResolution = v
	}
}

// WithVicinitySize sets the number of neighboring cells a detection may move
// within one frame.
func WithVicinitySize(v int) BerclazOption {
	return func(c *BerclazConfig) { c.VicinitySize = v }
}

// WithBatchSize sets the maximum number of frames processed per KSP call.
func WithBatchSize(n int) BerclazOption {
	return func(c *BerclazConfig) { c.BatchSize = n }
}

// WithMaxTrackCount sets the maximum number of tracks extracted per batch.
func WithMaxTrackCount(n int) BerclazOption {
	return func(c *BerclazConfig) { c.MaxTrackCount = n }
}

// WithClampScoreQuantile enables rewriting each batch's grid scores to their
// empirical quantile rank after the grid has been convolved, useful when
// batches come from
// detectors with wildly different score scales.
func WithClampScoreQuantile(enabled bool) BerclazOption {
	return func(c *BerclazConfig) { c.ClampScoreQuantile = enabled }
}

// NewBerclazConfig builds a BerclazConfig from options, validating the
// result.
func NewBerclazConfig(opts ...BerclazOption) (BerclazConfig, error) {
	c := DefaultBerclazConfig()
	for _, opt := range opts {
		opt(&c)
	}

	return c, c.Validate()
}

// Validate checks that every field is within its admissible range.
func (c BerclazConfig) Validate() error {
	if c.HorizontalResolution <= 0 || c.VerticalResolution <= 0 {
		return ErrBadResolution
	}
	if c.VicinitySize < 0 {
		return ErrBadVicinity
	}
	if c.BatchSize <= 0 {
		return ErrBadBatchSize
	}
	if c.MaxTrackCount <= 0 {
		return ErrBadTrackCount
	}

	return nil
}
