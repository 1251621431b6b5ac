package ioformat

import "github.com/wrede/gbmot/detection"

// ParseOptions configures ParseDetections.
type ParseOptions struct {
	// Delimiter separates CSV fields. Zero value defaults to ';'.
	Delimiter rune

	// Header gives the column names explicitly, for input that carries no
	// header row of its own. When nil, the first non-empty line is consumed
	// as the header.
	Header []string

	Format detection.Kind

	ImageWidth, ImageHeight float64

	TemporalWeight float64
	SpatialWeight  float64
	AngularWeight  float64

	// DisableAngularScoreRemap skips the 0.5+0.5*score remap normally applied
	// to Angular detections, for callers whose score source is already a
	// calibrated probability.
	DisableAngularScoreRemap bool
}

func (o ParseOptions) delimiter() rune {
	if o.Delimiter == 0 {
		return ';'
	}

	return o.Delimiter
}
