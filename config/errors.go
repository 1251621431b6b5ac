package config

import "errors"

var (
	// ErrNoStages indicates an NStageConfig was built with empty parameter
	// vectors (zero stages to run).
	ErrNoStages = errors.New("config: at least one stage is required")

	// ErrMismatchedStageLengths indicates MaxFrameSkip, PenaltyValue and
	// MaxTrackletCount vectors disagree in length.
	ErrMismatchedStageLengths = errors.New("config: stage parameter vectors must have equal length")

	// ErrBadResolution indicates a non-positive grid resolution was supplied.
	ErrBadResolution = errors.New("config: grid resolution must be positive")

	// ErrBadVicinity indicates a negative vicinity size was supplied.
	ErrBadVicinity = errors.New("config: vicinity size must be non-negative")

	// ErrBadBatchSize indicates a non-positive batch size was supplied.
	ErrBadBatchSize = errors.New("config: batch size must be positive")

	// ErrBadTrackCount indicates a non-positive max track count was supplied.
	ErrBadTrackCount = errors.New("config: max track count must be positive")
)
