package main

import (
	"fmt"
	"os"

	"github.com/wrede/gbmot/detection"
	"github.com/wrede/gbmot/diag"
	"github.com/wrede/gbmot/ioformat"
	"github.com/wrede/gbmot/sequence"
	"github.com/wrede/gbmot/tracklet"
	"github.com/spf13/cobra"
)

// commonFlags holds the options shared by every tracking algorithm
// subcommand: input/output file handling and detection parsing.
type commonFlags struct {
	inputFile      string
	outputPath     string
	inputHeader    []string
	inputFormat    string
	inputDelimiter string
	outputDelim    string
	imageWidth     float64
	imageHeight    float64
	temporalWeight float64
	spatialWeight  float64
	angularWeight  float64
	info           bool
	debug          bool
}

func addCommonFlags(cmd *cobra.Command, f *commonFlags) {
	flags := cmd.Flags()
	flags.StringVar(&f.inputFile, "input-file", "", "path to the input detection CSV (required)")
	flags.StringVar(&f.outputPath, "output-path", "", "path to write the output track CSV (required)")
	flags.StringSliceVar(&f.inputHeader, "input-header", nil, "comma-separated column names, for input with no header row")
	flags.StringVar(&f.inputFormat, "input-format", "2D", "detection kind: 2D, Box, or Angular")
	flags.StringVar(&f.inputDelimiter, "input-delimiter", ";", "input CSV field delimiter")
	flags.StringVar(&f.outputDelim, "output-delimiter", ";", "output CSV field delimiter")
	flags.Float64Var(&f.imageWidth, "image-width", 1, "image width in pixels, for position normalization")
	flags.Float64Var(&f.imageHeight, "image-height", 1, "image height in pixels, for position normalization")
	flags.Float64Var(&f.temporalWeight, "temporal-weight", 1, "weight applied to frame-distance in the comparison cost")
	flags.Float64Var(&f.spatialWeight, "spatial-weight", 1, "weight applied to spatial distance in the comparison cost")
	flags.Float64Var(&f.angularWeight, "angular-weight", 1, "weight applied to angular distance (Angular format only)")
	flags.BoolVar(&f.info, "info", false, "log info-level diagnostics")
	flags.BoolVar(&f.debug, "debug", false, "log debug-level diagnostics")
}

func (f *commonFlags) sink() diag.Sink {
	switch {
	case f.debug:
		return diag.NewStdSink(diag.LevelDebug)
	case f.info:
		return diag.NewStdSink(diag.LevelInfo)
	default:
		return diag.NewStdSink(diag.LevelError)
	}
}

func (f *commonFlags) detectionKind() (detection.Kind, error) {
	switch f.inputFormat {
	case "2D":
		return detection.Point, nil
	case "Box":
		return detection.Box, nil
	case "Angular":
		return detection.Angular, nil
	default:
		return 0, fmt.Errorf("gbmot-track: unrecognized input-format %q", f.inputFormat)
	}
}

func (f *commonFlags) loadSequence(sink diag.Sink) (*sequence.DetectionSequence, error) {
	if f.inputFile == "" {
		return nil, fmt.Errorf("gbmot-track: --input-file is required")
	}
	kind, err := f.detectionKind()
	if err != nil {
		return nil, err
	}

	file, err := os.Open(f.inputFile)
	if err != nil {
		return nil, fmt.Errorf("gbmot-track: %w", err)
	}
	defer file.Close()

	delim := []rune(f.inputDelimiter)
	if len(delim) != 1 {
		return nil, fmt.Errorf("gbmot-track: --input-delimiter must be a single character")
	}

	return ioformat.ParseDetections(file, ioformat.ParseOptions{
		Delimiter:      delim[0],
		Header:         f.inputHeader,
		Format:         kind,
		ImageWidth:     f.imageWidth,
		ImageHeight:    f.imageHeight,
		TemporalWeight: f.temporalWeight,
		SpatialWeight:  f.spatialWeight,
		AngularWeight:  f.angularWeight,
	}, sink)
}

func (f *commonFlags) writeTracks(tracks []*tracklet.Tracklet) error {
	if f.outputPath == "" {
		return fmt.Errorf("gbmot-track: --output-path is required")
	}
	delim := []rune(f.outputDelim)
	if len(delim) != 1 {
		return fmt.Errorf("gbmot-track: --output-delimiter must be a single character")
	}

	file, err := os.Create(f.outputPath)
	if err != nil {
		return fmt.Errorf("gbmot-track: %w", err)
	}
	defer file.Close()

	return ioformat.NewTrackWriter(file, delim[0]).WriteTracks(tracks)
}
