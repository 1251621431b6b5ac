package ioformat

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/wrede/gbmot/detection"
	"github.com/wrede/gbmot/diag"
	"github.com/wrede/gbmot/sequence"
	"gonum.org/v1/gonum/floats"
)

// rawRow holds the parsed-but-not-yet-normalized numeric fields of one input
// row, keyed by the column names ParseDetections recognizes.
type rawRow struct {
	frame         int
	x, y          float64
	score         float64
	width, height float64
	angleDeg      float64
}

// ParseDetections reads a detection CSV from r and returns a DetectionSequence
// of the requested kind. Parse failures on individual numeric fields
// substitute 0, are logged to sink, and do not abort the run; a missing
// required column is a hard ErrMissingColumn.
func ParseDetections(r io.Reader, opts ParseOptions, sink diag.Sink) (*sequence.DetectionSequence, error) {
	cr := csv.NewReader(r)
	cr.Comma = opts.delimiter()
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	header := opts.Header
	if header == nil {
		if len(records) == 0 {
			return nil, ErrEmptyInput
		}
		header = records[0]
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}

	required := []string{"x", "y", "score"}
	switch opts.Format {
	case detection.Box:
		required = append(required, "width", "height")
	case detection.Angular:
		required = append(required, "angle")
	}
	for _, name := range required {
		if _, ok := col[name]; !ok {
			return nil, ErrMissingColumn
		}
	}
	frameCol, hasFrame := col["frame"]

	rows := make([]rawRow, len(records))
	scores := make([]float64, len(records))
	for i, rec := range records {
		rowNum := i + 1

		row := rawRow{}
		if hasFrame {
			row.frame = parseInt(rec, frameCol, rowNum, "frame", sink)
		}
		row.x = parseFloat(rec, col["x"], rowNum, "x", sink)
		row.y = parseFloat(rec, col["y"], rowNum, "y", sink)
		row.score = parseFloat(rec, col["score"], rowNum, "score", sink)
		if opts.Format == detection.Box {
			row.width = parseFloat(rec, col["width"], rowNum, "width", sink)
			row.height = parseFloat(rec, col["height"], rowNum, "height", sink)
		}
		if opts.Format == detection.Angular {
			row.angleDeg = parseFloat(rec, col["angle"], rowNum, "angle", sink)
		}

		rows[i] = row
		scores[i] = row.score
	}

	minScore := floats.Min(scores)
	maxScore := floats.Max(scores)
	scoreRange := maxScore - minScore

	seq := sequence.New()
	for _, row := range rows {
		norm := 0.0
		if scoreRange != 0 {
			norm = (row.score - minScore) / scoreRange
		}

		x := row.x / opts.ImageWidth
		y := row.y / opts.ImageHeight

		var det detection.Detection
		var err error
		switch opts.Format {
		case detection.Box:
			det, err = detection.NewBox(row.frame, x, y, row.width/opts.ImageWidth, row.height/opts.ImageHeight, norm, opts.TemporalWeight, opts.SpatialWeight)
		case detection.Angular:
			angleRad := row.angleDeg * (math.Pi / 180)
			angularScore := norm
			if !opts.DisableAngularScoreRemap {
				angularScore = 0.5 + 0.5*norm
			}
			det, err = detection.NewAngular(row.frame, x, y, angleRad, angularScore, opts.TemporalWeight, opts.SpatialWeight, opts.AngularWeight)
		default:
			det, err = detection.NewPoint(row.frame, x, y, norm, opts.TemporalWeight, opts.SpatialWeight)
		}
		if err != nil {
			diag.Errorf(sink, "dropping row: %v", err)

			continue
		}

		seq.Append(det)
	}

	return seq, nil
}

func parseFloat(rec []string, idx, row int, column string, sink diag.Sink) float64 {
	if idx < 0 || idx >= len(rec) || rec[idx] == "" {
		return 0
	}
	v, err := strconv.ParseFloat(rec[idx], 64)
	if err != nil {
		diag.Errorf(sink, "%v", &ParseError{Row: row, Column: column, Value: rec[idx]})

		return 0
	}

	return v
}

func parseInt(rec []string, idx, row int, column string, sink diag.Sink) int {
	if idx < 0 || idx >= len(rec) || rec[idx] == "" {
		return 0
	}
	v, err := strconv.Atoi(rec[idx])
	if err != nil {
		diag.Errorf(sink, "%v", &ParseError{Row: row, Column: column, Value: rec[idx]})

		return 0
	}
	if v < 0 {
		return 0
	}

	return v
}
