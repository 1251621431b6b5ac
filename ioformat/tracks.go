package ioformat

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/wrede/gbmot/tracklet"
)

// TrackWriter wraps a csv.Writer with the track-output row format: one row
// per frame between the minimum first frame and maximum last frame across
// all tracks, two cells ("x;y" or blank) per track.
type TrackWriter struct {
	w *csv.Writer
}

// NewTrackWriter returns a TrackWriter that writes to w using delim as the
// field separator (0 defaults to ';').
func NewTrackWriter(w io.Writer, delim rune) *TrackWriter {
	cw := csv.NewWriter(w)
	if delim == 0 {
		delim = ';'
	}
	cw.Comma = delim

	return &TrackWriter{w: cw}
}

// WriteTracks emits every frame of every track as one row and flushes.
func (tw *TrackWriter) WriteTracks(tracks []*tracklet.Tracklet) error {
	if len(tracks) == 0 {
		tw.w.Flush()

		return tw.w.Error()
	}

	minFrame, maxFrame := -1, -1
	for _, t := range tracks {
		if minFrame == -1 || t.FirstFrame() < minFrame {
			minFrame = t.FirstFrame()
		}
		if maxFrame == -1 || t.LastFrame() > maxFrame {
			maxFrame = t.LastFrame()
		}
	}

	for frame := minFrame; frame <= maxFrame; frame++ {
		row := make([]string, 0, len(tracks)*2)
		for _, t := range tracks {
			det, ok := t.AtFrame(frame)
			if !ok {
				row = append(row, "", "")

				continue
			}
			row = append(row, fmt.Sprintf("%g", det.CenterX()), fmt.Sprintf("%g", det.CenterY()))
		}
		if err := tw.w.Write(row); err != nil {
			return err
		}
	}

	tw.w.Flush()

	return tw.w.Error()
}
