package ioformat

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wrede/gbmot/detection"
	"github.com/wrede/gbmot/tracklet"
	"github.com/stretchr/testify/require"
)

func TestParseDetectionsPointNormalizesScoreAndPosition(t *testing.T) {
	csvData := "frame;x;y;score\n" +
		"0;10;20;0\n" +
		"1;30;40;10\n"

	seq, err := ParseDetections(strings.NewReader(csvData), ParseOptions{
		Format:      detection.Point,
		ImageWidth:  100,
		ImageHeight: 100,
	}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, seq.FrameCount())

	d0 := seq.At(0)[0]
	require.InDelta(t, 0.1, d0.X, 1e-9)
	require.InDelta(t, 0.2, d0.Y, 1e-9)
	require.InDelta(t, 0, d0.DetectionScore, 1e-9)

	d1 := seq.At(1)[0]
	require.InDelta(t, 1.0, d1.DetectionScore, 1e-9)
}

func TestParseDetectionsMissingColumnErrors(t *testing.T) {
	csvData := "frame;x;score\n0;1;1\n"
	_, err := ParseDetections(strings.NewReader(csvData), ParseOptions{Format: detection.Point, ImageWidth: 1, ImageHeight: 1}, nil)
	require.ErrorIs(t, err, ErrMissingColumn)
}

func TestParseDetectionsBadNumericSubstitutesZero(t *testing.T) {
	csvData := "frame;x;y;score\n0;oops;20;5\n"
	seq, err := ParseDetections(strings.NewReader(csvData), ParseOptions{
		Format: detection.Point, ImageWidth: 1, ImageHeight: 1,
	}, nil)
	require.NoError(t, err)
	require.Equal(t, 0.0, seq.At(0)[0].X)
}

func TestParseDetectionsAngularRemapsScore(t *testing.T) {
	csvData := "frame;x;y;score;angle\n0;0;0;0;0\n0;0;0;10;90\n"
	seq, err := ParseDetections(strings.NewReader(csvData), ParseOptions{
		Format: detection.Angular, ImageWidth: 1, ImageHeight: 1,
	}, nil)
	require.NoError(t, err)

	dets := seq.At(0)
	require.InDelta(t, 0.5, dets[0].DetectionScore, 1e-9)
	require.InDelta(t, 1.0, dets[1].DetectionScore, 1e-9)
}

func TestTrackWriterWritesEmptyCellsForMissingFrames(t *testing.T) {
	tr := tracklet.New()
	d0, _ := detection.NewPoint(0, 1, 2, 1, 1, 1)
	d2, _ := detection.NewPoint(2, 3, 4, 1, 1, 1)
	tr.Add(d0, false)
	tr.Add(d2, false)

	var buf bytes.Buffer
	w := NewTrackWriter(&buf, ';')
	require.NoError(t, w.WriteTracks([]*tracklet.Tracklet{tr}))

	out := buf.String()
	require.Equal(t, 3, strings.Count(out, "\n"))
	require.Contains(t, out, "1;2")
	require.Contains(t, out, "3;4")
	require.Contains(t, out, ";\n")
}
