package nstage_test

import (
	"testing"

	"github.com/wrede/gbmot/config"
	"github.com/wrede/gbmot/detection"
	"github.com/wrede/gbmot/nstage"
	"github.com/wrede/gbmot/sequence"
	"github.com/stretchr/testify/require"
)

func mustPoint(t *testing.T, frame int, x, y float64) detection.Detection {
	t.Helper()
	d, err := detection.NewPoint(frame, x, y, 1, 1, 1)
	require.NoError(t, err)

	return d
}

// Scenario D: a linear chain of 5 detections at the same position across
// frames 0..4; the first extraction should consume the whole chain, leaving
// nothing for the second.
//
// penalty must exceed 1 for this to hold: every node has a direct
// source->node->sink edge pair summing to 6*penalty regardless of which
// node, while the full 5-node chain costs 2*penalty+4 (four Δframe=1 links
// plus the entry/exit edges). The chain only undercuts the single-node
// shortcut once 2*penalty+4 < 6*penalty, i.e. penalty > 1; at penalty=0 the
// single-node shortcut is strictly cheaper and this scenario does not hold.
func TestReusePreventionScenarioD(t *testing.T) {
	seq := sequence.New()
	for f := 0; f < 5; f++ {
		seq.Append(mustPoint(t, f, 0, 0))
	}

	cfg, err := config.NewNStageConfig(config.WithStages(
		[]int{1}, []float64{2}, []int{2},
	))
	require.NoError(t, err)

	d := nstage.New(cfg, nil)
	tracks, err := d.Run(seq)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	require.Equal(t, 0, tracks[0].FirstFrame())
	require.Equal(t, 4, tracks[0].LastFrame())
	require.Equal(t, 5, tracks[0].Len())
}

func TestFrameIndicesStrictlyIncreasing(t *testing.T) {
	seq := sequence.New()
	seq.Append(mustPoint(t, 0, 0, 0))
	seq.Append(mustPoint(t, 1, 0, 0))
	seq.Append(mustPoint(t, 3, 5, 5))

	cfg, err := config.NewNStageConfig(config.WithStages(
		[]int{2}, []float64{1}, []int{5},
	))
	require.NoError(t, err)

	d := nstage.New(cfg, nil)
	tracks, err := d.Run(seq)
	require.NoError(t, err)

	for _, tr := range tracks {
		dets, err := tr.Detections()
		require.NoError(t, err)
		for i := 1; i < len(dets); i++ {
			require.Less(t, dets[i-1].FrameIndex, dets[i].FrameIndex)
		}
	}
}
