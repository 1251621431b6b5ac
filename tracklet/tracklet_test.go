package tracklet_test

import (
	"testing"

	"github.com/wrede/gbmot/detection"
	"github.com/wrede/gbmot/tracklet"
	"github.com/stretchr/testify/require"
)

func mustPoint(t *testing.T, frame int, x, y float64) detection.Detection {
	t.Helper()
	d, err := detection.NewPoint(frame, x, y, 1, 1, 1)
	require.NoError(t, err)

	return d
}

func TestAddKeepsAscendingOrder(t *testing.T) {
	tr := tracklet.New()
	tr.Add(mustPoint(t, 3, 0, 0), false)
	tr.Add(mustPoint(t, 1, 0, 0), false)
	tr.Add(mustPoint(t, 2, 0, 0), false)

	dets, err := tr.Detections()
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, []int{dets[0].FrameIndex, dets[1].FrameIndex, dets[2].FrameIndex})
}

func TestAddOverwrite(t *testing.T) {
	tr := tracklet.New()
	tr.Add(mustPoint(t, 1, 0, 0), false)
	tr.Add(mustPoint(t, 1, 9, 9), true)

	dets, err := tr.Detections()
	require.NoError(t, err)
	require.Len(t, dets, 1)
	require.Equal(t, 9.0, dets[0].X)
}

func TestAddNoOverwriteDrops(t *testing.T) {
	tr := tracklet.New()
	tr.Add(mustPoint(t, 1, 0, 0), false)
	tr.Add(mustPoint(t, 1, 9, 9), false)

	dets, err := tr.Detections()
	require.NoError(t, err)
	require.Len(t, dets, 1)
	require.Equal(t, 0.0, dets[0].X)
}

func TestInterpolateMissingFrames(t *testing.T) {
	tr := tracklet.New()
	tr.Add(mustPoint(t, 0, 0, 0), false)
	tr.Add(mustPoint(t, 4, 4, 0), false)

	require.NoError(t, tr.InterpolateMissingFrames())

	dets, err := tr.Detections()
	require.NoError(t, err)
	require.Len(t, dets, 5)
	for i, d := range dets {
		require.Equal(t, i, d.FrameIndex)
		require.InDelta(t, float64(i), d.X, 1e-9)
	}
}

func TestInterpolateMissingFramesIdempotent(t *testing.T) {
	tr := tracklet.New()
	tr.Add(mustPoint(t, 0, 0, 0), false)
	tr.Add(mustPoint(t, 4, 4, 0), false)
	require.NoError(t, tr.InterpolateMissingFrames())

	dets1, err := tr.Detections()
	require.NoError(t, err)

	require.NoError(t, tr.InterpolateMissingFrames())
	dets2, err := tr.Detections()
	require.NoError(t, err)

	require.Equal(t, dets1, dets2)
}

func TestFlattenNested(t *testing.T) {
	inner1 := tracklet.New()
	inner1.Add(mustPoint(t, 0, 0, 0), false)
	inner1.Add(mustPoint(t, 1, 1, 0), false)

	inner2 := tracklet.New()
	inner2.Add(mustPoint(t, 2, 2, 0), false)
	inner2.Add(mustPoint(t, 3, 3, 0), false)

	outer := tracklet.New()
	outer.AddTracklet(inner1, false)
	outer.AddTracklet(inner2, false)

	require.NoError(t, outer.Flatten())

	dets, err := outer.Detections()
	require.NoError(t, err)
	require.Len(t, dets, 4)
	for i, d := range dets {
		require.Equal(t, i, d.FrameIndex)
	}
}

func TestCompareUsesEndpoints(t *testing.T) {
	a := tracklet.New()
	a.Add(mustPoint(t, 0, 0, 0), false)
	a.Add(mustPoint(t, 1, 1, 0), false)

	b := tracklet.New()
	b.Add(mustPoint(t, 2, 2, 0), false)

	cost, err := a.Compare(b)
	require.NoError(t, err)
	require.Greater(t, cost, 0.0)
}

func TestCombine(t *testing.T) {
	a := tracklet.New()
	a.Add(mustPoint(t, 0, 0, 0), false)
	b := tracklet.New()
	b.Add(mustPoint(t, 1, 1, 0), false)

	require.NoError(t, a.Combine(b))
	dets, err := a.Detections()
	require.NoError(t, err)
	require.Len(t, dets, 2)
}

func TestAtFrame(t *testing.T) {
	tr := tracklet.New()
	tr.Add(mustPoint(t, 0, 0, 0), false)
	tr.Add(mustPoint(t, 5, 5, 0), false)

	d, ok := tr.AtFrame(5)
	require.True(t, ok)
	require.Equal(t, 5.0, d.X)

	_, ok = tr.AtFrame(3)
	require.False(t, ok)
}
