package sequence_test

import (
	"testing"

	"github.com/wrede/gbmot/detection"
	"github.com/wrede/gbmot/sequence"
	"github.com/stretchr/testify/require"
)

func TestAppendAutoExtends(t *testing.T) {
	s := sequence.New()
	d, err := detection.NewPoint(3, 0, 0, 1, 1, 1)
	require.NoError(t, err)
	s.Append(d)

	require.Equal(t, 4, s.FrameCount())
	require.Empty(t, s.At(0))
	require.Len(t, s.At(3), 1)
}

func TestRangeClamped(t *testing.T) {
	s := sequence.New()
	for f := 0; f < 5; f++ {
		d, err := detection.NewPoint(f, 0, 0, 1, 1, 1)
		require.NoError(t, err)
		s.Append(d)
	}

	r := s.Range(2, 100)
	require.Len(t, r, 3)
}
