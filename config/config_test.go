package config_test

import (
	"testing"

	"github.com/wrede/gbmot/config"
	"github.com/stretchr/testify/require"
)

func TestNStageConfigMismatchedLengths(t *testing.T) {
	_, err := config.NewNStageConfig(config.WithStages(
		[]int{1, 2},
		[]float64{1.0},
		[]int{10, 10},
	))
	require.ErrorIs(t, err, config.ErrMismatchedStageLengths)
}

func TestNStageConfigDefaultIsValid(t *testing.T) {
	c, err := config.NewNStageConfig()
	require.NoError(t, err)
	require.Equal(t, 1, c.Iterations())
}

func TestBerclazConfigValidation(t *testing.T) {
	_, err := config.NewBerclazConfig(config.WithResolution(0, 10))
	require.ErrorIs(t, err, config.ErrBadResolution)

	c, err := config.NewBerclazConfig(config.WithVicinitySize(2), config.WithBatchSize(50))
	require.NoError(t, err)
	require.Equal(t, 2, c.VicinitySize)
	require.Equal(t, 50, c.BatchSize)
}
