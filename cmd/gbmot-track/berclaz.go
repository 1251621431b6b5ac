package main

import (
	"github.com/wrede/gbmot/berclaz"
	"github.com/wrede/gbmot/config"
	"github.com/spf13/cobra"
)

func newBerclazCmd() *cobra.Command {
	common := &commonFlags{}
	var hRes, vRes, vicinity, batchSize, maxTracks int
	var clampQuantile bool

	cmd := &cobra.Command{
		Use:   "berclaz",
		Short: "Track with the Berclaz spatio-temporal grid tracker",
		RunE: func(cmd *cobra.Command, args []string) error {
			sink := common.sink()

			seq, err := common.loadSequence(sink)
			if err != nil {
				return err
			}

			cfg, err := config.NewBerclazConfig(
				config.WithResolution(hRes, vRes),
				config.WithVicinitySize(vicinity),
				config.WithBatchSize(batchSize),
				config.WithMaxTrackCount(maxTracks),
				config.WithClampScoreQuantile(clampQuantile),
			)
			if err != nil {
				return err
			}

			tracks, err := berclaz.New(cfg, sink).Run(seq)
			if err != nil {
				return err
			}

			return common.writeTracks(tracks)
		},
	}

	addCommonFlags(cmd, common)
	cmd.Flags().IntVar(&hRes, "horizontal-resolution", 10, "number of grid cells along the image width")
	cmd.Flags().IntVar(&vRes, "vertical-resolution", 10, "number of grid cells along the image height")
	cmd.Flags().IntVar(&vicinity, "vicinity-size", 1, "neighboring cell radius wired between consecutive frames")
	cmd.Flags().IntVar(&maxTracks, "max-track-count", 10, "max tracks extracted per batch")
	cmd.Flags().IntVar(&batchSize, "batch-size", 100, "number of frames processed per KSP call")
	cmd.Flags().BoolVar(&clampQuantile, "clamp-score-quantile", false, "rewrite each batch's grid scores to their empirical quantile rank after convolution")

	return cmd
}
