package main

import (
	"github.com/wrede/gbmot/config"
	"github.com/wrede/gbmot/nstage"
	"github.com/spf13/cobra"
)

func newNStageCmd() *cobra.Command {
	common := &commonFlags{}
	var maxFrameSkip []int
	var maxTrackletCount []int
	var penaltyValue []float64

	cmd := &cobra.Command{
		Use:   "n-stage",
		Short: "Track with the N-Stage per-stage shortest-path tracker",
		RunE: func(cmd *cobra.Command, args []string) error {
			sink := common.sink()

			seq, err := common.loadSequence(sink)
			if err != nil {
				return err
			}

			cfg, err := config.NewNStageConfig(config.WithStages(maxFrameSkip, penaltyValue, maxTrackletCount))
			if err != nil {
				return err
			}

			tracks, err := nstage.New(cfg, sink).Run(seq)
			if err != nil {
				return err
			}

			return common.writeTracks(tracks)
		},
	}

	addCommonFlags(cmd, common)
	cmd.Flags().IntSliceVar(&maxFrameSkip, "max-frame-skip", []int{1}, "comma-separated max frame gap per stage")
	cmd.Flags().IntSliceVar(&maxTrackletCount, "max-tracklet-count", []int{100}, "comma-separated max tracklets extracted per stage")
	cmd.Flags().Float64SliceVar(&penaltyValue, "penalty-value", []float64{1.0}, "comma-separated per-stage edge penalty")

	return cmd
}
