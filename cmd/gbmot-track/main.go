package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gbmot-track",
		Short: "Offline multi-object tracking over a detection CSV",
	}
	root.AddCommand(newNStageCmd())
	root.AddCommand(newBerclazCmd())

	return root
}
