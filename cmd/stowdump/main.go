// Command stowdump builds a scene headlessly, steps it, and prints where every
// contained item is placed.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		verbose bool
		opts    dumpOptions
	)

	root := &cobra.Command{
		Use:          "stowdump [scene]",
		Short:        "Print contained-item placements for a scene",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
				ReportTimestamp: true,
				TimeFormat:      "15:04:05.00",
				Level:           level,
			})

			opts.Scene = "demo"
			if len(args) == 1 {
				opts.Scene = args[0]
			}
			return dump(cmd.Context(), cmd.OutOrStdout(), opts, logger)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.Flags().IntVarP(&opts.Frames, "frames", "n", 60, "physics frames to simulate before dumping")
	root.Flags().BoolVarP(&opts.All, "all", "a", false, "include items inside hidden containers")

	root.AddCommand(newScenesCommand())
	return root
}

func newScenesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "List embedded scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listScenes(cmd.OutOrStdout())
		},
	}
}
