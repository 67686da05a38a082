package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "isosel",
		Short: "isosel - representative isolate panel selection",
		Long: `isosel selects a representative panel of bacterial isolates from regional
antimicrobial susceptibility test datasets.

It classifies every report cell against the reportable ranges of the kit,
merges the regional results, ranks isolates by how interesting their results
are and fills per-species, per-antibiotic and per-group quotas in market
priority order.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newSelectCommand())
	cmd.AddCommand(newClassifyCommand())
	cmd.AddCommand(newSpreadCommand())
	cmd.AddCommand(newValidateCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
