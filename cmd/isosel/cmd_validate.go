package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/astpanel/isosel/internal/projectconfig"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config]",
		Short: "Check a selection configuration",
		Long: `Load a selection configuration (native isosel.yaml or a legacy settings
document), apply defaults and report every problem found. Without an argument
the nearest isosel.yaml is checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runValidate(cmd.OutOrStdout(), path)
		},
	}
}

func runValidate(w io.Writer, path string) error {
	path, err := resolveConfigPath(path)
	if err != nil {
		return err
	}

	cfg, err := projectconfig.Load(path)
	var verr *projectconfig.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintf(w, "%s: %d problem(s)\n", path, len(verr.Problems)) //nolint:errcheck
		for _, p := range verr.Problems {
			fmt.Fprintf(w, "  - %s\n", p) //nolint:errcheck
		}
		return fmt.Errorf("%s is not a valid configuration", path)
	}
	if err != nil {
		return err
	}

	species := 0
	for _, g := range cfg.Species.Groups {
		species += len(g.Species)
	}
	_, err = fmt.Fprintf(w, "%s: ok (%d datasets, %d groups, %d species targets, bugdrug fill %s)\n",
		path, len(cfg.Datasets), len(cfg.Species.Groups), species, onOff(cfg.Bugdrug.Active()))
	return err
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
