package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/astpanel/isosel/internal/dataset"
	"github.com/astpanel/isosel/internal/reporting"
	"github.com/astpanel/isosel/internal/spread"
)

type spreadOptions struct {
	chosenPath  string
	windowsPath string
	data        string
	format      string
}

func newSpreadCommand() *cobra.Command {
	opts := &spreadOptions{}
	cmd := &cobra.Command{
		Use:   "spread",
		Short: "Score how evenly a chosen panel covers each MIC range",
		Long: `Read a chosen isolate list back and score, per antibiotic, how evenly the
MICs of the chosen isolates cover the doubling-dilution series inside the
antibiotic's window. Gaps of two or more dilutions and empty window ends are
penalized; lower is better. The panel score is the mean over antibiotics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSpread(cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.chosenPath, "chosen", chosenListFile, "Chosen isolate list")
	f.StringVar(&opts.windowsPath, "windows", "abx_ranges.json", "Antibiotic window table")
	f.StringVar(&opts.data, "data", "", "Regional table as REGION=path")
	f.StringVarP(&opts.format, "format", "f", "text", "Output format: text or json")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func runSpread(w io.Writer, opts *spreadOptions) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unsupported format %q: must be text or json", opts.format)
	}

	src, err := dataset.ParseSource(opts.data)
	if err != nil {
		return err
	}
	table, err := dataset.Load(src)
	if err != nil {
		return err
	}
	chosen, err := reporting.ReadChosenFile(opts.chosenPath)
	if err != nil {
		return err
	}
	windows, err := spread.LoadWindows(opts.windowsPath)
	if err != nil {
		return err
	}

	report, err := spread.Panel(table, chosen, windows)
	if err != nil {
		return err
	}

	if opts.format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return printSpread(w, report)
}

func printSpread(w io.Writer, r *spread.Report) error {
	col := 0
	for _, a := range r.Antibiotics {
		col = max(col, runewidth.StringWidth(a.Name))
	}

	var b strings.Builder
	for _, a := range r.Antibiotics {
		b.WriteString(padRight(a.Name, col))
		b.WriteString("  ")
		for _, m := range a.Grid {
			b.WriteString(markGlyph(m))
		}
		fmt.Fprintf(&b, "  %.1f\n", a.Score)
	}
	fmt.Fprintf(&b, "\nPanel spread score: %.2f\n", r.Score)

	_, err := io.WriteString(w, b.String())
	return err
}

func markGlyph(m spread.Mark) string {
	switch m {
	case spread.Masked:
		return "·"
	case spread.Filled:
		return "■"
	}
	return "□"
}
