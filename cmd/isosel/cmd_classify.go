package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/astpanel/isosel/internal/models"
	"github.com/astpanel/isosel/internal/susceptibility"
)

type classifyOptions struct {
	antibiotic        string
	fastidious        bool
	kit               string
	rangesPath        string
	abbreviationsPath string
	clindamycin       string
	erythromycin      string
	format            string
}

func newClassifyCommand() *cobra.Command {
	opts := &classifyOptions{}
	cmd := &cobra.Command{
		Use:   "classify <cell>",
		Short: "Classify a single report cell",
		Long: `Classify one raw report cell such as "R >16" or "S <=0.5/9.5" the way the
select command does. Without --kit the value is not clamped to a reportable
range. D-test cells need the clindamycin and erythromycin categories of the
same isolate.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd.OutOrStdout(), args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.antibiotic, "antibiotic", "a", "", "Antibiotic column the cell belongs to")
	f.BoolVar(&opts.fastidious, "fastidious", false, "Use the fastidious reportable range")
	f.StringVar(&opts.kit, "kit", "", "Kit software version for range lookup")
	f.StringVar(&opts.rangesPath, "ranges", defaultRangesFile, "Reportable ranges table")
	f.StringVar(&opts.abbreviationsPath, "abbreviations", defaultAbbreviationsFile, "Antibiotic abbreviation table")
	f.StringVar(&opts.clindamycin, "clindamycin", "", "Clindamycin category, for D-test cells")
	f.StringVar(&opts.erythromycin, "erythromycin", "", "Erythromycin category, for D-test cells")
	f.StringVarP(&opts.format, "format", "f", "text", "Output format: text or json")
	_ = cmd.MarkFlagRequired("antibiotic")

	return cmd
}

func runClassify(w io.Writer, cell string, opts *classifyOptions) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unsupported format %q: must be text or json", opts.format)
	}

	classifier := &susceptibility.Classifier{}
	if opts.kit != "" {
		c, err := loadClassifier(opts.kit, opts.rangesPath, opts.abbreviationsPath)
		if err != nil {
			return err
		}
		classifier = c
	}

	comp := susceptibility.Companions{Clindamycin: opts.clindamycin, Erythromycin: opts.erythromycin}
	res, err := classifier.Classify(cell, opts.antibiotic, opts.fastidious, comp)
	if err != nil {
		return fmt.Errorf("classifying %q: %w", cell, err)
	}

	if opts.format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return printResult(w, res)
}

func printResult(w io.Writer, r models.Result) error {
	if r.IsAbsent() {
		_, err := fmt.Fprintln(w, "absent")
		return err
	}
	rows := [][2]string{
		{"category", r.Category},
		{"sign", string(r.Sign)},
		{"value", models.FormatValue(r.Value)},
		{"text", r.Text},
		{"tag", string(r.Tag)},
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%s %s\n", padRight(row[0], 9), row[1]); err != nil {
			return err
		}
	}
	return nil
}
