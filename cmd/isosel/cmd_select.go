package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/astpanel/isosel/internal/dataset"
	"github.com/astpanel/isosel/internal/models"
	"github.com/astpanel/isosel/internal/projectconfig"
	"github.com/astpanel/isosel/internal/reporting"
	"github.com/astpanel/isosel/internal/selection"
	"github.com/astpanel/isosel/internal/spinner"
	"github.com/astpanel/isosel/internal/tables"
)

// Output file names written to --out-dir.
const (
	chosenListFile = "Chosen_isolates_list.csv"
	errorLogFile   = "Errors.txt"
)

type selectOptions struct {
	configPath         string
	rangesPath         string
	abbreviationsPath  string
	marketPriorityPath string
	data               []string
	workbook           string
	outDir             string
	rankedOut          string
	junitOut           string
	format             string
	strict             bool
}

func newSelectCommand() *cobra.Command {
	opts := &selectOptions{}
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Select an isolate panel from regional datasets",
		Long: `Select a representative isolate panel.

Regional tables are given either as --data REGION=path (CSV or workbook,
repeatable) or as a single --workbook holding one "matrix <REGION>" sheet per
configured dataset. Lookup tables default to ranges.json, abx_abbr.json and
market_prio.json next to the configuration file.

The chosen isolate list and the quota error log are written to --out-dir.
Quota shortfalls are reported but do not fail the run unless --strict is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSelect(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "Selection configuration (default: nearest isosel.yaml)")
	f.StringVar(&opts.rangesPath, "ranges", "", "Reportable ranges table")
	f.StringVar(&opts.abbreviationsPath, "abbreviations", "", "Antibiotic abbreviation table")
	f.StringVar(&opts.marketPriorityPath, "market-priority", "", "Market priority table")
	f.StringArrayVar(&opts.data, "data", nil, "Regional table as REGION=path (repeatable)")
	f.StringVar(&opts.workbook, "workbook", "", "Workbook with one matrix sheet per configured region")
	f.StringVarP(&opts.outDir, "out-dir", "o", ".", "Directory for the chosen list and error log")
	f.StringVar(&opts.rankedOut, "ranked-out", "", "Write the ranked dataset as JSON (gzip when ending in .gz)")
	f.StringVar(&opts.junitOut, "junit", "", "Write quota outcomes as JUnit XML")
	f.StringVarP(&opts.format, "format", "f", "text", "Summary format: text or json")
	f.BoolVar(&opts.strict, "strict", false, "Exit with status 1 when any quota is not met")
	cmd.MarkFlagsMutuallyExclusive("data", "workbook")

	return cmd
}

func runSelect(cmd *cobra.Command, opts *selectOptions) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unsupported format %q: must be text or json", opts.format)
	}

	configPath, err := resolveConfigPath(opts.configPath)
	if err != nil {
		return err
	}
	cfg, err := projectconfig.Load(configPath)
	if err != nil {
		return err
	}

	classifier, err := loadClassifier(cfg.KitSoftwareVersion,
		besideConfig(configPath, opts.rangesPath, defaultRangesFile),
		besideConfig(configPath, opts.abbreviationsPath, defaultAbbreviationsFile))
	if err != nil {
		return err
	}
	groups, err := tables.LoadMarketPriority(besideConfig(configPath, opts.marketPriorityPath, defaultMarketPriorityFile))
	if err != nil {
		return err
	}

	sources, err := selectSources(cfg, opts)
	if err != nil {
		return err
	}
	stop := spinner.StartIf(stderrIsTerminal(), cmd.ErrOrStderr(), "Loading regional tables...")
	regional, err := dataset.LoadRegions(cmd.Context(), sources)
	stop()
	if err != nil {
		return err
	}

	ds, err := dataset.Build(regional, cfg, classifier)
	if err != nil {
		return err
	}
	slog.Info("Ranked isolate pool", "isolates", len(ds.Isolates), "antibiotics", len(ds.Antibiotics), "regions", ds.Regions)

	state := selection.Run(ds.Isolates, ds.Antibiotics, groups, cfg)
	runID := uuid.NewString()
	now := time.Now().UTC()

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := reporting.WriteChosenFile(filepath.Join(opts.outDir, chosenListFile), state.Chosen); err != nil {
		return err
	}
	if err := reporting.WriteErrorLogFile(filepath.Join(opts.outDir, errorLogFile), state.Log); err != nil {
		return err
	}
	if opts.rankedOut != "" {
		report := &reporting.RankedReport{
			RunID:       runID,
			GeneratedAt: now,
			Regions:     ds.Regions,
			Antibiotics: ds.Antibiotics,
			Isolates:    ds.Isolates,
			Chosen:      models.IDs(state.Chosen),
			Errors:      state.Log,
			Quotas:      state.Quotas,
		}
		if err := reporting.WriteRankedFile(opts.rankedOut, report); err != nil {
			return err
		}
	}
	if opts.junitOut != "" {
		if err := reporting.WriteJUnitXML(reporting.ConvertToJUnit(runID, now, state.Quotas), opts.junitOut); err != nil {
			return err
		}
	}

	summary := reporting.Summarize(runID, ds.Isolates, state.Chosen, state.Log, state.Quotas, state.Halted)
	if err := printSummary(cmd.OutOrStdout(), summary, opts.format); err != nil {
		return err
	}

	if opts.strict && len(state.Log) > 0 {
		return &ShortfallError{
			Message: fmt.Sprintf("selection completed with %d quota shortfall(s), see %s", len(state.Log), filepath.Join(opts.outDir, errorLogFile)),
		}
	}
	return nil
}

// selectSources returns the regional sources to load. Regions not listed
// under datasets in the configuration are skipped.
func selectSources(cfg *projectconfig.SelectionConfig, opts *selectOptions) ([]dataset.Source, error) {
	if opts.workbook != "" {
		return dataset.WorkbookSources(opts.workbook, cfg.Datasets), nil
	}
	if len(opts.data) == 0 {
		return nil, fmt.Errorf("no input data: pass --data REGION=path or --workbook")
	}

	var sources []dataset.Source
	for _, d := range opts.data {
		src, err := dataset.ParseSource(d)
		if err != nil {
			return nil, err
		}
		if !cfg.HasDataset(src.Region) {
			slog.Warn("Data region not valid, skipping", "region", src.Region, "datasets", cfg.Datasets)
			continue
		}
		if slices.ContainsFunc(sources, func(s dataset.Source) bool { return s.Region == src.Region }) {
			return nil, fmt.Errorf("data region %s given twice", src.Region)
		}
		sources = append(sources, src)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no input data for the configured datasets %v", cfg.Datasets)
	}
	return sources, nil
}

func printSummary(w io.Writer, s *reporting.Summary, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	return reporting.WriteSummary(w, s, terminalWidth()/2)
}
