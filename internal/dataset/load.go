package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Source names the file a regional table is read from. Workbooks (.xlsx,
// .xlsm) are read from the "matrix <region>" sheet; anything else is CSV.
type Source struct {
	Region string
	Path   string
}

// ParseSource parses the REGION=path notation of the command line.
func ParseSource(s string) (Source, error) {
	region, path, ok := strings.Cut(s, "=")
	if !ok || region == "" || path == "" {
		return Source{}, fmt.Errorf("data source %q: want REGION=path", s)
	}
	return Source{Region: region, Path: path}, nil
}

func isWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}

// Load reads one source.
func Load(src Source) (*Table, error) {
	if isWorkbook(src.Path) {
		return LoadSheet(src.Region, src.Path)
	}
	return LoadCSV(src.Region, src.Path)
}

// LoadRegions reads all sources concurrently and returns the tables in source
// order. Regions whose workbook has no matching sheet are skipped with a
// warning; every other error aborts the load.
func LoadRegions(ctx context.Context, sources []Source) ([]*Table, error) {
	tables := make([]*Table, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := Load(src)
			if errors.Is(err, ErrSheetNotFound) {
				slog.Warn("Data region not valid, skipping", "region", src.Region, "path", src.Path)
				return nil
			}
			if err != nil {
				return err
			}
			slog.Debug("Loaded regional table", "region", src.Region, "rows", len(t.Rows), "antibiotics", len(t.Antibiotics()))
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := tables[:0]
	for _, t := range tables {
		if t != nil {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("dataset: no regional table could be loaded")
	}
	return out, nil
}

// WorkbookSources returns one source per region, all reading from the same
// workbook.
func WorkbookSources(path string, regions []string) []Source {
	sources := make([]Source, len(regions))
	for i, r := range regions {
		sources[i] = Source{Region: r, Path: path}
	}
	return sources
}
