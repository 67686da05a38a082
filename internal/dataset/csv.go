package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
)

// LoadCSV reads one regional table from a CSV file. The first row is the
// header; isolate id, pathogen and antibiotic columns follow the layout
// described on Table.
func LoadCSV(region, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse %s: %w", path, err)
	}

	t, err := newTable(region, records)
	if err != nil {
		return nil, fmt.Errorf("csv: %s: %w", path, err)
	}
	return t, nil
}
