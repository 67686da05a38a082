package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/astpanel/isosel/internal/models"
)

// RankedReport is the serialized ranked dataset of one run.
type RankedReport struct {
	RunID       string                  `json:"run_id"`
	GeneratedAt time.Time               `json:"generated_at"`
	Regions     []string                `json:"regions"`
	Antibiotics []string                `json:"antibiotics"`
	Isolates    []*models.RankedIsolate `json:"isolates"`
	Chosen      []string                `json:"chosen,omitempty"`
	Errors      models.ErrorLog         `json:"errors,omitempty"`
	Quotas      []models.Quota          `json:"quotas,omitempty"`
}

// WriteRanked encodes the report as indented JSON.
func WriteRanked(w io.Writer, report *RankedReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// WriteRankedFile writes the report to path, gzip-compressed when the path
// ends in ".gz".
func WriteRankedFile(path string, report *RankedReport) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating ranked dataset: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if !strings.HasSuffix(path, ".gz") {
		return WriteRanked(f, report)
	}
	zw := gzip.NewWriter(f)
	if err := WriteRanked(zw, report); err != nil {
		zw.Close() //nolint:errcheck
		return fmt.Errorf("writing ranked dataset %s: %w", path, err)
	}
	return zw.Close()
}

// ReadRankedFile loads a report written by WriteRankedFile.
func ReadRankedFile(path string) (*RankedReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ranked dataset: %w", err)
	}
	defer f.Close() //nolint:errcheck

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("reading ranked dataset %s: %w", path, err)
		}
		defer zr.Close() //nolint:errcheck
		r = zr
	}

	var report RankedReport
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return nil, fmt.Errorf("decoding ranked dataset %s: %w", path, err)
	}
	return &report, nil
}
