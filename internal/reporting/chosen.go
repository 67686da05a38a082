package reporting

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/astpanel/isosel/internal/models"
)

// ChosenHeader is the single column of the chosen isolate list.
const ChosenHeader = "Isolate"

// WriteChosen writes one isolate id per row under a ChosenHeader header.
func WriteChosen(w io.Writer, chosen []*models.RankedIsolate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ChosenHeader}); err != nil {
		return err
	}
	for _, ri := range chosen {
		if err := cw.Write([]string{ri.ID}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteChosenFile writes the chosen isolate list to path.
func WriteChosenFile(path string, chosen []*models.RankedIsolate) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chosen list: %w", err)
	}
	if err := WriteChosen(f, chosen); err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("writing chosen list %s: %w", path, err)
	}
	return f.Close()
}

// ReadChosen reads a chosen isolate list. The header row is optional; blank
// rows are skipped.
func ReadChosen(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	var ids []string
	for first := true; ; first = false {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return ids, nil
		}
		if err != nil {
			return nil, err
		}
		if len(rec) == 0 {
			continue
		}
		id := strings.TrimSpace(rec[0])
		if id == "" || (first && strings.EqualFold(id, ChosenHeader)) {
			continue
		}
		ids = append(ids, id)
	}
}

// ReadChosenFile reads the chosen isolate list at path.
func ReadChosenFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chosen list: %w", err)
	}
	defer f.Close() //nolint:errcheck
	ids, err := ReadChosen(f)
	if err != nil {
		return nil, fmt.Errorf("reading chosen list %s: %w", path, err)
	}
	return ids, nil
}
