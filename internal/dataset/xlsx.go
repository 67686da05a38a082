package dataset

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SheetPrefix precedes the region name in workbook sheet names.
const SheetPrefix = "matrix "

// ErrSheetNotFound is returned when a workbook has no sheet for a region.
var ErrSheetNotFound = errors.New("sheet not found")

// SheetName returns the workbook sheet holding region's table.
func SheetName(region string) string {
	return SheetPrefix + region
}

// LoadSheet reads the "matrix <region>" sheet of an xlsx workbook.
func LoadSheet(region, path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	sheet := SheetName(region)
	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("xlsx: %s: %q: %w", path, sheet, ErrSheetNotFound)
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: read %s %q: %w", path, sheet, err)
	}

	t, err := newTable(region, records)
	if err != nil {
		return nil, fmt.Errorf("xlsx: %s %q: %w", path, sheet, err)
	}
	return t, nil
}
