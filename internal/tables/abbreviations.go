package tables

import (
	"fmt"
	"os"
)

// Abbreviations links range-table keys to dataset column names. The file maps
// key → column name; lookups go the other way.
type Abbreviations struct {
	byColumn map[string]string
}

// NewAbbreviations builds the table from key → column pairs.
func NewAbbreviations(keyToColumn map[string]string) Abbreviations {
	a := Abbreviations{byColumn: make(map[string]string, len(keyToColumn))}
	for k, col := range keyToColumn {
		a.byColumn[col] = k
	}
	return a
}

// RangeKey returns the range-table key for a dataset column.
func (a Abbreviations) RangeKey(column string) (string, bool) {
	k, ok := a.byColumn[column]
	return k, ok
}

// Len is the number of known columns.
func (a Abbreviations) Len() int {
	return len(a.byColumn)
}

// LoadAbbreviations reads an abbreviation table from path.
func LoadAbbreviations(path string) (Abbreviations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Abbreviations{}, fmt.Errorf("abbreviations: read %s: %w", path, err)
	}
	a, err := ParseAbbreviations(data)
	if err != nil {
		return Abbreviations{}, fmt.Errorf("abbreviations: parse %s: %w", path, err)
	}
	return a, nil
}

// ParseAbbreviations decodes an abbreviation table. When two keys name the
// same column the later one wins.
func ParseAbbreviations(data []byte) (Abbreviations, error) {
	entries, err := documentMapping(data)
	if err != nil {
		return Abbreviations{}, err
	}
	a := Abbreviations{byColumn: make(map[string]string, len(entries))}
	for _, e := range entries {
		a.byColumn[e.value.Value] = e.key
	}
	return a, nil
}
