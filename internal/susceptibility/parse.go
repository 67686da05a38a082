package susceptibility

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/astpanel/isosel/internal/models"
)

// ErrMalformedCell is returned for report cells that hold a number but do not
// have the "<category> <sign><value> [marker]" shape.
var ErrMalformedCell = errors.New("malformed report cell")

const missingBP = "Missing BP"

// ParsedCell is a report cell split into its parts. The zero value means the
// cell carried no numeric result.
type ParsedCell struct {
	Category string
	Sign     models.Sign
	Value    float64
	Text     string
}

// Absent reports whether the cell had no numeric result.
func (p ParsedCell) Absent() bool {
	return p.Category == ""
}

// ParseCell splits a raw report cell. Cells without any digit ("nip", "",
// "Missing BP") are absent and not an error.
func ParseCell(cell string) (ParsedCell, error) {
	if strings.IndexFunc(cell, isDigit) < 0 {
		return ParsedCell{}, nil
	}

	s := cell
	if _, after, ok := strings.Cut(s, missingBP); ok {
		s = models.CategoryMissingBP + after
	}

	fields := strings.Fields(s)
	if len(fields) < 2 {
		return ParsedCell{}, fmt.Errorf("%w: %q: want \"<category> <sign><value>\"", ErrMalformedCell, cell)
	}
	category, token := fields[0], fields[1]

	first := strings.IndexFunc(token, isDigit)
	if first < 0 {
		return ParsedCell{}, fmt.Errorf("%w: %q: no value after category %q", ErrMalformedCell, cell, category)
	}
	last := strings.LastIndexFunc(token, isDigit)

	sign := models.Sign(token[:first])
	if !sign.Valid() {
		return ParsedCell{}, fmt.Errorf("%w: %q: unknown sign %q", ErrMalformedCell, cell, sign)
	}

	text := token[first : last+1]
	value, err := leadingNumber(text)
	if err != nil {
		return ParsedCell{}, fmt.Errorf("%w: %q: %v", ErrMalformedCell, cell, err)
	}

	return ParsedCell{Category: category, Sign: sign, Value: value, Text: text}, nil
}

// leadingNumber parses the first numeric component of a value such as
// "0.5/9.5" (combination agents report both concentrations).
func leadingNumber(text string) (float64, error) {
	end := strings.IndexFunc(text, func(r rune) bool { return !isDigit(r) && r != '.' })
	if end < 0 {
		end = len(text)
	}
	return strconv.ParseFloat(text[:end], 64)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Category returns the first whitespace token of a raw cell, or "" for an
// empty cell. The D-test rule reads companion antibiotics this way.
func Category(cell string) string {
	fields := strings.Fields(cell)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
