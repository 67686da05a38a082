package susceptibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astpanel/isosel/internal/models"
)

func TestParseCell(t *testing.T) {
	tests := []struct {
		cell string
		want ParsedCell
	}{
		{cell: "R >32", want: ParsedCell{Category: "R", Sign: models.SignGreater, Value: 32, Text: "32"}},
		{cell: "S <=0.25", want: ParsedCell{Category: "S", Sign: models.SignLessEqual, Value: 0.25, Text: "0.25"}},
		{cell: "I 4", want: ParsedCell{Category: "I", Sign: models.SignNone, Value: 4, Text: "4"}},
		{cell: "S =1", want: ParsedCell{Category: "S", Sign: models.SignEqual, Value: 1, Text: "1"}},
		{cell: "  R   >=8  ", want: ParsedCell{Category: "R", Sign: models.SignGreaterEqual, Value: 8, Text: "8"}},
		{cell: "S <=0.5/9.5", want: ParsedCell{Category: "S", Sign: models.SignLessEqual, Value: 0.5, Text: "0.5/9.5"}},
		{cell: "Missing BP >=8", want: ParsedCell{Category: models.CategoryMissingBP, Sign: models.SignGreaterEqual, Value: 8, Text: "8"}},
		{cell: "R 16 (flagged)", want: ParsedCell{Category: "R", Sign: models.SignNone, Value: 16, Text: "16"}},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			got, err := ParseCell(tt.cell)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.False(t, got.Absent())
		})
	}
}

func TestParseCell_Absent(t *testing.T) {
	for _, cell := range []string{"", "nip", "Missing BP", "   ", "R >", "-"} {
		t.Run(cell, func(t *testing.T) {
			got, err := ParseCell(cell)
			require.NoError(t, err)
			assert.True(t, got.Absent())
		})
	}
}

func TestParseCell_Malformed(t *testing.T) {
	for _, cell := range []string{"16", "R16", "R ~4", "R >x1", "R =>4"} {
		t.Run(cell, func(t *testing.T) {
			_, err := ParseCell(cell)
			assert.ErrorIs(t, err, ErrMalformedCell)
		})
	}
}

func TestCategory(t *testing.T) {
	assert.Equal(t, "R", Category("R >32"))
	assert.Equal(t, "S", Category(" S 1"))
	assert.Equal(t, "", Category(""))
	assert.Equal(t, "nip", Category("nip"))
}
