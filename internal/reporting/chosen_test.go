package reporting

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/astpanel/isosel/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolates(ids ...string) []*models.RankedIsolate {
	out := make([]*models.RankedIsolate, len(ids))
	for i, id := range ids {
		out[i] = &models.RankedIsolate{ID: id, Pathogen: "Staphylococcus aureus", Score: 10 * (len(ids) - i)}
	}
	return out
}

func TestWriteChosen(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteChosen(&buf, isolates("ISO-1", "ISO-7", "ISO-3")))
	assert.Equal(t, "Isolate\nISO-1\nISO-7\nISO-3\n", buf.String())
}

func TestWriteChosen_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteChosen(&buf, nil))
	assert.Equal(t, "Isolate\n", buf.String())
}

func TestReadChosen(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "with header", input: "Isolate\nA1\nB2\n", want: []string{"A1", "B2"}},
		{name: "without header", input: "A1\nB2\n", want: []string{"A1", "B2"}},
		{name: "blank rows and spaces", input: "Isolate\n A1 \n\nB2\n", want: []string{"A1", "B2"}},
		{name: "extra columns", input: "Isolate,Note\nA1,keep\n", want: []string{"A1"}},
		{name: "empty", input: "", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadChosen(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChosenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chosen.csv")
	require.NoError(t, WriteChosenFile(path, isolates("X", "Y")))

	ids, err := ReadChosenFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y"}, ids)
}

func TestReadChosenFile_Missing(t *testing.T) {
	_, err := ReadChosenFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorContains(t, err, "opening chosen list")
}
