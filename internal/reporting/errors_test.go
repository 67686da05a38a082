package reporting

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/astpanel/isosel/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorLog(t *testing.T) {
	log := models.ErrorLog{
		{Scope: models.ScopeSpecies, Subject: "Staphylococcus aureus", Message: "Not enough isolates in first selection, 5/6 isolates were selected"},
		{Scope: models.ScopeBugdrug, Subject: "Vancomycin/Staphylococcus aureus", Message: "Not enough interesting isolates, 1/2 isolates were selected"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteErrorLog(&buf, log))
	assert.Equal(t,
		"Staphylococcus aureus: Not enough isolates in first selection, 5/6 isolates were selected\n"+
			"Vancomycin/Staphylococcus aureus: Not enough interesting isolates, 1/2 isolates were selected\n",
		buf.String())
}

func TestWriteErrorLogFile_EmptyTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0644))

	require.NoError(t, WriteErrorLogFile(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}
