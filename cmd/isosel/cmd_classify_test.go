package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astpanel/isosel/internal/models"
)

func TestClassifyCommand_ClampsToRange(t *testing.T) {
	dir := writeProject(t)

	out, err := runCommand(t, "classify", "R >64",
		"--antibiotic", "Vancomycin",
		"--kit", "5.1",
		"--ranges", filepath.Join(dir, defaultRangesFile),
		"--abbreviations", filepath.Join(dir, defaultAbbreviationsFile))
	require.NoError(t, err)

	assert.Equal(t, "category  R\nsign      >\nvalue     32\ntext      32\ntag       off-scale\n", out)
}

func TestClassifyCommand_NoKitLeavesValue(t *testing.T) {
	out, err := runCommand(t, "classify", "S <=0.5/9.5", "-a", "Trimethoprim-sulfamethoxazole", "--format", "json")
	require.NoError(t, err)

	var res models.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "S", res.Category)
	assert.Equal(t, models.SignLessEqual, res.Sign)
	assert.Equal(t, 0.5, res.Value)
	assert.Equal(t, "0.5/9.5", res.Text)
	assert.Equal(t, models.TagOffScale, res.Tag)
}

func TestClassifyCommand_DTest(t *testing.T) {
	out, err := runCommand(t, "classify", "R 1", "-a", "D-test", "--clindamycin", "S", "--erythromycin", "R")
	require.NoError(t, err)
	assert.Contains(t, out, "tag       POS\n")
}

func TestClassifyCommand_Absent(t *testing.T) {
	out, err := runCommand(t, "classify", "nip", "-a", "Vancomycin")
	require.NoError(t, err)
	assert.Equal(t, "absent\n", out)
}

func TestClassifyCommand_Errors(t *testing.T) {
	_, err := runCommand(t, "classify", "R ~4", "-a", "Vancomycin")
	assert.ErrorContains(t, err, "malformed report cell")

	_, err = runCommand(t, "classify", "R 4")
	assert.ErrorContains(t, err, "antibiotic")
}
