package main

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astpanel/isosel/internal/projectconfig"
	"github.com/astpanel/isosel/internal/reporting"
)

func TestSelectCommand_WritesChosenListAndErrors(t *testing.T) {
	dir := writeProject(t)
	outDir := filepath.Join(dir, "out")

	out, err := runCommand(t, "select",
		"--config", filepath.Join(dir, "isosel.yaml"),
		"--data", "US="+filepath.Join(dir, "US.csv"),
		"--out-dir", outDir)
	require.NoError(t, err)

	chosen, err := reporting.ReadChosenFile(filepath.Join(outDir, chosenListFile))
	require.NoError(t, err)
	assert.Equal(t, []string{"I3", "I1", "I2", "I4"}, chosen)

	errs, err := os.ReadFile(filepath.Join(outDir, errorLogFile))
	require.NoError(t, err)
	assert.Equal(t,
		"Escherichia coli: Not enough isolates in first selection, 1/2 isolates were selected\n"+
			"Enterics: Not enough isolates in group fill, 1/2 isolates were selected\n",
		string(errs))

	assert.Contains(t, out, "Chosen 4 of 4 isolates")
	assert.Contains(t, out, "2 of 4 quotas not met")
}

func TestSelectCommand_Strict(t *testing.T) {
	dir := writeProject(t)

	_, err := runCommand(t, "select",
		"--config", filepath.Join(dir, "isosel.yaml"),
		"--data", "US="+filepath.Join(dir, "US.csv"),
		"--out-dir", dir,
		"--strict")

	var shortfallErr *ShortfallError
	require.True(t, errors.As(err, &shortfallErr), "expected ShortfallError, got %v", err)
	assert.Contains(t, shortfallErr.Message, "2 quota shortfall(s)")
}

func TestSelectCommand_JSONAndArtifacts(t *testing.T) {
	dir := writeProject(t)
	ranked := filepath.Join(dir, "ranked.json.gz")
	junit := filepath.Join(dir, "quotas.xml")

	out, err := runCommand(t, "select",
		"--config", filepath.Join(dir, "isosel.yaml"),
		"--data", "US="+filepath.Join(dir, "US.csv"),
		"--out-dir", dir,
		"--ranked-out", ranked,
		"--junit", junit,
		"--format", "json")
	require.NoError(t, err)

	var summary reporting.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 4, summary.Chosen)
	assert.Equal(t, 17, summary.Scores.Max)
	assert.NotEmpty(t, summary.RunID)

	report, err := reporting.ReadRankedFile(ranked)
	require.NoError(t, err)
	assert.Equal(t, summary.RunID, report.RunID)
	assert.Equal(t, []string{"US"}, report.Regions)
	assert.Equal(t, []string{"Oxacillin", "Vancomycin"}, report.Antibiotics)
	require.Len(t, report.Isolates, 4)
	assert.Equal(t, "I3", report.Isolates[0].ID)
	assert.Equal(t, 17, report.Isolates[0].Score)
	assert.Len(t, report.Errors, 2)

	data, err := os.ReadFile(junit)
	require.NoError(t, err)
	var suites reporting.JUnitTestSuites
	require.NoError(t, xml.Unmarshal(data, &suites))
	assert.Equal(t, 2, suites.Failures)
}

func TestSelectCommand_SkipsUnconfiguredRegion(t *testing.T) {
	dir := writeProject(t)

	_, err := runCommand(t, "select",
		"--config", filepath.Join(dir, "isosel.yaml"),
		"--data", "APAC="+filepath.Join(dir, "US.csv"),
		"--out-dir", dir)
	assert.ErrorContains(t, err, "no input data for the configured datasets")
}

func TestSelectCommand_RejectsBadInput(t *testing.T) {
	dir := writeProject(t)
	cfg := filepath.Join(dir, "isosel.yaml")
	us := "US=" + filepath.Join(dir, "US.csv")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad format", []string{"--config", cfg, "--data", us, "--format", "xml"}, "unsupported format"},
		{"no data", []string{"--config", cfg}, "no input data"},
		{"bad source", []string{"--config", cfg, "--data", "US"}, "want REGION=path"},
		{"duplicate region", []string{"--config", cfg, "--data", us, "--data", us}, "given twice"},
		{"missing ranges", []string{"--config", cfg, "--data", us, "--ranges", filepath.Join(dir, "nope.json")}, "ranges: read"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"select", "--out-dir", dir}, tt.args...)
			_, err := runCommand(t, args...)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSelectCommand_MalformedCellAborts(t *testing.T) {
	dir := writeProject(t)
	bad := "Isolate,Pathogen,Site,Vancomycin\nI1,Staphylococcus aureus,blood,R 16 extra\nI2,Staphylococcus aureus,blood,R ?16\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "US.csv"), []byte(bad), 0o644))

	_, err := runCommand(t, "select",
		"--config", filepath.Join(dir, "isosel.yaml"),
		"--data", "US="+filepath.Join(dir, "US.csv"),
		"--out-dir", dir)
	assert.ErrorContains(t, err, "malformed report cell")
}

func TestSelectSources_Workbook(t *testing.T) {
	cfg := projectconfig.New()
	sources, err := selectSources(cfg, &selectOptions{workbook: "lab.xlsx"})
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "US", sources[0].Region)
	assert.Equal(t, "EU", sources[1].Region)
	assert.Equal(t, "lab.xlsx", sources[1].Path)
}
