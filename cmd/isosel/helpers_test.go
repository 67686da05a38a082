package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testConfig = `datasets: [US, EU]
kit_software_version: "5.1"
isolates_per_species:
  fill_group: true
  groups:
    - name: Staph
      overall: 3
      species:
        - species: Staphylococcus aureus
          count: 2
    - name: Enterics
      overall: 2
      species:
        - species: Escherichia coli
          count: 2
point_system:
  R: 10
  I: 2
  off-scale: 5
`

const testRanges = `{
  "5.1": {
    "VA": "0.25 - 32",
    "OX": "0.25 - 4"
  }
}
`

const testAbbreviations = `{"VA": "Vancomycin", "OX": "Oxacillin"}`

const testMarketPriority = `{
  "Europe": {"Staph": 1, "Enterics": 2},
  "US": {"Enterics": 1}
}
`

const testUS = `Isolate,Pathogen,Site,Vancomycin,Oxacillin
I1,Staphylococcus aureus,blood,R >16,S 0.5
I2,Staphylococcus aureus,blood,S 1,S 0.5
I3,Staphylococcus aureus,skin,I 4,R >4
I4,Escherichia coli,urine,S 2,
Total,,,,
`

// writeProject lays out a config directory with lookup tables and one
// regional table, and returns the directory.
func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"isosel.yaml":             testConfig,
		defaultRangesFile:         testRanges,
		defaultAbbreviationsFile:  testAbbreviations,
		defaultMarketPriorityFile: testMarketPriority,
		"US.csv":                  testUS,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

// runCommand executes the root command with args and returns its stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
