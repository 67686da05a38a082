package reporting

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astpanel/isosel/internal/models"
)

func TestSummarize(t *testing.T) {
	pool := isolates("A", "B", "C", "D")
	chosen := []*models.RankedIsolate{
		{ID: "A", Pathogen: "Staphylococcus aureus", Score: 90},
		{ID: "B", Pathogen: "Escherichia coli", Score: 70},
		{ID: "C", Pathogen: "Staphylococcus aureus", Score: 50},
	}
	log := models.ErrorLog{{Scope: models.ScopeGroup, Subject: "Staph", Message: "short"}}
	quotas := testQuotas()

	s := Summarize("run-1", pool, chosen, log, quotas, true)

	assert.Equal(t, 4, s.Pool)
	assert.Equal(t, 3, s.Chosen)
	assert.True(t, s.Halted)
	assert.Equal(t, 1, s.Errors)
	assert.Equal(t, 2, s.Shortfalls())
	assert.Equal(t, []PathogenCount{
		{Pathogen: "Staphylococcus aureus", Chosen: 2},
		{Pathogen: "Escherichia coli", Chosen: 1},
	}, s.Pathogens)
	assert.Equal(t, 3, s.Scores.Count)
	assert.InDelta(t, 70.0, s.Scores.Mean, 1e-9)
	assert.Equal(t, 50, s.Scores.Min)
	assert.Equal(t, 90, s.Scores.Max)
}

func TestWriteSummary(t *testing.T) {
	chosen := []*models.RankedIsolate{
		{ID: "A", Pathogen: "Staphylococcus aureus", Score: 90},
		{ID: "B", Pathogen: "E. coli", Score: 70},
	}
	s := Summarize("run-1", chosen, chosen, nil, nil, false)

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, s, 0))
	out := buf.String()

	assert.Contains(t, out, "Run run-1\n")
	assert.Contains(t, out, "Chosen 2 of 2 isolates\n")
	assert.NotContains(t, out, "lower limit")
	assert.Contains(t, out, "  Staphylococcus aureus  1\n")
	assert.Contains(t, out, "  E. coli                1\n")
	assert.NotContains(t, out, "quotas not met")
}

func TestWriteSummary_TruncatesPathogens(t *testing.T) {
	chosen := []*models.RankedIsolate{{ID: "A", Pathogen: "Staphylococcus aureus", Score: 1}}
	s := Summarize("run-1", chosen, chosen, nil, testQuotas(), true)

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, s, 8))
	out := buf.String()

	assert.Contains(t, out, "(lower limit reached)")
	assert.Contains(t, out, "  Staphyl…  1\n")
	assert.Contains(t, out, "2 of 4 quotas not met")
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "abcdef", padRight("abcdef", 4))
}
