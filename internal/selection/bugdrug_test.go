package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astpanel/isosel/internal/models"
	"github.com/astpanel/isosel/internal/projectconfig"
	"github.com/astpanel/isosel/internal/susceptibility"
)

const vanco = "Vancomycin"

var (
	offScaleR = projectconfig.Scenario{SIR: models.CategoryResistant, Scale: models.TagOffScale}
	onScaleR  = projectconfig.Scenario{SIR: models.CategoryResistant, Scale: models.TagOnScale}
)

func TestBugdrugFill_ScenariosInOrder(t *testing.T) {
	isolates := pool("S", staph, 90, 80, 70, 60)
	withResult(isolates[0], vanco, susceptible())
	withResult(isolates[1], vanco, resistant(models.TagOnScale))
	withResult(isolates[2], vanco, resistant(models.TagOffScale))
	withResult(isolates[3], vanco, resistant(models.TagOffScale))
	cfg := withBugdrug(baseConfig(), 3, offScaleR, onScaleR)

	s := BugdrugFill(NewState(isolates), cfg, staph, []string{vanco})

	assert.Equal(t, []string{"S3", "S4", "S2"}, models.IDs(s.Chosen), "first scenario is exhausted before the next")
	assert.Equal(t, []string{"S1"}, models.IDs(s.Available))
	assert.Empty(t, s.Log)
}

func TestBugdrugFill_ChosenIsolatesCountOnce(t *testing.T) {
	isolates := pool("S", staph, 90, 80, 70, 60)
	for _, ri := range isolates {
		withResult(ri, susceptibility.Gentamicin, resistant(models.TagOffScale))
	}
	// Gentamicin ignores the scale, so S1 matches both scenarios; it must count once.
	cfg := withBugdrug(baseConfig(), 3, offScaleR, onScaleR)

	s := SpeciesFill(NewState(isolates), cfg, speciesTarget(staph, 1))
	s = BugdrugFill(s, cfg, staph, []string{susceptibility.Gentamicin})

	assert.Equal(t, []string{"S1", "S2", "S3"}, models.IDs(s.Chosen))
	assert.Equal(t, []string{"S4"}, models.IDs(s.Available))

	seen := map[string]bool{}
	for _, id := range models.IDs(s.Chosen) {
		assert.False(t, seen[id], "isolate %s chosen twice", id)
		seen[id] = true
	}
}

func TestBugdrugFill_QuotaAlreadyMet(t *testing.T) {
	isolates := pool("S", staph, 90, 80, 70)
	for _, ri := range isolates {
		withResult(ri, vanco, resistant(models.TagOffScale))
	}
	cfg := withBugdrug(baseConfig(), 2, offScaleR)

	s := SpeciesFill(NewState(isolates), cfg, speciesTarget(staph, 2))
	s = BugdrugFill(s, cfg, staph, []string{vanco})

	assert.Len(t, s.Chosen, 2)
	assert.Empty(t, s.Log)
}

func TestBugdrugFill_Shortfall(t *testing.T) {
	isolates := pool("S", staph, 90, 80)
	withResult(isolates[0], vanco, resistant(models.TagOffScale))
	withResult(isolates[1], vanco, susceptible())
	cfg := withBugdrug(baseConfig(), 3, offScaleR)

	s := BugdrugFill(NewState(isolates), cfg, staph, []string{vanco})

	assert.Equal(t, []string{"S1"}, models.IDs(s.Chosen))
	require.Len(t, s.Log, 1)
	assert.Equal(t, models.ErrorRecord{
		Scope:   models.ScopeBugdrug,
		Subject: "Vancomycin/" + staph,
		Message: "Not enough interesting isolates, 1/3 isolates were selected",
	}, s.Log[0])
}

func TestBugdrugFill_DTestScenarioIgnoresOtherAntibiotics(t *testing.T) {
	isolates := pool("S", staph, 90, 80, 70)
	for _, ri := range isolates {
		withResult(ri, vanco, models.Result{Category: models.CategorySusceptible, Sign: models.SignEqual, Value: 1, Text: "1", Tag: models.TagOnScale})
	}
	cfg := withBugdrug(baseConfig(), 2, projectconfig.Scenario{POS: boolPtr(true)})

	s := BugdrugFill(NewState(isolates), cfg, staph, []string{vanco})

	assert.Empty(t, s.Chosen)
	require.Len(t, s.Log, 1)
	assert.Equal(t, "Not enough interesting isolates, 0/2 isolates were selected", s.Log[0].Message)
}

func TestBugdrugFill_NoEligibleIsolatesIsNotAShortfall(t *testing.T) {
	isolates := pool("S", staph, 90, 80)
	cfg := withBugdrug(baseConfig(), 3, offScaleR)

	s := BugdrugFill(NewState(isolates), cfg, staph, []string{"Linezolid"})

	assert.Empty(t, s.Chosen)
	assert.Empty(t, s.Log)
	require.Len(t, s.Quotas, 1)
	assert.False(t, s.Quotas[0].Shortfall)
}

func TestBugdrugFill_OverridesAndDisabled(t *testing.T) {
	isolates := pool("S", staph, 90, 80, 70)
	for _, ri := range isolates {
		withResult(ri, vanco, resistant(models.TagOffScale))
	}
	cfg := withBugdrug(baseConfig(), 3, offScaleR)
	cfg.Bugdrug.Overrides = map[string]int{vanco: 1}

	s := BugdrugFill(NewState(isolates), cfg, staph, []string{vanco})
	assert.Equal(t, []string{"S1"}, models.IDs(s.Chosen))

	cfg.Bugdrug.Enabled = boolPtr(false)
	s = BugdrugFill(NewState(isolates), cfg, staph, []string{vanco})
	assert.Empty(t, s.Chosen)
	assert.Empty(t, s.Quotas)
}

func TestBugdrugFill_LowerLimitHalts(t *testing.T) {
	isolates := pool("S", staph, 90, 80, 70, 60)
	for _, ri := range isolates {
		withResult(ri, vanco, resistant(models.TagOffScale))
		withResult(ri, "Oxacillin", resistant(models.TagOffScale))
	}
	cfg := withBugdrug(baseConfig(), 3, offScaleR)

	s := SpeciesFill(NewState(isolates), cfg, speciesTarget(staph, 3))
	withLowerLimit(cfg, 2)
	s = BugdrugFill(s, cfg, staph, []string{"Oxacillin", vanco})

	assert.True(t, s.Halted)
	assert.Equal(t, []string{"S1", "S2"}, models.IDs(s.Chosen))
	assert.Equal(t, []string{"S3", "S4"}, models.IDs(s.Available))
	assert.Empty(t, s.Quotas[1:], "no quota is evaluated after the halt")
}

func TestBugdrugFill_ShortfallAgainstConfiguredQuota(t *testing.T) {
	isolates := pool("S", staph, 90, 80, 70)
	withResult(isolates[0], vanco, resistant(models.TagOffScale))
	withResult(isolates[1], vanco, resistant(models.TagOffScale))
	withResult(isolates[2], vanco, susceptible())
	// The lower limit leaves 4 slots for a quota of 5.
	cfg := withLowerLimit(withBugdrug(baseConfig(), 5, offScaleR), 4)

	s := BugdrugFill(NewState(isolates), cfg, staph, []string{vanco})

	assert.Equal(t, []string{"S1", "S2"}, models.IDs(s.Chosen))
	require.Len(t, s.Log, 1)
	assert.Equal(t, "Not enough interesting isolates, 3/5 isolates were selected", s.Log[0].Message)
	require.Len(t, s.Quotas, 1)
	assert.Equal(t, models.Quota{Scope: models.ScopeBugdrug, Subject: "Vancomycin/" + staph, Target: 5, Selected: 3, Shortfall: true}, s.Quotas[0])
}

func TestBugdrugFill_DTest(t *testing.T) {
	isolates := pool("S", staph, 90, 80, 70)
	withResult(isolates[0], susceptibility.DTestColumn, models.Result{Category: "R", Text: "1", Value: 1, Tag: models.TagNegative})
	withResult(isolates[1], susceptibility.DTestColumn, models.Result{Category: "I", Text: "1", Value: 1, Tag: models.TagIndeterminate})
	withResult(isolates[2], susceptibility.DTestColumn, models.Result{Category: "R", Text: "1", Value: 1, Tag: models.TagPositive})

	pos := withBugdrug(baseConfig(), 1, projectconfig.Scenario{POS: boolPtr(true)})
	s := BugdrugFill(NewState(isolates), pos, staph, []string{susceptibility.DTestColumn})
	assert.Equal(t, []string{"S3"}, models.IDs(s.Chosen))

	anyTag := withBugdrug(baseConfig(), 3, projectconfig.Scenario{})
	s = BugdrugFill(NewState(isolates), anyTag, staph, []string{susceptibility.DTestColumn})
	assert.Equal(t, []string{"S1", "S3"}, models.IDs(s.Chosen), "indeterminate outcomes never match")
}
