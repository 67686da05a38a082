package selection

import (
	"fmt"

	"github.com/astpanel/isosel/internal/models"
	"github.com/astpanel/isosel/internal/projectconfig"
)

func boolPtr(b bool) *bool { return &b }

// pool builds n isolates of pathogen with descending scores starting at top.
func pool(prefix, pathogen string, scores ...int) []*models.RankedIsolate {
	out := make([]*models.RankedIsolate, len(scores))
	for i, sc := range scores {
		out[i] = &models.RankedIsolate{
			ID:       fmt.Sprintf("%s%d", prefix, i+1),
			Pathogen: pathogen,
			Score:    sc,
			Results:  map[string]models.Merged{},
		}
	}
	return out
}

func withResult(ri *models.RankedIsolate, abx string, r models.Result) *models.RankedIsolate {
	ri.Results[abx] = models.Merged{{Region: "US", Result: r}}
	return ri
}

func resistant(tag models.Tag) models.Result {
	return models.Result{Category: models.CategoryResistant, Sign: models.SignGreater, Value: 16, Text: "16", Tag: tag}
}

func susceptible() models.Result {
	return models.Result{Category: models.CategorySusceptible, Value: 1, Text: "1", Tag: models.TagOnScale}
}

func baseConfig() *projectconfig.SelectionConfig {
	return projectconfig.New()
}

func speciesTarget(species string, n int) projectconfig.SpeciesTarget {
	return projectconfig.SpeciesTarget{Species: species, Count: n}
}

func withLowerLimit(cfg *projectconfig.SelectionConfig, n int) *projectconfig.SelectionConfig {
	cfg.LowerLimit = projectconfig.LimitConfig{Enabled: boolPtr(true), Count: n}
	return cfg
}

func withBugdrug(cfg *projectconfig.SelectionConfig, quota int, scenarios ...projectconfig.Scenario) *projectconfig.SelectionConfig {
	cfg.Bugdrug = projectconfig.BugdrugConfig{Enabled: boolPtr(true), Quota: quota, Scenarios: scenarios}
	return cfg
}
