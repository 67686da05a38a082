package projectconfig

import (
	"fmt"
	"strings"

	"github.com/astpanel/isosel/internal/models"
)

// ValidationError lists every problem found in a configuration.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid configuration:\n  " + strings.Join(e.Problems, "\n  ")
}

// Validate checks the invariants the selection pipeline relies on.
func (c *SelectionConfig) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if len(c.Datasets) == 0 {
		add("datasets: at least one region is required")
	}
	seenRegion := map[string]bool{}
	for _, d := range c.Datasets {
		if seenRegion[d] {
			add("datasets: region %q listed twice", d)
		}
		seenRegion[d] = true
	}

	seenGroup := map[string]bool{}
	seenSpecies := map[string]string{}
	for _, g := range c.Species.Groups {
		if g.Name == "" {
			add("isolates_per_species: group without a name")
		}
		if seenGroup[g.Name] {
			add("isolates_per_species: group %q defined twice", g.Name)
		}
		seenGroup[g.Name] = true
		if g.Overall < 0 {
			add("isolates_per_species.%s: overall must not be negative", g.Name)
		}
		for _, s := range g.Species {
			if s.Count < 0 {
				add("isolates_per_species.%s.%s: count must not be negative", g.Name, s.Species)
			}
			if other, ok := seenSpecies[s.Species]; ok {
				add("isolates_per_species.%s.%s: species already listed under %q", g.Name, s.Species, other)
				continue
			}
			seenSpecies[s.Species] = g.Name
		}
	}

	if c.Bugdrug.Active() && len(c.Bugdrug.Scenarios) == 0 {
		add("bugdrug_fill: at least one scenario is required when bugdrug fill is enabled")
	}
	if c.Bugdrug.Quota < 0 {
		add("bugdrug_fill: quota must not be negative")
	}
	for abx, q := range c.Bugdrug.Overrides {
		if q < 0 {
			add("bugdrug_fill.overrides.%s: quota must not be negative", abx)
		}
	}
	for i, s := range c.Bugdrug.Scenarios {
		switch s.Scale {
		case "", models.TagOnScale, models.TagOffScale:
		default:
			add("bugdrug_fill.scenarios[%d]: scale %q is neither %q nor %q", i, s.Scale, models.TagOnScale, models.TagOffScale)
		}
	}

	if c.LowerLimit.Active() && c.LowerLimit.Count < 0 {
		add("lower_limit: count must not be negative")
	}
	if c.UpperFill.Active() && c.UpperFill.Count < 0 {
		add("upper_fill: count must not be negative")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
