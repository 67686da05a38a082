package selection

import (
	"github.com/astpanel/isosel/internal/models"
	"github.com/astpanel/isosel/internal/projectconfig"
	"github.com/astpanel/isosel/internal/susceptibility"
)

// Matches reports whether r satisfies scenario sc for antibiotic.
//
// For the D-test only the POS/NEG outcome counts: a scenario without a POS
// requirement accepts any determinate outcome. For other antibiotics the
// category must equal the scenario SIR and the scale must equal the scenario
// scale; Gentamicin skips the scale check. An empty SIR or scale is a value
// like any other, so a scenario written for the D-test never matches another
// antibiotic. Absent results never match.
func Matches(r models.Result, antibiotic string, sc projectconfig.Scenario) bool {
	if r.IsAbsent() {
		return false
	}

	if antibiotic == susceptibility.DTestColumn {
		if sc.POS == nil {
			return r.Tag.Determinate()
		}
		if *sc.POS {
			return r.Tag == models.TagPositive
		}
		return r.Tag == models.TagNegative
	}

	if r.Category != sc.SIR {
		return false
	}
	return antibiotic == susceptibility.Gentamicin || r.Tag == sc.Scale
}

// matchesMerged is true when any regional entry matches.
func matchesMerged(m models.Merged, antibiotic string, sc projectconfig.Scenario) bool {
	for _, rr := range m {
		if Matches(rr.Result, antibiotic, sc) {
			return true
		}
	}
	return false
}

// firstScenario returns the index of the first scenario m satisfies, or -1.
func firstScenario(m models.Merged, antibiotic string, scenarios []projectconfig.Scenario) int {
	for i, sc := range scenarios {
		if matchesMerged(m, antibiotic, sc) {
			return i
		}
	}
	return -1
}
