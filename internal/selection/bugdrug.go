package selection

import (
	"fmt"
	"log/slog"

	"github.com/astpanel/isosel/internal/models"
	"github.com/astpanel/isosel/internal/projectconfig"
)

// BugdrugFill makes sure every antibiotic has its quota of interesting
// isolates of one subspecies. Isolates of the subspecies that are already
// chosen count toward the quota, each at most once. The remaining quota is
// filled scenario by scenario: the whole pool is searched for the first
// scenario before the next one is tried.
//
// A shortfall is only logged when the subspecies had at least one available
// isolate with data for the antibiotic.
func BugdrugFill(s State, cfg *projectconfig.SelectionConfig, species string, antibiotics []string) State {
	if s.Halted || !cfg.Bugdrug.Active() {
		return s
	}
	scenarios := cfg.Bugdrug.Scenarios

	for _, abx := range antibiotics {
		quota := cfg.Bugdrug.QuotaFor(abx)
		next, target, ok := s.bound(cfg.LowerLimit, quota)
		s = next
		if !ok {
			return s
		}

		var eligible []*models.RankedIsolate
		for _, ri := range s.ofSpecies(species) {
			if ri.Result(abx).Valid() {
				eligible = append(eligible, ri)
			}
		}

		remain := target - countChosen(s, species, abx, scenarios)

		var picked []*models.RankedIsolate
		taken := map[*models.RankedIsolate]bool{}
		for _, sc := range scenarios {
			for _, ri := range eligible {
				if remain < 1 {
					break
				}
				if taken[ri] || !matchesMerged(ri.Result(abx), abx, sc) {
					continue
				}
				picked = append(picked, ri)
				taken[ri] = true
				remain--
			}
		}
		s = s.take(picked)
		slog.Debug("Bugdrug fill", "species", species, "antibiotic", abx, "target", target, "selected", len(picked), "eligible", len(eligible))

		// Slots cut by the lower limit count as selected against the
		// configured quota.
		selected := quota - remain
		subject := abx + "/" + species
		short := remain > 0 && len(eligible) > 0
		s = s.record(models.Quota{Scope: models.ScopeBugdrug, Subject: subject, Target: quota, Selected: selected, Shortfall: short})
		if short {
			s = s.logf(models.ScopeBugdrug, subject,
				fmt.Sprintf("Not enough interesting isolates, %d/%d isolates were selected", selected, quota))
		}
	}
	return s
}

// countChosen counts chosen isolates of species that already satisfy a
// scenario for abx. The first matching scenario claims the isolate.
func countChosen(s State, species, abx string, scenarios []projectconfig.Scenario) int {
	n := 0
	for _, ri := range s.Chosen {
		if ri.Pathogen != species {
			continue
		}
		if firstScenario(ri.Result(abx), abx, scenarios) >= 0 {
			n++
		}
	}
	return n
}
