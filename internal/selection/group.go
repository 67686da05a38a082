package selection

import (
	"fmt"
	"log/slog"

	"github.com/astpanel/isosel/internal/models"
	"github.com/astpanel/isosel/internal/projectconfig"
)

// GroupFill tops a pathogen group up to its overall target with the
// top-ranked available isolates of any of its subspecies.
func GroupFill(s State, cfg *projectconfig.SelectionConfig, g *projectconfig.GroupConfig) State {
	if s.Halted || !cfg.GroupFillEnabled(g) {
		return s
	}

	species := g.SpeciesNames()
	already := s.chosenOf(species...)
	need := max(g.Overall-already, 0)

	s, need, ok := s.bound(cfg.LowerLimit, need)
	if !ok {
		return s
	}

	picked := prefix(s.ofSpecies(species...), need)
	s = s.take(picked)
	slog.Debug("Group fill", "group", g.Name, "overall", g.Overall, "already", already, "selected", len(picked))

	short := len(picked) < need
	s = s.record(models.Quota{Scope: models.ScopeGroup, Subject: g.Name, Target: g.Overall, Selected: already + len(picked), Shortfall: short})
	if short {
		s = s.logf(models.ScopeGroup, g.Name,
			fmt.Sprintf("Not enough isolates in group fill, %d/%d isolates were selected", already+len(picked), g.Overall))
	}
	return s
}
