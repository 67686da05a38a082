package selection

import (
	"fmt"
	"log/slog"

	"github.com/astpanel/isosel/internal/models"
	"github.com/astpanel/isosel/internal/projectconfig"
)

// SpeciesFill chooses the top-ranked available isolates of one subspecies,
// up to its target. A shortfall is logged; the target shrinks silently when
// the lower limit leaves fewer slots.
func SpeciesFill(s State, cfg *projectconfig.SelectionConfig, target projectconfig.SpeciesTarget) State {
	if s.Halted {
		return s
	}

	s, want, ok := s.bound(cfg.LowerLimit, target.Count)
	if !ok {
		return s
	}

	picked := prefix(s.ofSpecies(target.Species), want)
	s = s.take(picked)
	slog.Debug("Species fill", "species", target.Species, "target", want, "selected", len(picked))

	short := len(picked) != want
	s = s.record(models.Quota{Scope: models.ScopeSpecies, Subject: target.Species, Target: want, Selected: len(picked), Shortfall: short})
	if short {
		s = s.logf(models.ScopeSpecies, target.Species,
			fmt.Sprintf("Not enough isolates in first selection, %d/%d isolates were selected", len(picked), want))
	}
	return s
}
