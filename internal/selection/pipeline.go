package selection

import (
	"log/slog"

	"github.com/astpanel/isosel/internal/models"
	"github.com/astpanel/isosel/internal/projectconfig"
)

// Run selects the panel from pool (in ranked order). groups gives the
// pathogen group processing order; antibiotics the bugdrug fill order.
func Run(pool []*models.RankedIsolate, antibiotics, groups []string, cfg *projectconfig.SelectionConfig) State {
	s := NewState(pool)

	processed := map[string]bool{}
	for _, name := range groups {
		if s.Halted {
			break
		}
		g, ok := cfg.Group(name)
		if !ok {
			slog.Warn("Pathogen group has no species targets, skipping", "group", name)
			continue
		}
		processed[name] = true

		for _, target := range g.Species {
			s = SpeciesFill(s, cfg, target)
			s = BugdrugFill(s, cfg, target.Species, antibiotics)
		}
		s = GroupFill(s, cfg, g)
	}

	for _, g := range cfg.Species.Groups {
		if !processed[g.Name] && !s.Halted {
			slog.Warn("Pathogen group missing from market priority, skipping", "group", g.Name)
		}
	}

	s = UpperFill(s, cfg)
	slog.Debug("Selection finished", "chosen", len(s.Chosen), "available", len(s.Available), "errors", len(s.Log), "halted", s.Halted)
	return s
}
