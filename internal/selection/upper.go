package selection

import (
	"log/slog"

	"github.com/astpanel/isosel/internal/projectconfig"
)

// UpperFill tops the panel up to the upper bound from the global pool. It
// only runs when the lower limit is switched off.
func UpperFill(s State, cfg *projectconfig.SelectionConfig) State {
	if s.Halted || !cfg.UpperFill.Active() || cfg.LowerLimit.Active() {
		return s
	}
	want := max(cfg.UpperFill.Count-len(s.Chosen), 0)
	picked := prefix(s.Available, want)
	slog.Debug("Upper fill", "upper", cfg.UpperFill.Count, "selected", len(picked))
	return s.take(picked)
}
