package selection

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/astpanel/isosel/internal/models"
	"github.com/astpanel/isosel/internal/projectconfig"
)

// State is the selection in progress. Phases never modify the slices of the
// State they receive; they return a new State instead.
type State struct {
	// Available holds the isolates not chosen yet, in ranked order.
	Available []*models.RankedIsolate
	// Chosen holds the panel in the order isolates were chosen.
	Chosen []*models.RankedIsolate
	Log    models.ErrorLog
	// Quotas records every quota a phase evaluated, met or not.
	Quotas []models.Quota
	// Halted is set once the lower limit truncated the panel.
	Halted bool

	position map[*models.RankedIsolate]int
}

// NewState starts a selection over pool, which must be in ranked order.
func NewState(pool []*models.RankedIsolate) State {
	position := make(map[*models.RankedIsolate]int, len(pool))
	for i, ri := range pool {
		position[ri] = i
	}
	return State{
		Available: slices.Clone(pool),
		position:  position,
	}
}

// take moves picked from Available to the end of Chosen.
func (s State) take(picked []*models.RankedIsolate) State {
	if len(picked) == 0 {
		return s
	}
	gone := make(map[*models.RankedIsolate]bool, len(picked))
	for _, ri := range picked {
		gone[ri] = true
	}

	chosen := make([]*models.RankedIsolate, 0, len(s.Chosen)+len(picked))
	chosen = append(chosen, s.Chosen...)
	chosen = append(chosen, picked...)

	available := make([]*models.RankedIsolate, 0, len(s.Available))
	for _, ri := range s.Available {
		if !gone[ri] {
			available = append(available, ri)
		}
	}

	s.Chosen = chosen
	s.Available = available
	return s
}

func (s State) logf(scope models.ErrorScope, subject, message string) State {
	s.Log = s.Log.With(models.ErrorRecord{Scope: scope, Subject: subject, Message: message})
	return s
}

func (s State) record(q models.Quota) State {
	quotas := make([]models.Quota, len(s.Quotas), len(s.Quotas)+1)
	copy(quotas, s.Quotas)
	s.Quotas = append(quotas, q)
	return s
}

// bound caps a phase target by the slots left under the lower limit. When the
// panel already exceeds the limit it is truncated, the State halts and ok is
// false.
func (s State) bound(limit projectconfig.LimitConfig, target int) (next State, capped int, ok bool) {
	if !limit.Active() {
		return s, target, true
	}
	slots := limit.Count - len(s.Chosen)
	if slots < 0 {
		return s.truncate(limit.Count), 0, false
	}
	return s, min(target, slots), true
}

// truncate cuts Chosen down to n isolates, puts the rest back into Available
// and halts the selection.
func (s State) truncate(n int) State {
	dropped := s.Chosen[n:]
	slog.Info("Lower limit reached, truncating panel", "limit", n, "dropped", len(dropped))

	available := make([]*models.RankedIsolate, 0, len(s.Available)+len(dropped))
	available = append(available, s.Available...)
	available = append(available, dropped...)
	slices.SortStableFunc(available, func(a, b *models.RankedIsolate) int {
		return cmp.Compare(s.position[a], s.position[b])
	})

	s.Chosen = slices.Clone(s.Chosen[:n])
	s.Available = available
	s.Halted = true
	return s
}

// ofSpecies returns the available isolates of one pathogen, in ranked order.
func (s State) ofSpecies(species ...string) []*models.RankedIsolate {
	var out []*models.RankedIsolate
	for _, ri := range s.Available {
		if slices.Contains(species, ri.Pathogen) {
			out = append(out, ri)
		}
	}
	return out
}

// chosenOf counts the chosen isolates of the given pathogens.
func (s State) chosenOf(species ...string) int {
	n := 0
	for _, ri := range s.Chosen {
		if slices.Contains(species, ri.Pathogen) {
			n++
		}
	}
	return n
}

// prefix returns at most n leading isolates of pool.
func prefix(pool []*models.RankedIsolate, n int) []*models.RankedIsolate {
	if n <= 0 {
		return nil
	}
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}
