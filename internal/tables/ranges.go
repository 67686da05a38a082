package tables

import (
	"fmt"
	"log/slog"
	"maps"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
)

// FastidiousSuffix marks the range entry used for fastidious organisms.
const FastidiousSuffix = "_fast"

// Range is a reportable MIC window [Low, High].
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// String renders the range in the table notation "low - high".
func (r Range) String() string {
	return strconv.FormatFloat(r.Low, 'f', -1, 64) + " - " + strconv.FormatFloat(r.High, 'f', -1, 64)
}

// ParseRange parses the "low - high" notation.
func ParseRange(s string) (Range, error) {
	lo, hi, ok := strings.Cut(s, " - ")
	if !ok {
		return Range{}, fmt.Errorf("range %q: missing \" - \" separator", s)
	}
	low, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return Range{}, fmt.Errorf("range %q: low bound: %w", s, err)
	}
	high, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return Range{}, fmt.Errorf("range %q: high bound: %w", s, err)
	}
	if math.IsNaN(low) || math.IsNaN(high) || low > high {
		return Range{}, fmt.Errorf("range %q: low bound exceeds high bound", s)
	}
	return Range{Low: low, High: high}, nil
}

// Ranges maps kit software version → range key → reportable range.
type Ranges map[string]map[string]Range

// Lookup returns the reportable range for key under kit. For fastidious
// organisms the "<key>_fast" entry is preferred and the plain entry is the
// fallback.
func (r Ranges) Lookup(kit, key string, fastidious bool) (Range, bool) {
	byKey, ok := r[kit]
	if !ok {
		return Range{}, false
	}
	if fastidious {
		if rg, ok := byKey[key+FastidiousSuffix]; ok {
			return rg, true
		}
	}
	rg, ok := byKey[key]
	return rg, ok
}

// Kits lists the kit software versions present in the table, sorted.
func (r Ranges) Kits() []string {
	return slices.Sorted(maps.Keys(r))
}

// LoadRanges reads a range table from path.
func LoadRanges(path string) (Ranges, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ranges: read %s: %w", path, err)
	}
	r, err := ParseRanges(data)
	if err != nil {
		return nil, fmt.Errorf("ranges: parse %s: %w", path, err)
	}
	return r, nil
}

// ParseRanges decodes a range table. Entries whose range notation cannot be
// parsed are skipped with a warning; classification then leaves those
// antibiotics unclamped.
func ParseRanges(data []byte) (Ranges, error) {
	kits, err := documentMapping(data)
	if err != nil {
		return nil, err
	}
	out := make(Ranges, len(kits))
	for _, kit := range kits {
		entries, err := mappingEntries(kit.value)
		if err != nil {
			return nil, fmt.Errorf("kit %q: %w", kit.key, err)
		}
		byKey := make(map[string]Range, len(entries))
		for _, e := range entries {
			rg, err := ParseRange(e.value.Value)
			if err != nil {
				slog.Warn("Skipping reportable range", "kit", kit.key, "key", e.key, "error", err)
				continue
			}
			byKey[e.key] = rg
		}
		out[kit.key] = byKey
	}
	return out, nil
}
