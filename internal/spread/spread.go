// Package spread scores how evenly a chosen panel covers the MIC range of
// each antibiotic. It is a separate utility that reads the chosen list back;
// the selection pipeline does not use it.
//
// Each antibiotic gets a grid over the doubling-dilution series
// 0.00195 … 1024 mg/L framed by "Min C" and "Max C". Cells outside the
// antibiotic's reportable window are masked, cells holding the MIC of a
// chosen isolate are filled. Every run of two or more empty cells costs its
// length minus one, and an empty cell at either end of the window costs 0.5.
// Lower is better.
package spread

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mark is the state of one grid cell.
type Mark int8

const (
	Masked Mark = iota - 1
	Empty
	Filled
)

// Window sentinels for an antibiotic reportable over the whole grid.
const (
	MinC = "Min_C"
	MaxC = "Max_C"
)

// gridOffset places 1 mg/L at index 10.
const gridOffset = 10

// Concentrations labels the grid cells.
var Concentrations = []string{
	"Min C",
	"0.00195", "0.00391", "0.00781", "0.01563", "0.03125", "0.0625", "0.125",
	"0.25", "0.5", "1.0", "2.0", "4.0", "8.0", "16.0", "32.0", "64.0",
	"128.0", "256.0", "512.0", "1024.0",
	"Max C",
}

// ErrTooNarrow is returned when fewer than two cells are inside the window.
var ErrTooNarrow = errors.New("spread window must cover more than one concentration")

// Window is the reportable range of one antibiotic, as written in the
// antibiotic ranges file.
type Window struct {
	Lower string `yaml:"Lower"`
	Upper string `yaml:"Upper"`
}

// LoadWindows reads the antibiotic ranges file ({"Amikacin": {"Lower":
// "0.25", "Upper": "Max_C"}, ...}).
func LoadWindows(path string) (map[string]Window, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("spread: read %s: %w", path, err)
	}
	var windows map[string]Window
	if err := yaml.Unmarshal(data, &windows); err != nil {
		return nil, fmt.Errorf("spread: parse %s: %w", path, err)
	}
	return windows, nil
}

// Index returns the grid cell of an MIC. Values beyond the dilution series
// land in the Min C / Max C cells.
func Index(mic float64) int {
	if mic <= 0 {
		return 0
	}
	i := int(math.Round(math.Log2(mic))) + gridOffset
	return min(max(i, 0), len(Concentrations)-1)
}

func boundIndex(bound string, fallback int) (int, error) {
	switch strings.TrimSpace(bound) {
	case MinC, "Min C":
		return 0, nil
	case MaxC, "Max C":
		return len(Concentrations) - 1, nil
	case "":
		return fallback, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(bound), 64)
	if err != nil {
		return 0, fmt.Errorf("window bound %q: %w", bound, err)
	}
	return Index(v), nil
}

// NewGrid returns an empty grid with the cells outside w masked.
func NewGrid(w Window) ([]Mark, error) {
	lo, err := boundIndex(w.Lower, 0)
	if err != nil {
		return nil, err
	}
	hi, err := boundIndex(w.Upper, len(Concentrations)-1)
	if err != nil {
		return nil, err
	}
	grid := make([]Mark, len(Concentrations))
	for i := range grid {
		if i < lo || i > hi {
			grid[i] = Masked
		}
	}
	return grid, nil
}

// Fill marks the cells holding the given MICs. MICs in masked cells are
// ignored.
func Fill(grid []Mark, mics []float64) {
	for _, m := range mics {
		i := Index(m)
		if grid[i] != Masked {
			grid[i] = Filled
		}
	}
}

// Score returns the gap and edge penalty of a filled grid.
func Score(grid []Mark) (float64, error) {
	var valid []Mark
	for _, m := range grid {
		if m != Masked {
			valid = append(valid, m)
		}
	}
	if len(valid) <= 1 {
		return 0, ErrTooNarrow
	}
	return gapPenalty(valid) + edgePenalty(valid), nil
}

func gapPenalty(valid []Mark) float64 {
	total, run := 0, 0
	for _, m := range valid {
		if m == Empty {
			run++
			continue
		}
		if run >= 2 {
			total += run - 1
		}
		run = 0
	}
	if run >= 2 {
		total += run - 1
	}
	return float64(total)
}

func edgePenalty(valid []Mark) float64 {
	p := 0.0
	if valid[0] == Empty {
		p += 0.5
	}
	if valid[len(valid)-1] == Empty {
		p += 0.5
	}
	return p
}
