package spread

import (
	"fmt"
	"strings"

	"github.com/astpanel/isosel/internal/dataset"
	"github.com/astpanel/isosel/internal/metrics"
	"github.com/astpanel/isosel/internal/models"
	"github.com/astpanel/isosel/internal/susceptibility"
)

// Antibiotic is the spread of one antibiotic over the chosen panel.
type Antibiotic struct {
	Name  string  `json:"antibiotic"`
	Grid  []Mark  `json:"grid"`
	Score float64 `json:"score"`
}

// Covered returns the filled and empty cells, dropping masked ones.
func (a Antibiotic) Covered() []Mark {
	var out []Mark
	for _, m := range a.Grid {
		if m != Masked {
			out = append(out, m)
		}
	}
	return out
}

// Report is the spread of every antibiotic plus the panel mean.
type Report struct {
	Antibiotics []Antibiotic `json:"antibiotics"`
	Score       float64      `json:"score"`
}

// Panel scores the chosen isolates of table for every antibiotic that has a
// window. Cells reporting "Missing BP" or no MIC are ignored.
func Panel(table *dataset.Table, chosen []string, windows map[string]Window) (*Report, error) {
	want := make(map[string]bool, len(chosen))
	for _, id := range chosen {
		want[id] = true
	}

	var rows [][]string
	for _, row := range table.Rows {
		if want[strings.TrimSpace(row[dataset.IsolateColumn])] {
			rows = append(rows, row)
		}
	}

	report := &Report{}
	var scores []float64
	for _, abx := range table.Antibiotics() {
		w, ok := windows[abx]
		if !ok {
			continue
		}
		grid, err := NewGrid(w)
		if err != nil {
			return nil, fmt.Errorf("spread: %s: %w", abx, err)
		}

		var mics []float64
		for _, row := range rows {
			cell, _ := table.Cell(row, abx)
			p, err := susceptibility.ParseCell(cell)
			if err != nil {
				return nil, fmt.Errorf("spread: isolate %s, %s: %w", row[dataset.IsolateColumn], abx, err)
			}
			if p.Absent() || p.Category == models.CategoryMissingBP {
				continue
			}
			mics = append(mics, p.Value)
		}
		Fill(grid, mics)

		score, err := Score(grid)
		if err != nil {
			return nil, fmt.Errorf("spread: %s: %w", abx, err)
		}
		report.Antibiotics = append(report.Antibiotics, Antibiotic{Name: abx, Grid: grid, Score: score})
		scores = append(scores, score)
	}
	report.Score = metrics.Mean(scores)
	return report, nil
}
