package dataset

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/astpanel/isosel/internal/models"
	"github.com/astpanel/isosel/internal/projectconfig"
	"github.com/astpanel/isosel/internal/ranking"
	"github.com/astpanel/isosel/internal/susceptibility"
)

// Dataset is the ranked isolate pool, sorted by descending rank score.
type Dataset struct {
	Regions     []string                `json:"regions"`
	Antibiotics []string                `json:"antibiotics"`
	Isolates    []*models.RankedIsolate `json:"isolates"`
}

// Find returns the isolate with the given id.
func (d *Dataset) Find(id string) (*models.RankedIsolate, bool) {
	for _, ri := range d.Isolates {
		if ri.ID == id {
			return ri, true
		}
	}
	return nil, false
}

type indexedTable struct {
	*Table
	rows map[string][]string
}

func indexTable(t *Table) indexedTable {
	it := indexedTable{Table: t, rows: make(map[string][]string, len(t.Rows))}
	for i, row := range t.Rows {
		id := strings.TrimSpace(row[IsolateColumn])
		if id == "" {
			slog.Warn("Skipping row without isolate id", "region", t.Region, "row", i+2)
			continue
		}
		if _, dup := it.rows[id]; dup {
			slog.Warn("Skipping duplicate isolate row", "region", t.Region, "isolate", id, "row", i+2)
			continue
		}
		it.rows[id] = row
	}
	return it
}

// Build classifies every cell of every regional table, merges the regional
// results per isolate and antibiotic, scores each isolate and sorts the pool.
// Isolates are matched across regions by id and keep the order in which they
// are first seen. A malformed report cell aborts the build.
func Build(tables []*Table, cfg *projectconfig.SelectionConfig, classifier *susceptibility.Classifier) (*Dataset, error) {
	indexed := make([]indexedTable, len(tables))
	regions := make([]string, len(tables))
	for i, t := range tables {
		indexed[i] = indexTable(t)
		regions[i] = t.Region
	}

	antibiotics := unionAntibiotics(tables)

	var order []string
	pathogens := map[string]string{}
	for _, t := range indexed {
		for _, row := range t.Rows {
			id := strings.TrimSpace(row[IsolateColumn])
			if _, ok := t.rows[id]; !ok {
				continue
			}
			if _, seen := pathogens[id]; seen {
				continue
			}
			pathogens[id] = strings.TrimSpace(row[PathogenColumn])
			order = append(order, id)
		}
	}

	isolates := make([]*models.RankedIsolate, 0, len(order))
	for rowNum, id := range order {
		pathogen := pathogens[id]
		ri := &models.RankedIsolate{
			ID:         id,
			Pathogen:   pathogen,
			Fastidious: cfg.Fastidious(pathogen),
			Results:    make(map[string]models.Merged, len(antibiotics)),
			Row:        rowNum,
		}

		for _, abx := range antibiotics {
			entries := make([]models.RegionResult, 0, len(indexed))
			for _, t := range indexed {
				res, err := classifyCell(t, id, abx, ri.Fastidious, classifier)
				if err != nil {
					return nil, fmt.Errorf("dataset: region %s, isolate %s, %s: %w", t.Region, id, abx, err)
				}
				entries = append(entries, models.RegionResult{Region: t.Region, Result: res})
			}
			ri.Results[abx] = susceptibility.Merge(entries)
		}

		ranking.Rank(ri, cfg.PointSystem)
		isolates = append(isolates, ri)
	}

	slog.Debug("Built ranked dataset", "isolates", len(isolates), "antibiotics", len(antibiotics), "regions", regions)
	return &Dataset{
		Regions:     regions,
		Antibiotics: antibiotics,
		Isolates:    ranking.SortByScore(isolates),
	}, nil
}

// classifyCell classifies one cell. Isolates or antibiotics missing from a
// region are absent there.
func classifyCell(t indexedTable, id, abx string, fastidious bool, classifier *susceptibility.Classifier) (models.Result, error) {
	row, ok := t.rows[id]
	if !ok {
		return models.Result{}, nil
	}
	cell, ok := t.Cell(row, abx)
	if !ok {
		return models.Result{}, nil
	}

	var comp susceptibility.Companions
	if abx == susceptibility.DTestColumn {
		cli, _ := t.Cell(row, susceptibility.Clindamycin)
		ery, _ := t.Cell(row, susceptibility.Erythromycin)
		comp = susceptibility.Companions{
			Clindamycin:  susceptibility.Category(cli),
			Erythromycin: susceptibility.Category(ery),
		}
	}
	return classifier.Classify(cell, abx, fastidious, comp)
}

// unionAntibiotics returns the sorted union of the antibiotic columns.
func unionAntibiotics(tables []*Table) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range tables {
		for _, abx := range t.Antibiotics() {
			if abx == "" || seen[abx] {
				continue
			}
			seen[abx] = true
			out = append(out, abx)
		}
	}
	sort.Strings(out)
	return out
}
