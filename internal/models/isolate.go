package models

import "strings"

// Region tags used by the lab datasets.
const (
	RegionUS = "US"
	RegionEU = "EU"
)

// RegionResult is a classified result tagged with the dataset region(s) it
// came from. Region is "US+EU" when both datasets agreed.
type RegionResult struct {
	Region string `json:"region"`
	Result Result `json:"result"`
}

// Merged holds the reconciled per-region results for one isolate and
// antibiotic. It always has at least one entry.
type Merged []RegionResult

// Regions returns the individual region names covered by the entry tag.
func (rr RegionResult) Regions() []string {
	return strings.Split(rr.Region, "+")
}

// Valid reports whether any entry carries data.
func (m Merged) Valid() bool {
	for _, rr := range m {
		if !rr.Result.IsAbsent() {
			return true
		}
	}
	return false
}

// RankedIsolate is one isolate row with its merged classifications and rank
// score. It is built once and never modified afterwards.
type RankedIsolate struct {
	ID         string            `json:"isolate"`
	Pathogen   string            `json:"pathogen"`
	Fastidious bool              `json:"fastidious"`
	Results    map[string]Merged `json:"results"`
	Score      int               `json:"rank"`
	// Row is the first-seen position of the isolate in the input tables.
	Row int `json:"row"`
}

// Result returns the merged result for antibiotic, or a single absent entry
// when the antibiotic was not reported for this isolate.
func (ri *RankedIsolate) Result(antibiotic string) Merged {
	if m, ok := ri.Results[antibiotic]; ok && len(m) > 0 {
		return m
	}
	return Merged{{}}
}

// IDs returns the isolate ids of pool in order.
func IDs(pool []*RankedIsolate) []string {
	ids := make([]string, len(pool))
	for i, ri := range pool {
		ids[i] = ri.ID
	}
	return ids
}
