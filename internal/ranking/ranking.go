// Package ranking scores isolates by how interesting their resistance
// pattern is and orders the candidate pool.
package ranking

import (
	"cmp"
	"slices"

	"github.com/astpanel/isosel/internal/models"
)

// PointTable maps a category ("R", "I", ...) or tag ("off-scale", "POS", ...)
// to the points it is worth.
type PointTable map[string]int

// Points returns the points for key; unknown keys are worth nothing.
func (p PointTable) Points(key string) int {
	return p[key]
}

// Score sums the points of the category and the tag of every region entry of
// every antibiotic. Absent entries contribute nothing.
func Score(results map[string]models.Merged, points PointTable) int {
	total := 0
	for _, merged := range results {
		for _, rr := range merged {
			if rr.Result.IsAbsent() {
				continue
			}
			total += points.Points(rr.Result.Category)
			total += points.Points(string(rr.Result.Tag))
		}
	}
	return total
}

// Rank stamps the score on ri.
func Rank(ri *models.RankedIsolate, points PointTable) {
	ri.Score = Score(ri.Results, points)
}

// SortByScore returns pool ordered by descending score. Ties keep their input
// order so repeated runs over the same table choose the same isolates.
func SortByScore(pool []*models.RankedIsolate) []*models.RankedIsolate {
	out := slices.Clone(pool)
	slices.SortStableFunc(out, func(a, b *models.RankedIsolate) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return out
}
