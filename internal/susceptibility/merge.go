package susceptibility

import (
	"strings"

	"github.com/astpanel/isosel/internal/models"
)

// Merge reconciles the results different regional datasets reported for one
// isolate and antibiotic:
//
//  1. all regions agree (including all absent): one entry tagged "US+EU";
//  2. only one region has data: that region's entry;
//  3. otherwise every region with data keeps its own entry, with agreeing
//     regions sharing one tag.
func Merge(entries []models.RegionResult) models.Merged {
	if len(entries) == 0 {
		return nil
	}
	if len(entries) == 1 {
		return models.Merged{entries[0]}
	}

	if allEqual(entries) {
		regions := make([]string, len(entries))
		for i, e := range entries {
			regions[i] = e.Region
		}
		return models.Merged{{Region: strings.Join(regions, "+"), Result: entries[0].Result}}
	}

	var out models.Merged
	for _, e := range entries {
		if e.Result.IsAbsent() {
			continue
		}
		joined := false
		for i := range out {
			if out[i].Result.Equal(e.Result) {
				out[i].Region += "+" + e.Region
				joined = true
				break
			}
		}
		if !joined {
			out = append(out, e)
		}
	}
	return out
}

func allEqual(entries []models.RegionResult) bool {
	for _, e := range entries[1:] {
		if !e.Result.Equal(entries[0].Result) {
			return false
		}
	}
	return true
}
