// Package metrics summarises rank scores and spread penalties for reports.
package metrics

import "math"

// Mean computes the arithmetic mean of a float64 slice.
// Returns 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev computes the population standard deviation.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// ScoreSummary describes the rank scores of a set of isolates.
type ScoreSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
}

// SummarizeScores computes a ScoreSummary. The zero summary is returned for
// no scores.
func SummarizeScores(scores []int) ScoreSummary {
	if len(scores) == 0 {
		return ScoreSummary{}
	}
	values := make([]float64, len(scores))
	lo, hi := scores[0], scores[0]
	for i, s := range scores {
		values[i] = float64(s)
		lo = min(lo, s)
		hi = max(hi, s)
	}
	return ScoreSummary{
		Count:  len(scores),
		Mean:   Mean(values),
		StdDev: StdDev(values),
		Min:    lo,
		Max:    hi,
	}
}
