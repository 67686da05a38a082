package susceptibility

import (
	"log/slog"
	"math"

	"github.com/astpanel/isosel/internal/models"
	"github.com/astpanel/isosel/internal/tables"
)

// Antibiotic columns with dedicated rules.
const (
	Gentamicin   = "Gentamicin"
	DTestColumn  = "D-test"
	Clindamycin  = "Clindamycin"
	Erythromycin = "Erythromycin"
)

// Companions carries the categories of the antibiotics the D-test outcome
// depends on, taken from the same isolate row.
type Companions struct {
	Clindamycin  string
	Erythromycin string
}

// Classifier turns raw cells into results for one kit software version.
type Classifier struct {
	Kit           string
	Ranges        tables.Ranges
	Abbreviations tables.Abbreviations
}

// Classify interprets one report cell for antibiotic. Only malformed cells
// return an error; missing range configuration leaves the value unclamped.
func (c *Classifier) Classify(cell, antibiotic string, fastidious bool, comp Companions) (models.Result, error) {
	p, err := ParseCell(cell)
	if err != nil {
		return models.Result{}, err
	}
	if p.Absent() {
		return models.Result{}, nil
	}

	r := models.Result{
		Category: p.Category,
		Sign:     p.Sign,
		Value:    p.Value,
		Text:     p.Text,
		Tag:      ScaleOf(antibiotic, p.Sign),
	}

	if antibiotic == DTestColumn {
		r.Tag = DTest(r.Category, comp.Clindamycin, comp.Erythromycin)
		return r, nil
	}

	rg, ok := c.reportableRange(antibiotic, fastidious)
	if !ok {
		return r, nil
	}
	return Clamp(r, rg), nil
}

func (c *Classifier) reportableRange(antibiotic string, fastidious bool) (tables.Range, bool) {
	if c == nil || c.Kit == "" {
		return tables.Range{}, false
	}
	key, ok := c.Abbreviations.RangeKey(antibiotic)
	if !ok {
		slog.Debug("No range key for antibiotic", "antibiotic", antibiotic)
		return tables.Range{}, false
	}
	rg, ok := c.Ranges.Lookup(c.Kit, key, fastidious)
	if !ok {
		slog.Debug("No reportable range", "kit", c.Kit, "key", key, "fastidious", fastidious)
	}
	return rg, ok
}

// ScaleOf gives the scale implied by the reported sign. Gentamicin is always
// treated as on-scale.
func ScaleOf(antibiotic string, sign models.Sign) models.Tag {
	if antibiotic != Gentamicin && sign.IsInequality() {
		return models.TagOffScale
	}
	return models.TagOnScale
}

// Clamp pulls a value outside the reportable range back to the range
// boundary. Boundaries are truncated to integers when above 1. An exact
// ("=") result that had to be clamped becomes an off-scale inequality;
// results that already carry an inequality keep their sign.
func Clamp(r models.Result, rg tables.Range) models.Result {
	if r.IsAbsent() {
		return r
	}
	if r.Value <= rg.Low {
		if rg.Low > 1 {
			r = withValue(r, math.Floor(rg.Low))
		}
		if r.Sign == models.SignEqual {
			r.Sign = models.SignLessEqual
			r.Tag = models.TagOffScale
		}
	}
	if r.Value > rg.High {
		if rg.High > 1 {
			r = withValue(r, math.Floor(rg.High))
		}
		if r.Sign == models.SignEqual {
			r.Sign = models.SignGreater
			r.Tag = models.TagOffScale
		}
	}
	return r
}

func withValue(r models.Result, v float64) models.Result {
	r.Value = v
	r.Text = models.FormatValue(v)
	return r
}
