package reporting

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/astpanel/isosel/internal/metrics"
	"github.com/astpanel/isosel/internal/models"
)

// Summary is the digest of a selection run printed at the end of `select`.
type Summary struct {
	RunID     string               `json:"run_id"`
	Pool      int                  `json:"pool"`
	Chosen    int                  `json:"chosen"`
	Halted    bool                 `json:"halted"`
	Errors    int                  `json:"errors"`
	Scores    metrics.ScoreSummary `json:"scores"`
	Pathogens []PathogenCount      `json:"pathogens"`
	Quotas    []models.Quota       `json:"quotas"`
}

// PathogenCount is the number of chosen isolates of one pathogen.
type PathogenCount struct {
	Pathogen string `json:"pathogen"`
	Chosen   int    `json:"chosen"`
}

// Summarize builds a Summary. Pathogens are listed in the order their first
// isolate was chosen.
func Summarize(runID string, pool, chosen []*models.RankedIsolate, log models.ErrorLog, quotas []models.Quota, halted bool) *Summary {
	s := &Summary{
		RunID:  runID,
		Pool:   len(pool),
		Chosen: len(chosen),
		Halted: halted,
		Errors: len(log),
		Quotas: quotas,
	}

	scores := make([]int, len(chosen))
	index := map[string]int{}
	for i, ri := range chosen {
		scores[i] = ri.Score
		pos, ok := index[ri.Pathogen]
		if !ok {
			pos = len(s.Pathogens)
			index[ri.Pathogen] = pos
			s.Pathogens = append(s.Pathogens, PathogenCount{Pathogen: ri.Pathogen})
		}
		s.Pathogens[pos].Chosen++
	}
	s.Scores = metrics.SummarizeScores(scores)
	return s
}

// Shortfalls returns the number of quotas that were not met.
func (s *Summary) Shortfalls() int {
	n := 0
	for _, q := range s.Quotas {
		if q.Shortfall {
			n++
		}
	}
	return n
}

// WriteSummary renders the summary as aligned text. width caps the pathogen
// column; zero means unlimited.
func WriteSummary(w io.Writer, s *Summary, width int) error {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	p.Fprintf(&b, "Run %s\n", s.RunID)
	p.Fprintf(&b, "Chosen %d of %d isolates", s.Chosen, s.Pool)
	if s.Halted {
		b.WriteString(" (lower limit reached)")
	}
	b.WriteString("\n")
	if s.Scores.Count > 0 {
		p.Fprintf(&b, "Rank score: mean %.1f, sd %.1f, range %d to %d\n",
			s.Scores.Mean, s.Scores.StdDev, s.Scores.Min, s.Scores.Max)
	}

	if len(s.Pathogens) > 0 {
		col := 0
		for _, pc := range s.Pathogens {
			col = max(col, runewidth.StringWidth(pc.Pathogen))
		}
		if width > 0 {
			col = min(col, width)
		}
		b.WriteString("\n")
		for _, pc := range s.Pathogens {
			name := runewidth.Truncate(pc.Pathogen, col, "…")
			p.Fprintf(&b, "  %s  %d\n", padRight(name, col), pc.Chosen)
		}
	}

	if short := s.Shortfalls(); short > 0 {
		p.Fprintf(&b, "\n%d of %d quotas not met, %d diagnostics logged\n", short, len(s.Quotas), s.Errors)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
