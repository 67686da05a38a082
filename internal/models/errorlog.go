package models

import "fmt"

// ErrorScope identifies which selection phase produced a diagnostic.
type ErrorScope string

const (
	ScopeSpecies ErrorScope = "species"
	ScopeBugdrug ErrorScope = "bugdrug"
	ScopeGroup   ErrorScope = "group"
)

// ErrorRecord is one quota shortfall diagnostic. Shortfalls never fail a run.
type ErrorRecord struct {
	Scope   ErrorScope `json:"scope"`
	Subject string     `json:"subject"`
	Message string     `json:"message"`
}

// String matches the line format of the error dump: "<subject>: <message>".
func (e ErrorRecord) String() string {
	return fmt.Sprintf("%s: %s", e.Subject, e.Message)
}

// ErrorLog is an append-only list of diagnostics.
type ErrorLog []ErrorRecord

// With returns a log with rec appended, leaving l untouched.
func (l ErrorLog) With(rec ErrorRecord) ErrorLog {
	out := make(ErrorLog, len(l), len(l)+1)
	copy(out, l)
	return append(out, rec)
}

// Count returns the number of records with the given scope.
func (l ErrorLog) Count(scope ErrorScope) int {
	n := 0
	for _, r := range l {
		if r.Scope == scope {
			n++
		}
	}
	return n
}

// Quota is the outcome of one quota evaluated by the selection pipeline.
// Shortfall is set exactly when a matching ErrorRecord was logged.
type Quota struct {
	Scope     ErrorScope `json:"scope"`
	Subject   string     `json:"subject"`
	Target    int        `json:"target"`
	Selected  int        `json:"selected"`
	Shortfall bool       `json:"shortfall,omitempty"`
}
