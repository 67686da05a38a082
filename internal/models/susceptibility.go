package models

import (
	"strconv"
	"strings"
)

// Sign is the comparison operator reported in front of an MIC value.
type Sign string

const (
	SignNone         Sign = ""
	SignLess         Sign = "<"
	SignLessEqual    Sign = "<="
	SignEqual        Sign = "="
	SignGreater      Sign = ">"
	SignGreaterEqual Sign = ">="
)

// Valid reports whether s is one of the known comparison operators.
func (s Sign) Valid() bool {
	switch s {
	case SignNone, SignLess, SignLessEqual, SignEqual, SignGreater, SignGreaterEqual:
		return true
	}
	return false
}

// IsInequality is true for signs containing < or >.
func (s Sign) IsInequality() bool {
	return strings.ContainsAny(string(s), "<>")
}

// Tag is the fourth field of a classified result. For ordinary antibiotics it
// holds the scale; for the D-test it holds the POS/NEG outcome.
type Tag string

const (
	TagOnScale       Tag = "on-scale"
	TagOffScale      Tag = "off-scale"
	TagPositive      Tag = "POS"
	TagNegative      Tag = "NEG"
	TagIndeterminate Tag = "-"
)

// Determinate is true for POS and NEG.
func (t Tag) Determinate() bool {
	return t == TagPositive || t == TagNegative
}

// Common susceptibility categories. Reports may carry other tokens
// (e.g. Missing_BP); Category is therefore an open string.
const (
	CategorySusceptible  = "S"
	CategoryIntermediate = "I"
	CategoryResistant    = "R"
	CategoryMissingBP    = "Missing_BP"
)

// Result is one classified report cell. The zero value is the absent
// sentinel: the cell held no numeric result.
type Result struct {
	Category string  `json:"category,omitempty"`
	Sign     Sign    `json:"sign,omitempty"`
	Value    float64 `json:"value,omitempty"`
	Text     string  `json:"text,omitempty"`
	Tag      Tag     `json:"tag,omitempty"`
}

// IsAbsent reports whether r is the "not tested / not applicable" sentinel.
func (r Result) IsAbsent() bool {
	return r.Category == ""
}

// Equal compares the reported fields. Value is derived from Text.
func (r Result) Equal(o Result) bool {
	return r.Category == o.Category && r.Sign == o.Sign && r.Text == o.Text && r.Tag == o.Tag
}

// String renders the result the way lab reports write it, e.g. "R >32 off-scale".
func (r Result) String() string {
	if r.IsAbsent() {
		return "absent"
	}
	return r.Category + " " + string(r.Sign) + r.Text + " " + string(r.Tag)
}

// FormatValue renders an MIC value without trailing zeros.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
