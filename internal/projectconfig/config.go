// Package projectconfig provides the SelectionConfig struct and loader for
// isolate selection settings, either from a native isosel.yaml file or from
// the legacy parameters_settings.json document.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/astpanel/isosel/internal/models"
	"github.com/astpanel/isosel/internal/ranking"
	"gopkg.in/yaml.v3"
)

// Default values for selection configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultConfigFile = "isosel.yaml"

	DefaultBugdrugQuota = 0
	DefaultLowerLimit   = 0
	DefaultUpperFill    = 0
)

// DefaultDatasets are the regional datasets read when none are configured.
var DefaultDatasets = []string{models.RegionUS, models.RegionEU}

// Scenario is one "interesting" pattern the bugdrug fill looks for. SIR and
// Scale must both equal the result (Gentamicin ignores Scale); POS only
// applies to the D-test, where nil accepts any determinate outcome.
type Scenario struct {
	SIR   string     `yaml:"sir,omitempty"`
	Scale models.Tag `yaml:"scale,omitempty"`
	POS   *bool      `yaml:"pos,omitempty"`
}

// SpeciesTarget is the number of isolates wanted for one subspecies.
type SpeciesTarget struct {
	Species string `yaml:"species"`
	Count   int    `yaml:"count"`
}

// GroupConfig holds the targets of one pathogen group.
type GroupConfig struct {
	Name       string          `yaml:"name"`
	Overall    int             `yaml:"overall,omitempty"`
	Fastidious bool            `yaml:"fastidious,omitempty"`
	FillGroup  *bool           `yaml:"fill_group,omitempty"`
	Species    []SpeciesTarget `yaml:"species,omitempty"`
}

// SpeciesNames lists the subspecies of the group in configured order.
func (g *GroupConfig) SpeciesNames() []string {
	names := make([]string, len(g.Species))
	for i, s := range g.Species {
		names[i] = s.Species
	}
	return names
}

// SpeciesConfig holds the per-group species targets.
type SpeciesConfig struct {
	FillGroup *bool         `yaml:"fill_group,omitempty"`
	Groups    []GroupConfig `yaml:"groups,omitempty"`
}

// BugdrugConfig holds the bugdrug fill quota and the scenarios tried, in
// order, to meet it.
type BugdrugConfig struct {
	Enabled   *bool          `yaml:"enabled,omitempty"`
	Quota     int            `yaml:"quota,omitempty"`
	Overrides map[string]int `yaml:"overrides,omitempty"`
	Scenarios []Scenario     `yaml:"scenarios,omitempty"`
}

// Active reports whether bugdrug fill runs.
func (b BugdrugConfig) Active() bool {
	return b.Enabled != nil && *b.Enabled
}

// QuotaFor returns the quota for antibiotic, honouring per-antibiotic
// overrides.
func (b BugdrugConfig) QuotaFor(antibiotic string) int {
	if q, ok := b.Overrides[antibiotic]; ok {
		return q
	}
	return b.Quota
}

// LimitConfig is an optional count limit.
type LimitConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
	Count   int   `yaml:"count,omitempty"`
}

// Active reports whether the limit is switched on.
func (l LimitConfig) Active() bool {
	return l.Enabled != nil && *l.Enabled
}

// SelectionConfig is the top-level configuration of a selection run.
type SelectionConfig struct {
	Datasets           []string           `yaml:"datasets,omitempty"`
	KitSoftwareVersion string             `yaml:"kit_software_version,omitempty"`
	Species            SpeciesConfig      `yaml:"isolates_per_species,omitempty"`
	Bugdrug            BugdrugConfig      `yaml:"bugdrug_fill,omitempty"`
	LowerLimit         LimitConfig        `yaml:"lower_limit,omitempty"`
	UpperFill          LimitConfig        `yaml:"upper_fill,omitempty"`
	PointSystem        ranking.PointTable `yaml:"point_system,omitempty"`
}

// New returns a SelectionConfig with all defaults populated.
func New() *SelectionConfig {
	return &SelectionConfig{
		Datasets: append([]string(nil), DefaultDatasets...),
		Species: SpeciesConfig{
			FillGroup: boolPtr(false),
		},
		Bugdrug: BugdrugConfig{
			Enabled: boolPtr(false),
			Quota:   DefaultBugdrugQuota,
		},
		LowerLimit: LimitConfig{
			Enabled: boolPtr(false),
			Count:   DefaultLowerLimit,
		},
		UpperFill: LimitConfig{
			Enabled: boolPtr(false),
			Count:   DefaultUpperFill,
		},
		PointSystem: ranking.PointTable{},
	}
}

// Group returns the configuration of the named pathogen group.
func (c *SelectionConfig) Group(name string) (*GroupConfig, bool) {
	for i := range c.Species.Groups {
		if c.Species.Groups[i].Name == name {
			return &c.Species.Groups[i], true
		}
	}
	return nil, false
}

// GroupFillEnabled reports whether group fill runs for g. A group-level
// switch overrides the global one.
func (c *SelectionConfig) GroupFillEnabled(g *GroupConfig) bool {
	if g != nil && g.FillGroup != nil {
		return *g.FillGroup
	}
	return c.Species.FillGroup != nil && *c.Species.FillGroup
}

// Fastidious reports the fastidious flag of the first group with a
// subspecies whose name contains pathogen. Unknown pathogens are not
// fastidious.
func (c *SelectionConfig) Fastidious(pathogen string) bool {
	if pathogen == "" {
		return false
	}
	for _, g := range c.Species.Groups {
		for _, s := range g.Species {
			if strings.Contains(s.Species, pathogen) {
				return g.Fastidious
			}
		}
	}
	return false
}

// HasDataset reports whether region is one of the configured datasets.
func (c *SelectionConfig) HasDataset(region string) bool {
	for _, d := range c.Datasets {
		if d == region {
			return true
		}
	}
	return false
}

// Load reads the configuration at path, detects its format, fills in
// defaults and validates the result.
func Load(path string) (*SelectionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes configuration bytes in either supported format.
func Parse(data []byte) (*SelectionConfig, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	var fileCfg *SelectionConfig
	if isLegacy(&doc) {
		c, err := decodeLegacy(&doc)
		if err != nil {
			return nil, err
		}
		fileCfg = c
	} else {
		if problems := ValidateBytes(data); len(problems) > 0 {
			return nil, &ValidationError{Problems: problems}
		}
		fileCfg = &SelectionConfig{}
		if err := doc.Decode(fileCfg); err != nil {
			return nil, err
		}
	}

	cfg := New()
	mergeConfig(cfg, fileCfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find walks up from startDir (max 10 levels) looking for isosel.yaml and
// returns its path. Returns os.ErrNotExist if no config file is found.
func Find(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", startDir, err)
	}

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, DefaultConfigFile)
		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *SelectionConfig) {
	if len(src.Datasets) > 0 {
		dst.Datasets = src.Datasets
	}
	if src.KitSoftwareVersion != "" {
		dst.KitSoftwareVersion = src.KitSoftwareVersion
	}

	// Species
	if src.Species.FillGroup != nil {
		dst.Species.FillGroup = src.Species.FillGroup
	}
	if len(src.Species.Groups) > 0 {
		dst.Species.Groups = src.Species.Groups
	}

	// Bugdrug
	if src.Bugdrug.Enabled != nil {
		dst.Bugdrug.Enabled = src.Bugdrug.Enabled
	}
	if src.Bugdrug.Quota != 0 {
		dst.Bugdrug.Quota = src.Bugdrug.Quota
	}
	if src.Bugdrug.Overrides != nil {
		dst.Bugdrug.Overrides = src.Bugdrug.Overrides
	}
	if len(src.Bugdrug.Scenarios) > 0 {
		dst.Bugdrug.Scenarios = src.Bugdrug.Scenarios
	}

	// Limits
	if src.LowerLimit.Enabled != nil {
		dst.LowerLimit.Enabled = src.LowerLimit.Enabled
	}
	if src.LowerLimit.Count != 0 {
		dst.LowerLimit.Count = src.LowerLimit.Count
	}
	if src.UpperFill.Enabled != nil {
		dst.UpperFill.Enabled = src.UpperFill.Enabled
	}
	if src.UpperFill.Count != 0 {
		dst.UpperFill.Count = src.UpperFill.Count
	}

	if src.PointSystem != nil {
		dst.PointSystem = src.PointSystem
	}
}

func boolPtr(b bool) *bool {
	return &b
}
