package projectconfig

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/astpanel/isosel/internal/models"
	"github.com/astpanel/isosel/internal/ranking"
	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// Keys of the legacy parameters_settings.json document.
const (
	legacyDatasets       = "Datasets"
	legacyKit            = "Kit Software Version"
	legacySpecies        = "Isolates per species"
	legacyFillGroup      = "Fill group"
	legacyOverall        = "Overall"
	legacyFastidious     = "Fastidious"
	legacyBugdrugFill    = "Bugdrug fill"
	legacyRequirement    = "Bugdrug fill requirements "
	legacyLowerLimit     = "Lower limit"
	legacyUpperFill      = "Upper fill"
	legacyPointSystem    = "Point system"
	legacyFastidiousWord = "Fastidious"
)

// legacyScenario is one "Bugdrug fill requirements N" block. POS is true,
// false or "" (no requirement).
type legacyScenario struct {
	SIR   string `mapstructure:"SIR"`
	Scale string `mapstructure:"scale"`
	POS   any    `mapstructure:"POS"`
}

func isLegacy(doc *yaml.Node) bool {
	root := documentRoot(doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == legacySpecies {
			return true
		}
	}
	return false
}

func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0]
	}
	if doc.Kind == 0 {
		return nil
	}
	return doc
}

// decodeLegacy converts the legacy settings document. Group and subspecies
// order follow the document.
func decodeLegacy(doc *yaml.Node) (*SelectionConfig, error) {
	root := documentRoot(doc)
	cfg := &SelectionConfig{}
	requirements := map[int]*yaml.Node{}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i].Value, root.Content[i+1]
		var err error
		switch {
		case key == legacyDatasets:
			err = value.Decode(&cfg.Datasets)
		case key == legacyKit:
			cfg.KitSoftwareVersion = value.Value
		case key == legacySpecies:
			err = decodeLegacySpecies(value, &cfg.Species)
		case key == legacyBugdrugFill:
			var enabled bool
			enabled, cfg.Bugdrug.Quota, err = decodeSwitch(value)
			cfg.Bugdrug.Enabled = boolPtr(enabled)
		case strings.HasPrefix(key, legacyRequirement):
			n, convErr := strconv.Atoi(strings.TrimPrefix(key, legacyRequirement))
			if convErr != nil {
				slog.Warn("Ignoring bugdrug requirement with non-numeric index", "key", key)
				continue
			}
			requirements[n] = value
		case key == legacyLowerLimit:
			cfg.LowerLimit, err = decodeLimit(value)
		case key == legacyUpperFill:
			cfg.UpperFill, err = decodeLimit(value)
		case key == legacyPointSystem:
			cfg.PointSystem, err = decodePoints(value)
		default:
			slog.Debug("Ignoring unknown settings key", "key", key)
		}
		if err != nil {
			return nil, fmt.Errorf("%q: %w", key, err)
		}
	}

	scenarios, err := decodeRequirements(requirements)
	if err != nil {
		return nil, err
	}
	cfg.Bugdrug.Scenarios = scenarios
	return cfg, nil
}

func decodeLegacySpecies(n *yaml.Node, out *SpeciesConfig) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i].Value, n.Content[i+1]
		if key == legacyFillGroup {
			var fill bool
			if err := value.Decode(&fill); err != nil {
				return fmt.Errorf("%q: %w", key, err)
			}
			out.FillGroup = boolPtr(fill)
			continue
		}
		g, err := decodeLegacyGroup(key, value)
		if err != nil {
			return fmt.Errorf("group %q: %w", key, err)
		}
		out.Groups = append(out.Groups, g)
	}
	return nil
}

func decodeLegacyGroup(name string, n *yaml.Node) (GroupConfig, error) {
	g := GroupConfig{Name: name}
	if n.Kind != yaml.MappingNode {
		return g, fmt.Errorf("line %d: expected a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i].Value, n.Content[i+1]
		var raw any
		if err := value.Decode(&raw); err != nil {
			return g, fmt.Errorf("%q: %w", key, err)
		}
		switch key {
		case legacyOverall:
			if err := mapstructure.WeakDecode(raw, &g.Overall); err != nil {
				return g, fmt.Errorf("%q: %w", key, err)
			}
		case legacyFastidious:
			g.Fastidious = parseFastidious(raw)
		case legacyFillGroup:
			var fill bool
			if err := mapstructure.WeakDecode(raw, &fill); err != nil {
				return g, fmt.Errorf("%q: %w", key, err)
			}
			g.FillGroup = boolPtr(fill)
		default:
			t := SpeciesTarget{Species: key}
			if err := mapstructure.WeakDecode(raw, &t.Count); err != nil {
				return g, fmt.Errorf("%q: %w", key, err)
			}
			g.Species = append(g.Species, t)
		}
	}
	return g, nil
}

// parseFastidious accepts a boolean or the words used by the settings
// document ("Fastidious" / "Non-fastidious").
func parseFastidious(raw any) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), legacyFastidiousWord)
	}
	return false
}

// decodeSwitch reads the [enabled, count] pairs of the legacy document.
func decodeSwitch(n *yaml.Node) (bool, int, error) {
	var pair []any
	if err := n.Decode(&pair); err != nil {
		return false, 0, err
	}
	if len(pair) != 2 {
		return false, 0, fmt.Errorf("line %d: expected [enabled, count], got %d elements", n.Line, len(pair))
	}
	var enabled bool
	var count int
	if err := mapstructure.WeakDecode(pair[0], &enabled); err != nil {
		return false, 0, fmt.Errorf("enabled flag: %w", err)
	}
	if err := mapstructure.WeakDecode(pair[1], &count); err != nil {
		return false, 0, fmt.Errorf("count: %w", err)
	}
	return enabled, count, nil
}

func decodeLimit(n *yaml.Node) (LimitConfig, error) {
	enabled, count, err := decodeSwitch(n)
	if err != nil {
		return LimitConfig{}, err
	}
	return LimitConfig{Enabled: boolPtr(enabled), Count: count}, nil
}

func decodePoints(n *yaml.Node) (ranking.PointTable, error) {
	var raw map[string]any
	if err := n.Decode(&raw); err != nil {
		return nil, err
	}
	points := ranking.PointTable{}
	if err := mapstructure.WeakDecode(raw, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// decodeRequirements collects scenarios 1, 2, ... in order and stops at the
// first missing index.
func decodeRequirements(blocks map[int]*yaml.Node) ([]Scenario, error) {
	var scenarios []Scenario
	n := 1
	for ; ; n++ {
		node, ok := blocks[n]
		if !ok {
			break
		}
		var raw map[string]any
		if err := node.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%q: %w", legacyRequirement+strconv.Itoa(n), err)
		}
		var ls legacyScenario
		if err := mapstructure.Decode(raw, &ls); err != nil {
			return nil, fmt.Errorf("%q: %w", legacyRequirement+strconv.Itoa(n), err)
		}
		pos, err := parsePOS(ls.POS)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", legacyRequirement+strconv.Itoa(n), err)
		}
		scenarios = append(scenarios, Scenario{SIR: ls.SIR, Scale: models.Tag(ls.Scale), POS: pos})
	}

	if len(blocks) >= n {
		var skipped []int
		for k := range blocks {
			if k >= n || k < 1 {
				skipped = append(skipped, k)
			}
		}
		sort.Ints(skipped)
		slog.Warn("Ignoring bugdrug requirements after a gap in numbering", "indices", skipped)
	}
	return scenarios, nil
}

func parsePOS(v any) (*bool, error) {
	switch p := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return boolPtr(p), nil
	case string:
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "":
			return nil, nil
		case "true", "pos":
			return boolPtr(true), nil
		case "false", "neg":
			return boolPtr(false), nil
		}
	}
	return nil, fmt.Errorf("POS must be true, false or \"\", got %v", v)
}
