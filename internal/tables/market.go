package tables

import (
	"fmt"
	"os"
)

// LoadMarketPriority reads a market priority table and returns the pathogen
// group processing order.
func LoadMarketPriority(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("market priority: read %s: %w", path, err)
	}
	groups, err := ParseMarketPriority(data)
	if err != nil {
		return nil, fmt.Errorf("market priority: parse %s: %w", path, err)
	}
	return groups, nil
}

// ParseMarketPriority flattens the group keys of every market, dropping
// repeats and keeping the order in which each group is first seen.
func ParseMarketPriority(data []byte) ([]string, error) {
	markets, err := documentMapping(data)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var order []string
	for _, m := range markets {
		groups, err := mappingEntries(m.value)
		if err != nil {
			return nil, fmt.Errorf("market %q: %w", m.key, err)
		}
		for _, g := range groups {
			if seen[g.key] {
				continue
			}
			seen[g.key] = true
			order = append(order, g.key)
		}
	}
	return order, nil
}
