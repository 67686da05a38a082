package tables

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type entry struct {
	key   string
	value *yaml.Node
}

// documentMapping parses data and returns the entries of its top-level
// mapping in document order.
func documentMapping(data []byte) ([]entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	return mappingEntries(doc.Content[0])
}

func mappingEntries(n *yaml.Node) ([]entry, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping", n.Line)
	}
	entries := make([]entry, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		entries = append(entries, entry{key: n.Content[i].Value, value: n.Content[i+1]})
	}
	return entries, nil
}
