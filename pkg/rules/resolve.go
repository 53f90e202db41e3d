package rules

import (
	"fmt"

	"github.com/heimdalr/dag"
)

// ResolveExtends validates the extends relationships between packs and
// returns each pack's effective rule list: parents' rules in declaration
// order, then the pack's own. A parent reached through several paths
// contributes its rules once.
func ResolveExtends(packs map[string]*Pack) (map[string][]Rule, error) {
	graph := dag.NewDAG()

	for name := range packs {
		if err := graph.AddVertexByID(name, name); err != nil {
			return nil, fmt.Errorf("failed to add pack %s: %w", name, err)
		}
	}

	for name, pack := range packs {
		for _, parent := range pack.Extends {
			if _, exists := packs[parent]; !exists {
				return nil, fmt.Errorf("%w: %s extends %s", ErrUnknownParentPack, name, parent)
			}

			// AddEdge returns an error if it would create a cycle
			if err := graph.AddEdge(parent, name); err != nil {
				return nil, fmt.Errorf("%w: %s extends %s: %v", ErrExtendsCycle, name, parent, err)
			}
		}
	}

	resolved := make(map[string][]Rule, len(packs))

	for name := range packs {
		visited := make(map[string]bool)
		resolved[name] = collectRules(name, packs, visited)
	}

	return resolved, nil
}

func collectRules(name string, packs map[string]*Pack, visited map[string]bool) []Rule {
	if visited[name] {
		return nil
	}
	visited[name] = true

	pack := packs[name]

	var rules []Rule

	for _, parent := range pack.Extends {
		rules = append(rules, collectRules(parent, packs, visited)...)
	}

	return append(rules, pack.Rules...)
}
