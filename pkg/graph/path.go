package graph

import (
	"sort"
	"strings"

	"github.com/meridian-research/triad/pkg/common"
)

// PathConfig controls path discovery. SourceKeywords and OutcomeKeywords
// are matched as lowercase substrings against node IDs to pick candidate
// endpoints; MaxHops bounds path length in edges; TopK bounds how many
// paths are returned.
type PathConfig struct {
	SourceKeywords  []string
	OutcomeKeywords []string
	MaxHops         int
	TopK            int
}

// DefaultPathConfig returns the stock configuration: a materials and
// semiconductor vocabulary with 4 hops and 5 paths.
func DefaultPathConfig() PathConfig {
	return PathConfig{
		SourceKeywords: []string{
			"contamin", "particle", "metal", "ion", "precursor",
			"surface", "membrane", "material", "impurity",
		},
		OutcomeKeywords: []string{
			"yield", "loss", "failure", "degrad", "resist",
			"performance", "defect", "wafer", "corrosion",
		},
		MaxHops: 4,
		TopK:    5,
	}
}

// FindPaths discovers multi-hop paths between source-like and outcome-like
// nodes in the graph. Edges are traversed in both directions. For every
// (source, outcome) candidate pair a breadth-first search enumerates simple
// paths of at most MaxHops edges; the union of all discovered paths is
// ranked shortest first (discovery order breaking ties) and truncated to
// TopK. Each path is reported as node IDs joined with " → ".
func FindPaths(g common.DocumentGraph, cfg PathConfig) []string {
	if cfg.MaxHops <= 0 || cfg.TopK <= 0 || len(g.Nodes) == 0 {
		return nil
	}

	adjacency := make(map[string][]string)
	addEdge := func(a, b string) {
		for _, existing := range adjacency[a] {
			if existing == b {
				return
			}
		}
		adjacency[a] = append(adjacency[a], b)
	}
	for _, rel := range g.Relationships {
		addEdge(rel.Source, rel.Target)
		addEdge(rel.Target, rel.Source)
	}

	var sources, outcomes []string
	for _, node := range g.Nodes {
		id := strings.ToLower(node.ID)
		if matchesAny(id, cfg.SourceKeywords) {
			sources = append(sources, node.ID)
		}
		if matchesAny(id, cfg.OutcomeKeywords) {
			outcomes = append(outcomes, node.ID)
		}
	}

	var paths [][]string
	for _, source := range sources {
		for _, outcome := range outcomes {
			if source == outcome {
				continue
			}
			paths = append(paths, bfsPaths(adjacency, source, outcome, cfg.MaxHops)...)
		}
	}

	sort.SliceStable(paths, func(i, j int) bool {
		return len(paths[i]) < len(paths[j])
	})
	if len(paths) > cfg.TopK {
		paths = paths[:cfg.TopK]
	}

	rendered := make([]string, len(paths))
	for i, path := range paths {
		rendered[i] = strings.Join(path, " → ")
	}
	return rendered
}

func matchesAny(id string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(id, kw) {
			return true
		}
	}
	return false
}

// bfsPaths enumerates simple paths from start to goal with at most maxHops
// edges, in breadth-first order.
func bfsPaths(adjacency map[string][]string, start, goal string, maxHops int) [][]string {
	type state struct {
		node string
		path []string
	}

	var found [][]string
	queue := []state{{node: start, path: []string{start}}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.node == goal {
			found = append(found, current.path)
			continue
		}
		if len(current.path)-1 >= maxHops {
			continue
		}
		for _, next := range adjacency[current.node] {
			if containsNode(current.path, next) {
				continue
			}
			path := make([]string, len(current.path), len(current.path)+1)
			copy(path, current.path)
			queue = append(queue, state{node: next, path: append(path, next)})
		}
	}
	return found
}

func containsNode(path []string, node string) bool {
	for _, p := range path {
		if p == node {
			return true
		}
	}
	return false
}
