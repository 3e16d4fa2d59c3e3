package graph

import (
	"reflect"
	"strings"
	"testing"

	"github.com/meridian-research/triad/pkg/common"
)

func lineGraph(ids ...string) common.DocumentGraph {
	var g common.DocumentGraph
	for _, id := range ids {
		g.Nodes = append(g.Nodes, common.Node{ID: id, Type: "Concept"})
	}
	for i := 0; i < len(ids)-1; i++ {
		g.Relationships = append(g.Relationships, common.Relationship{
			Source: ids[i], Target: ids[i+1], Type: "LEADS_TO",
		})
	}
	return g
}

func TestFindPathsLineGraph(t *testing.T) {
	g := lineGraph("Metal Contamination", "Etch Chamber", "Yield Loss")
	got := FindPaths(g, DefaultPathConfig())
	want := []string{"Metal Contamination → Etch Chamber → Yield Loss"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindPaths() = %v, want %v", got, want)
	}
}

func TestFindPathsUndirected(t *testing.T) {
	// Edge declared outcome → source still yields a source-to-outcome path.
	g := common.DocumentGraph{
		Nodes: []common.Node{
			{ID: "Yield Loss", Type: "Metric"},
			{ID: "Particle Source", Type: "Material"},
		},
		Relationships: []common.Relationship{
			{Source: "Yield Loss", Target: "Particle Source", Type: "CAUSED_BY"},
		},
	}
	got := FindPaths(g, DefaultPathConfig())
	want := []string{"Particle Source → Yield Loss"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindPaths() = %v, want %v", got, want)
	}
}

func TestFindPathsMaxHops(t *testing.T) {
	// 5 edges between the endpoints: excluded with maxHops 4, included with 5.
	g := lineGraph("Contamination", "A", "B", "C", "D", "Yield")

	cfg := DefaultPathConfig()
	cfg.MaxHops = 4
	if got := FindPaths(g, cfg); len(got) != 0 {
		t.Errorf("FindPaths() with maxHops=4 = %v, want none", got)
	}

	cfg.MaxHops = 5
	if got := FindPaths(g, cfg); len(got) != 1 {
		t.Errorf("FindPaths() with maxHops=5 = %v, want one path", got)
	}
}

func TestFindPathsShortestFirstAndTopK(t *testing.T) {
	// Two routes from Contamination to Yield: direct and via Chamber.
	g := common.DocumentGraph{
		Nodes: []common.Node{
			{ID: "Contamination", Type: "Concept"},
			{ID: "Chamber", Type: "Device"},
			{ID: "Yield", Type: "Metric"},
		},
		Relationships: []common.Relationship{
			{Source: "Contamination", Target: "Chamber", Type: "OCCURS_IN"},
			{Source: "Chamber", Target: "Yield", Type: "IMPACTS"},
			{Source: "Contamination", Target: "Yield", Type: "REDUCES"},
		},
	}

	cfg := DefaultPathConfig()
	got := FindPaths(g, cfg)
	if len(got) != 2 {
		t.Fatalf("FindPaths() = %v, want 2 paths", got)
	}
	if strings.Count(got[0], "→") >= strings.Count(got[1], "→") {
		t.Errorf("paths not sorted shortest first: %v", got)
	}

	cfg.TopK = 1
	if got := FindPaths(g, cfg); len(got) != 1 {
		t.Errorf("FindPaths() with topK=1 = %v, want 1 path", got)
	}
}

func TestFindPathsNoKeywordMatch(t *testing.T) {
	g := lineGraph("Alpha", "Beta", "Gamma")
	if got := FindPaths(g, DefaultPathConfig()); len(got) != 0 {
		t.Errorf("FindPaths() = %v, want none without keyword matches", got)
	}
}

func TestFindPathsCustomKeywords(t *testing.T) {
	g := lineGraph("Alpha", "Beta", "Gamma")
	cfg := PathConfig{
		SourceKeywords:  []string{"alpha"},
		OutcomeKeywords: []string{"gamma"},
		MaxHops:         4,
		TopK:            5,
	}
	want := []string{"Alpha → Beta → Gamma"}
	if got := FindPaths(g, cfg); !reflect.DeepEqual(got, want) {
		t.Errorf("FindPaths() = %v, want %v", got, want)
	}
}
