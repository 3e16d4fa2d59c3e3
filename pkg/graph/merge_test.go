package graph

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/meridian-research/triad/pkg/common"
)

func TestMergeChunkGraphs(t *testing.T) {
	results := []ChunkResult{
		{
			Index: 0,
			Graph: common.ChunkGraph{
				Nodes: []common.Node{
					{ID: "HF", Type: "Chemical"},
					{ID: "Etching", Type: "Process"},
				},
				Relationships: []common.Relationship{
					{Source: "HF", Target: "Etching", Type: "USED_IN"},
				},
			},
		},
		{
			Index: 1,
			Graph: common.ChunkGraph{
				Nodes: []common.Node{
					{ID: "HF", Type: "Material"}, // later type disagreement loses
					{ID: "Wafer", Type: "Device"},
				},
				Relationships: []common.Relationship{
					{Source: "HF", Target: "Etching", Type: "USED_IN"}, // duplicate triple
					{Source: "Etching", Target: "Wafer", Type: "IMPACTS"},
					{Source: "Wafer", Target: "Yield Loss", Type: "CAUSES"}, // dangling target kept
				},
			},
		},
	}

	merged, err := MergeChunkGraphs(results)
	if err != nil {
		t.Fatalf("MergeChunkGraphs() error = %v", err)
	}

	wantNodes := []common.Node{
		{ID: "HF", Type: "Chemical"},
		{ID: "Etching", Type: "Process"},
		{ID: "Wafer", Type: "Device"},
	}
	if !reflect.DeepEqual(merged.Nodes, wantNodes) {
		t.Errorf("nodes = %+v, want %+v", merged.Nodes, wantNodes)
	}

	wantRels := []common.Relationship{
		{Source: "HF", Target: "Etching", Type: "USED_IN"},
		{Source: "Etching", Target: "Wafer", Type: "IMPACTS"},
		{Source: "Wafer", Target: "Yield Loss", Type: "CAUSES"},
	}
	if !reflect.DeepEqual(merged.Relationships, wantRels) {
		t.Errorf("relationships = %+v, want %+v", merged.Relationships, wantRels)
	}
}

func TestMergeChunkGraphsIdempotent(t *testing.T) {
	graph := common.ChunkGraph{
		Nodes:         []common.Node{{ID: "A", Type: "Concept"}},
		Relationships: []common.Relationship{{Source: "A", Target: "B", Type: "RELATES_TO"}},
	}
	once, err := MergeChunkGraphs([]ChunkResult{{Graph: graph}})
	if err != nil {
		t.Fatal(err)
	}
	twice, err := MergeChunkGraphs([]ChunkResult{{Graph: graph}, {Index: 1, Graph: graph}})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("merging the same chunk twice changed the result: %+v vs %+v", once, twice)
	}
}

func TestMergeChunkGraphsPartialFailure(t *testing.T) {
	results := []ChunkResult{
		{Index: 0, Err: errors.New("model unavailable")},
		{Index: 1, Graph: common.ChunkGraph{Nodes: []common.Node{{ID: "A", Type: "Concept"}}}},
	}
	merged, err := MergeChunkGraphs(results)
	if err != nil {
		t.Fatalf("one surviving chunk should not fail the merge: %v", err)
	}
	if len(merged.Nodes) != 1 {
		t.Errorf("nodes = %+v, want the surviving chunk's node", merged.Nodes)
	}
}

func TestMergeChunkGraphsAllFailed(t *testing.T) {
	results := []ChunkResult{
		{Index: 0, Err: errors.New("timeout")},
		{Index: 1, Err: errors.New("bad json")},
	}
	_, err := MergeChunkGraphs(results)
	var noGraph *NoGraphExtractedError
	if !errors.As(err, &noGraph) {
		t.Fatalf("error = %v, want NoGraphExtractedError", err)
	}
	if len(noGraph.Errs) != 2 {
		t.Errorf("retained %d chunk errors, want 2", len(noGraph.Errs))
	}
	msg := fmt.Sprint(err)
	if msg == "" {
		t.Error("error message should not be empty")
	}
}

func TestMergeChunkGraphsEmptyInput(t *testing.T) {
	merged, err := MergeChunkGraphs(nil)
	if err != nil {
		t.Fatalf("MergeChunkGraphs(nil) error = %v", err)
	}
	if len(merged.Nodes) != 0 || len(merged.Relationships) != 0 {
		t.Errorf("expected empty graph, got %+v", merged)
	}
}
