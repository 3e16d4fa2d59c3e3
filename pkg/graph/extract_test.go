package graph

import (
	"errors"
	"reflect"
	"testing"

	"github.com/meridian-research/triad/pkg/common"
)

func TestParseChunkGraph(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  common.ChunkGraph
	}{
		{
			name:  "bare object",
			reply: `{"nodes": [{"id": "HF", "type": "Chemical"}], "relationships": []}`,
			want: common.ChunkGraph{
				Nodes: []common.Node{{ID: "HF", Type: "Chemical"}},
			},
		},
		{
			name:  "wrapped in prose and fences",
			reply: "Sure, here is the graph:\n```json\n{\"nodes\": [{\"id\": \"Etching\", \"type\": \"Process\"}], \"relationships\": [{\"source\": \"HF\", \"target\": \"Etching\", \"type\": \"USED_IN\"}]}\n```\nLet me know!",
			want: common.ChunkGraph{
				Nodes:         []common.Node{{ID: "Etching", Type: "Process"}},
				Relationships: []common.Relationship{{Source: "HF", Target: "Etching", Type: "USED_IN"}},
			},
		},
		{
			name:  "missing keys treated as empty",
			reply: `{"nodes": [{"id": "A", "type": "Concept"}]}`,
			want: common.ChunkGraph{
				Nodes: []common.Node{{ID: "A", Type: "Concept"}},
			},
		},
		{
			name: "malformed items dropped",
			reply: `{"nodes": [{"id": "A", "type": "Concept"}, {"type": "Concept"}, {"id": 42, "type": "Concept"}],
				"relationships": [{"source": "A", "target": "B", "type": "RELATES_TO"}, {"source": "A"}]}`,
			want: common.ChunkGraph{
				Nodes:         []common.Node{{ID: "A", Type: "Concept"}},
				Relationships: []common.Relationship{{Source: "A", Target: "B", Type: "RELATES_TO"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseChunkGraph(tt.reply)
			if err != nil {
				t.Fatalf("parseChunkGraph() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseChunkGraph() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseChunkGraphErrors(t *testing.T) {
	t.Run("no JSON object", func(t *testing.T) {
		_, err := parseChunkGraph("I could not find any entities in this text.")
		var parseErr *ExtractionParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("error = %v, want ExtractionParseError", err)
		}
		if parseErr.Raw == "" {
			t.Error("ExtractionParseError should retain the raw reply")
		}
	})

	t.Run("nodes not a list", func(t *testing.T) {
		_, err := parseChunkGraph(`{"nodes": "none", "relationships": []}`)
		var shapeErr *ExtractionShapeError
		if !errors.As(err, &shapeErr) {
			t.Fatalf("error = %v, want ExtractionShapeError", err)
		}
	})

	t.Run("relationships not a list", func(t *testing.T) {
		_, err := parseChunkGraph(`{"nodes": [], "relationships": {"source": "A"}}`)
		var shapeErr *ExtractionShapeError
		if !errors.As(err, &shapeErr) {
			t.Fatalf("error = %v, want ExtractionShapeError", err)
		}
	})
}
