package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/meridian-research/triad/pkg/ai"
	"github.com/meridian-research/triad/pkg/common"
	"github.com/meridian-research/triad/pkg/logger"
)

// DefaultEntityTypes is the entity vocabulary used when a GraphClient is
// constructed without an explicit list.
var DefaultEntityTypes = []string{
	"Company", "Person", "Technology", "Process", "Material",
	"Device", "Chemical", "Concept", "Field", "Metric", "Tool",
}

// ExtractFromChunk runs one extraction call for a single text chunk and
// parses the reply into a ChunkGraph. The model reply is treated as
// untrusted text: the first balanced JSON object is located wherever it
// sits, the two top-level keys must be arrays, and individual items that
// lack required fields are dropped with a warning rather than failing the
// whole chunk.
func ExtractFromChunk(ctx context.Context, aiClient ai.Client, chunk string, entityTypes []string) (common.ChunkGraph, error) {
	if len(entityTypes) == 0 {
		entityTypes = DefaultEntityTypes
	}
	types := strings.Join(entityTypes, ", ")
	system := fmt.Sprintf(ai.ExtractPrompt, types, types)

	reply, err := aiClient.GenerateCompletion(ctx, chunk,
		ai.WithSystemPrompts(system),
		ai.WithTemperature(0.1),
	)
	if err != nil {
		return common.ChunkGraph{}, fmt.Errorf("extraction call failed: %w", err)
	}

	return parseChunkGraph(reply)
}

func parseChunkGraph(reply string) (common.ChunkGraph, error) {
	raw := ai.ExtractJSONObject(reply)
	if raw == "" {
		return common.ChunkGraph{}, &ExtractionParseError{Raw: reply}
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(raw)
		if repairErr != nil || json.Unmarshal([]byte(repaired), &payload) != nil {
			return common.ChunkGraph{}, &ExtractionParseError{Raw: reply, Err: err}
		}
	}

	nodeItems, err := decodeItems(payload["nodes"])
	if err != nil {
		return common.ChunkGraph{}, &ExtractionShapeError{Raw: reply}
	}
	relItems, err := decodeItems(payload["relationships"])
	if err != nil {
		return common.ChunkGraph{}, &ExtractionShapeError{Raw: reply}
	}

	var graph common.ChunkGraph
	for _, item := range nodeItems {
		id, okID := stringField(item, "id")
		typ, okType := stringField(item, "type")
		if !okID || !okType || id == "" {
			logger.Warn("Dropping malformed node from extraction result", "item", item)
			continue
		}
		graph.Nodes = append(graph.Nodes, common.Node{ID: id, Type: typ})
	}
	for _, item := range relItems {
		source, okSource := stringField(item, "source")
		target, okTarget := stringField(item, "target")
		typ, okType := stringField(item, "type")
		if !okSource || !okTarget || !okType || source == "" || target == "" {
			logger.Warn("Dropping malformed relationship from extraction result", "item", item)
			continue
		}
		graph.Relationships = append(graph.Relationships, common.Relationship{
			Source: source,
			Target: target,
			Type:   typ,
		})
	}
	return graph, nil
}

// decodeItems decodes a top-level extraction key into a list of objects.
// A missing key is an empty list; a present key that is not an array is a
// shape error.
func decodeItems(raw json.RawMessage) ([]map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func stringField(item map[string]any, key string) (string, bool) {
	value, ok := item[key].(string)
	return value, ok
}
