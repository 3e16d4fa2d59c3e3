package graph

import (
	"github.com/meridian-research/triad/pkg/common"
	"github.com/meridian-research/triad/pkg/logger"
)

// ChunkResult holds the outcome of extracting one chunk. Exactly one of
// Graph and Err is meaningful.
type ChunkResult struct {
	Index int
	Graph common.ChunkGraph
	Err   error
}

// MergeChunkGraphs folds per-chunk extraction results into a single
// document graph. Results are processed in chunk order: the first
// occurrence of a node ID wins and later type disagreements are ignored,
// while relationships are deduplicated on the full (source, target, type)
// triple. Failed chunks are skipped; the merge only fails, with a
// NoGraphExtractedError carrying every chunk error, when no chunk
// succeeded.
func MergeChunkGraphs(results []ChunkResult) (common.DocumentGraph, error) {
	var merged common.DocumentGraph
	var errs []error
	succeeded := 0

	seenNodes := make(map[string]struct{})
	seenRels := make(map[common.Relationship]struct{})

	for _, result := range results {
		if result.Err != nil {
			logger.Warn("Skipping failed chunk in merge", "chunk", result.Index, "error", result.Err)
			errs = append(errs, result.Err)
			continue
		}
		succeeded++

		for _, node := range result.Graph.Nodes {
			if _, ok := seenNodes[node.ID]; ok {
				continue
			}
			seenNodes[node.ID] = struct{}{}
			merged.Nodes = append(merged.Nodes, node)
		}
		for _, rel := range result.Graph.Relationships {
			if _, ok := seenRels[rel]; ok {
				continue
			}
			seenRels[rel] = struct{}{}
			merged.Relationships = append(merged.Relationships, rel)
		}
	}

	if succeeded == 0 && len(errs) > 0 {
		return common.DocumentGraph{}, &NoGraphExtractedError{Errs: errs}
	}
	return merged, nil
}
