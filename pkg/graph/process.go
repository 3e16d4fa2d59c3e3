package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/meridian-research/triad/internal/util"
	"github.com/meridian-research/triad/pkg/ai"
	"github.com/meridian-research/triad/pkg/common"
	"github.com/meridian-research/triad/pkg/logger"
)

// ErrEmptyDocument is returned when a document contains no text after
// trimming whitespace.
var ErrEmptyDocument = errors.New("document contains no text")

// ProcessDocument runs the full pipeline for one document: split the text
// into overlapping chunks, extract a graph fragment from each chunk in
// parallel, merge the fragments, and discover paths with an explanation.
//
// Chunks fail independently: a failed chunk is retried up to the
// configured limit and then recorded, never cancelling its siblings. The
// call fails only when the text is empty, the context is cancelled, or
// every chunk failed.
func (g *GraphClient) ProcessDocument(ctx context.Context, aiClient ai.Client, text string) (common.DocumentGraph, common.Insight, error) {
	if strings.TrimSpace(text) == "" {
		return common.DocumentGraph{}, common.Insight{}, ErrEmptyDocument
	}

	chunks := Chunk(text, g.chunkSize, g.chunkOverlap)
	logger.Info("Processing document", "chunks", len(chunks), "chunkSize", g.chunkSize, "overlap", g.chunkOverlap)

	results := make([]ChunkResult, len(chunks))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.parallelChunks)
	for i, chunk := range chunks {
		eg.Go(func() error {
			graph, err := util.RetryWithContext(egCtx, g.maxRetries, func(c context.Context) (common.ChunkGraph, error) {
				return g.extractWithTimeout(c, aiClient, chunk)
			})
			results[i] = ChunkResult{Index: i, Graph: graph, Err: err}
			if err != nil {
				logger.Warn("Chunk extraction failed", "chunk", i, "error", err)
			}
			return nil
		})
	}
	// Goroutines never return errors, so Wait only reflects ctx state.
	_ = eg.Wait()
	if err := ctx.Err(); err != nil {
		return common.DocumentGraph{}, common.Insight{}, err
	}

	merged, err := MergeChunkGraphs(results)
	if err != nil {
		return common.DocumentGraph{}, common.Insight{}, err
	}
	logger.Info("Merged document graph", "nodes", len(merged.Nodes), "relationships", len(merged.Relationships))

	insightCtx := ctx
	if g.callTimeout > 0 {
		var cancel context.CancelFunc
		insightCtx, cancel = context.WithTimeout(ctx, g.callTimeout)
		defer cancel()
	}
	insight := ExplainInsight(insightCtx, aiClient, merged, text, g.pathConfig)

	return merged, insight, nil
}

func (g *GraphClient) extractWithTimeout(ctx context.Context, aiClient ai.Client, chunk string) (common.ChunkGraph, error) {
	if g.callTimeout <= 0 {
		return ExtractFromChunk(ctx, aiClient, chunk, g.entityTypes)
	}
	callCtx, cancel := context.WithTimeout(ctx, g.callTimeout)
	defer cancel()
	graph, err := ExtractFromChunk(callCtx, aiClient, chunk, g.entityTypes)
	// A per-call timeout must stay retryable; only cancellation of the
	// surrounding context aborts the retry loop.
	if err != nil && errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return common.ChunkGraph{}, fmt.Errorf("extraction call timed out after %s", g.callTimeout)
	}
	return graph, err
}
