// Package retrieval answers user queries by fanning out to three sources
// (vector index, graph database, web search) and synthesizing one cited
// answer from whatever came back.
package retrieval

import (
	"context"

	"github.com/meridian-research/triad/pkg/store/vector"
)

// VectorSource is the document retrieval interface the orchestrator needs.
type VectorSource interface {
	Search(ctx context.Context, query string, k int) ([]vector.Hit, error)
}

// GraphSource executes a single graph query and returns its rows.
type GraphSource interface {
	Run(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}

// QueryTranslator turns the user's question into a graph query. It never
// fails; implementations fall back to a rule-based query.
type QueryTranslator interface {
	TranslateOrFallback(ctx context.Context, text string) string
}

// WebSource runs one web search and returns a text blob.
type WebSource interface {
	Search(ctx context.Context, query string) (string, error)
}
