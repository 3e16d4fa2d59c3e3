// Package vector holds the in-process vector index used for document
// retrieval: embeddings come from the AI client, ranking is cosine
// similarity over a flat in-memory slice. Writes are serialized; reads
// run concurrently.
package vector

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/meridian-research/triad/pkg/ai"
	"github.com/meridian-research/triad/pkg/graph"
	"github.com/meridian-research/triad/pkg/logger"
)

// Index chunking defaults, tuned for retrieval rather than extraction.
const (
	IndexChunkSize    = 500
	IndexChunkOverlap = 50
)

// Hit is one search result.
type Hit struct {
	Text     string
	Metadata map[string]string
	Score    float64
}

type entry struct {
	text      string
	metadata  map[string]string
	embedding []float32
}

// Index is a flat in-memory vector index.
//
// An Index should be created using NewIndex.
type Index struct {
	aiClient ai.Client

	mu      sync.RWMutex
	entries []entry
}

func NewIndex(aiClient ai.Client) *Index {
	return &Index{aiClient: aiClient}
}

// Add embeds text and appends it to the index. Concurrent Adds are safe;
// the embedding call happens outside the lock so slow model calls do not
// serialize each other.
func (idx *Index) Add(ctx context.Context, text string, metadata map[string]string) error {
	embedding, err := idx.aiClient.GenerateEmbedding(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to embed text: %w", err)
	}
	idx.mu.Lock()
	idx.entries = append(idx.entries, entry{text: text, metadata: metadata, embedding: embedding})
	idx.mu.Unlock()
	return nil
}

// AddDocument chunks a document for retrieval and adds every chunk with
// the given metadata. Chunks that fail to embed are skipped with a
// warning; the call fails only when no chunk could be added.
func (idx *Index) AddDocument(ctx context.Context, text string, metadata map[string]string) error {
	chunks := graph.Chunk(text, IndexChunkSize, IndexChunkOverlap)
	added := 0
	var lastErr error
	for _, chunk := range chunks {
		if err := idx.Add(ctx, chunk, metadata); err != nil {
			logger.Warn("Skipping chunk that failed to embed", "error", err)
			lastErr = err
			continue
		}
		added++
	}
	if added == 0 && lastErr != nil {
		return fmt.Errorf("failed to index document: %w", lastErr)
	}
	logger.Info("Indexed document", "chunks", added, "of", len(chunks))
	return nil
}

// Search embeds the query and returns the k nearest entries by cosine
// similarity, best first.
func (idx *Index) Search(ctx context.Context, query string, k int) ([]Hit, error) {
	if k <= 0 {
		return nil, nil
	}
	queryEmbedding, err := idx.aiClient.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	idx.mu.RLock()
	hits := make([]Hit, 0, len(idx.entries))
	for _, e := range idx.entries {
		hits = append(hits, Hit{
			Text:     e.text,
			Metadata: e.metadata,
			Score:    cosineSimilarity(queryEmbedding, e.embedding),
		})
	}
	idx.mu.RUnlock()

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Len reports how many entries the index holds.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
