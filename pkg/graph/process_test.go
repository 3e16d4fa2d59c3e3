package graph

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/meridian-research/triad/pkg/ai"
)

// routingAiClient serves extraction replies keyed by a substring of the
// prompt, and a fixed insight reply for everything else. Safe for
// concurrent use.
type routingAiClient struct {
	mu       sync.Mutex
	rules    map[string]string // prompt substring -> reply ("" means fail)
	fallback string
	calls    int
}

func (r *routingAiClient) GenerateCompletion(ctx context.Context, prompt string, opts ...ai.GenerateOption) (string, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	for marker, reply := range r.rules {
		if strings.Contains(prompt, marker) {
			if reply == "" {
				return "", errors.New("scripted failure")
			}
			return reply, nil
		}
	}
	return r.fallback, nil
}

func (r *routingAiClient) GenerateCompletionWithFormat(ctx context.Context, name, description, prompt string, out any, opts ...ai.GenerateOption) error {
	return errors.New("not implemented")
}

func (r *routingAiClient) GenerateEmbedding(ctx context.Context, input string) ([]float32, error) {
	return nil, errors.New("not implemented")
}

func TestProcessDocumentEmptyText(t *testing.T) {
	client := NewGraphClient(NewGraphClientParams{})
	_, _, err := client.ProcessDocument(context.Background(), &routingAiClient{}, "   \n\t ")
	if !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("error = %v, want ErrEmptyDocument", err)
	}
}

func TestProcessDocumentSurvivesFailingChunk(t *testing.T) {
	// Two chunks: "alpha..." fails every attempt, "beta..." extracts a graph
	// whose endpoints match the default path keywords.
	text := strings.Repeat("alpha ", 10) + strings.Repeat("beta ", 10)
	client := NewGraphClient(NewGraphClientParams{
		ChunkSize:      60,
		ChunkOverlap:   0,
		ParallelChunks: 2,
		MaxRetries:     2,
	})

	aiClient := &routingAiClient{
		rules: map[string]string{
			"alpha": "",
			"beta":  `{"nodes": [{"id": "Contamination", "type": "Concept"}, {"id": "Yield", "type": "Metric"}], "relationships": [{"source": "Contamination", "target": "Yield", "type": "REDUCES"}]}`,
		},
		fallback: "Contamination plausibly reduces yield.",
	}

	graph, insight, err := client.ProcessDocument(context.Background(), aiClient, text)
	if err != nil {
		t.Fatalf("ProcessDocument() error = %v", err)
	}
	if len(graph.Nodes) != 2 || len(graph.Relationships) != 1 {
		t.Errorf("graph = %+v, want the surviving chunk's graph", graph)
	}
	if !insight.Found {
		t.Errorf("insight = %+v, want a discovered path", insight)
	}
}

func TestProcessDocumentAllChunksFail(t *testing.T) {
	client := NewGraphClient(NewGraphClientParams{
		ChunkSize:      30,
		ChunkOverlap:   0,
		ParallelChunks: 2,
		MaxRetries:     1,
	})
	aiClient := &routingAiClient{rules: map[string]string{"x": ""}}

	_, _, err := client.ProcessDocument(context.Background(), aiClient, strings.Repeat("x", 100))
	var noGraph *NoGraphExtractedError
	if !errors.As(err, &noGraph) {
		t.Fatalf("error = %v, want NoGraphExtractedError", err)
	}
}

func TestProcessDocumentRetriesFailedCalls(t *testing.T) {
	client := NewGraphClient(NewGraphClientParams{
		ChunkSize:      1000,
		ParallelChunks: 1,
		MaxRetries:     3,
	})
	aiClient := &routingAiClient{rules: map[string]string{"doc": ""}}

	_, _, _ = client.ProcessDocument(context.Background(), aiClient, "doc text")
	// 3 extraction attempts for the single chunk; no insight call since
	// extraction never succeeded.
	if aiClient.calls != 3 {
		t.Errorf("calls = %d, want 3", aiClient.calls)
	}
}

func TestProcessDocumentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewGraphClient(NewGraphClientParams{})
	_, _, err := client.ProcessDocument(ctx, &routingAiClient{}, "some text")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
