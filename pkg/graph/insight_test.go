package graph

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/meridian-research/triad/pkg/ai"
	"github.com/meridian-research/triad/pkg/common"
)

// fakeAiClient is a scripted ai.Client for tests. Completion replies are
// served in order; when the list runs out the last entry repeats.
type fakeAiClient struct {
	replies []string
	err     error
	calls   int
	prompts []string
}

func (f *fakeAiClient) GenerateCompletion(ctx context.Context, prompt string, opts ...ai.GenerateOption) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", nil
	}
	i := f.calls - 1
	if i >= len(f.replies) {
		i = len(f.replies) - 1
	}
	return f.replies[i], nil
}

func (f *fakeAiClient) GenerateCompletionWithFormat(ctx context.Context, name, description, prompt string, out any, opts ...ai.GenerateOption) error {
	return errors.New("not implemented")
}

func (f *fakeAiClient) GenerateEmbedding(ctx context.Context, input string) ([]float32, error) {
	return nil, errors.New("not implemented")
}

func TestExplainInsightNoPaths(t *testing.T) {
	client := &fakeAiClient{}
	insight := ExplainInsight(context.Background(), client, common.DocumentGraph{}, "text", DefaultPathConfig())
	if insight.Found {
		t.Error("Found = true for an empty graph")
	}
	if insight.Explanation == "" {
		t.Error("Explanation should say that no paths were found")
	}
	if client.calls != 0 {
		t.Errorf("no model call expected without paths, got %d", client.calls)
	}
}

func TestExplainInsightUsesModelReply(t *testing.T) {
	g := lineGraph("Metal Contamination", "Etch Chamber", "Yield Loss")
	client := &fakeAiClient{replies: []string{"Metal carried into the etch chamber plausibly drives the observed yield loss."}}

	insight := ExplainInsight(context.Background(), client, g, "doc text", DefaultPathConfig())
	if !insight.Found {
		t.Fatal("Found = false, want true")
	}
	if insight.Explanation != client.replies[0] {
		t.Errorf("Explanation = %q, want model reply", insight.Explanation)
	}
	if len(insight.Paths) != 1 {
		t.Errorf("Paths = %v, want one", insight.Paths)
	}
}

func TestExplainInsightFallback(t *testing.T) {
	g := lineGraph("Metal Contamination", "Etch Chamber", "Yield Loss")
	wantFragment := "A key relationship was discovered: Metal Contamination → Etch Chamber → Yield Loss."

	tests := []struct {
		name   string
		client *fakeAiClient
	}{
		{name: "call fails", client: &fakeAiClient{err: errors.New("model down")}},
		{name: "empty reply", client: &fakeAiClient{replies: []string{"   "}}},
		{name: "error-ish reply", client: &fakeAiClient{replies: []string{"Internal Error: could not process"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insight := ExplainInsight(context.Background(), tt.client, g, "doc text", DefaultPathConfig())
			if !insight.Found {
				t.Fatal("Found = false, want true")
			}
			if !strings.Contains(insight.Explanation, wantFragment) {
				t.Errorf("Explanation = %q, want fallback sentence", insight.Explanation)
			}
		})
	}
}

func TestExplainInsightTruncatesContext(t *testing.T) {
	g := lineGraph("Contamination", "Yield")
	client := &fakeAiClient{replies: []string{"fine."}}
	longText := strings.Repeat("z", insightContextLimit*2)

	ExplainInsight(context.Background(), client, g, longText, DefaultPathConfig())
	if len(client.prompts) != 1 {
		t.Fatalf("expected one model call, got %d", len(client.prompts))
	}
	if strings.Contains(client.prompts[0], longText) {
		t.Error("prompt contains the untruncated document text")
	}
}
