package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/meridian-research/triad/pkg/ai"
	"github.com/meridian-research/triad/pkg/common"
	"github.com/meridian-research/triad/pkg/logger"
)

// Placeholder contexts used when a source contributes nothing. The
// synthesis model sees these instead of an empty block.
const (
	noDocsPlaceholder  = "No relevant internal documents found."
	noGraphPlaceholder = "No graph data found."
	noWebPlaceholder   = "No web results found."
)

// Result is one answered query: the synthesis model's output verbatim plus
// every citation the three source tasks assigned.
type Result struct {
	Answer    string            `json:"answer"`
	Citations []common.Citation `json:"citations"`
}

// Orchestrator fans a query out to the three retrieval sources and joins
// the results into a single synthesis call. Any source may be nil, in
// which case its context block is the empty-result placeholder.
//
// An Orchestrator should be created using NewOrchestrator.
type Orchestrator struct {
	aiClient   ai.Client
	vector     VectorSource
	graph      GraphSource
	translator QueryTranslator
	web        WebSource
	vectorTopK int
}

type NewOrchestratorParams struct {
	AiClient   ai.Client
	Vector     VectorSource
	Graph      GraphSource
	Translator QueryTranslator
	Web        WebSource
	VectorTopK int
}

func NewOrchestrator(params NewOrchestratorParams) *Orchestrator {
	topK := params.VectorTopK
	if topK <= 0 {
		topK = 3
	}
	return &Orchestrator{
		aiClient:   params.AiClient,
		vector:     params.Vector,
		graph:      params.Graph,
		translator: params.Translator,
		web:        params.Web,
		vectorTopK: topK,
	}
}

// taskResult is what one source task contributes: a context block for the
// synthesis prompt and zero or more citations.
type taskResult struct {
	context   string
	citations []common.Citation
}

// Answer runs the three source tasks concurrently, waits for all of them,
// and issues one synthesis call. Source failures degrade to placeholder
// contexts and never fail the request; only a failing synthesis call
// surfaces as an error. Citations are ordered by source declaration
// (vector, graph, web) regardless of task completion order.
func (o *Orchestrator) Answer(ctx context.Context, query string) (Result, error) {
	var vectorRes, graphRes, webRes taskResult

	var wg sync.WaitGroup
	run := func(out *taskResult, fallback string, task func(context.Context) taskResult) {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Retrieval task panicked", "panic", r)
				*out = taskResult{context: fallback}
			}
		}()
		*out = task(ctx)
	}
	wg.Add(3)
	go run(&vectorRes, noDocsPlaceholder, o.vectorTask(query))
	go run(&graphRes, noGraphPlaceholder, o.graphTask(query))
	go run(&webRes, noWebPlaceholder, o.webTask(query))
	wg.Wait()

	citations := make([]common.Citation, 0,
		len(vectorRes.citations)+len(graphRes.citations)+len(webRes.citations))
	citations = append(citations, vectorRes.citations...)
	citations = append(citations, graphRes.citations...)
	citations = append(citations, webRes.citations...)

	prompt := fmt.Sprintf(ai.SynthesisPrompt,
		vectorRes.context, graphRes.context, webRes.context, query)
	answer, err := o.aiClient.GenerateCompletion(ctx, prompt, ai.WithTemperature(0))
	if err != nil {
		return Result{}, fmt.Errorf("failed to synthesize answer: %w", err)
	}

	return Result{Answer: answer, Citations: citations}, nil
}

func (o *Orchestrator) vectorTask(query string) func(context.Context) taskResult {
	return func(ctx context.Context) taskResult {
		if o.vector == nil {
			return taskResult{context: noDocsPlaceholder}
		}
		hits, err := o.vector.Search(ctx, query, o.vectorTopK)
		if err != nil {
			logger.Warn("Vector search failed", "error", err)
			return taskResult{context: noDocsPlaceholder}
		}
		if len(hits) == 0 {
			return taskResult{context: noDocsPlaceholder}
		}

		var result taskResult
		for i, hit := range hits {
			refID := fmt.Sprintf("Doc-%d", i+1)
			filename := hit.Metadata["filename"]
			if filename == "" {
				filename = "Unknown"
			}
			result.context += fmt.Sprintf("[%s] (File: %s): %s\n\n", refID, filename, hit.Text)
			result.citations = append(result.citations, common.Citation{
				ID:      refID,
				Kind:    common.CitationText,
				Content: hit.Text,
				Origin:  filename,
			})
		}
		return result
	}
}

func (o *Orchestrator) graphTask(query string) func(context.Context) taskResult {
	return func(ctx context.Context) taskResult {
		if o.graph == nil {
			return taskResult{context: noGraphPlaceholder}
		}

		cypherQuery := query
		if o.translator != nil {
			cypherQuery = o.translator.TranslateOrFallback(ctx, query)
		}

		rows, err := o.graph.Run(ctx, cypherQuery, nil)
		if err != nil {
			// Execution failures become context the model can mention,
			// never a failed request.
			logger.Warn("Graph query failed", "error", err)
			return taskResult{context: fmt.Sprintf("Graph Error: %v", err)}
		}
		if len(rows) == 0 {
			return taskResult{context: noGraphPlaceholder}
		}

		rowsJSON, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			rowsJSON = []byte(fmt.Sprintf("%v", rows))
		}

		return taskResult{
			context: fmt.Sprintf("[Graph-1] Cypher: %s\nResults: %s", cypherQuery, rowsJSON),
			citations: []common.Citation{{
				ID:       "Graph-1",
				Kind:     common.CitationGraph,
				Content:  fmt.Sprintf("Cypher: %s", cypherQuery),
				Metadata: map[string]any{"rows": rows},
			}},
		}
	}
}

func (o *Orchestrator) webTask(query string) func(context.Context) taskResult {
	return func(ctx context.Context) taskResult {
		if o.web == nil {
			return taskResult{context: noWebPlaceholder}
		}
		text, err := o.web.Search(ctx, query)
		if err != nil {
			logger.Warn("Web search failed", "error", err)
			return taskResult{context: noWebPlaceholder}
		}
		if text == "" {
			return taskResult{context: noWebPlaceholder}
		}
		return taskResult{
			context: fmt.Sprintf("[Web-1] Live Search Results: %s", text),
			citations: []common.Citation{{
				ID:      "Web-1",
				Kind:    common.CitationWeb,
				Content: text,
				Origin:  "DuckDuckGo",
			}},
		}
	}
}
