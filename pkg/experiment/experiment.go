// Package experiment asks the model to design a follow-up experiment for a
// causal path discovered during ingestion.
package experiment

import (
	"context"
	"fmt"

	"github.com/meridian-research/triad/pkg/ai"
)

// Variables names the experiment's variable roles.
type Variables struct {
	Independent string   `json:"independent"`
	Dependent   string   `json:"dependent"`
	Controlled  []string `json:"controlled"`
}

// Design is a structured experiment proposal.
type Design struct {
	Hypothesis      string    `json:"hypothesis"`
	Methodology     []string  `json:"methodology"`
	Variables       Variables `json:"variables"`
	ExpectedOutcome string    `json:"expected_outcome"`
}

// DesignExperiment prompts the model for an experiment targeting the given
// path, grounded in contextText, and parses the structured proposal out of
// the reply. The raw reply is returned alongside the parsed design for
// display and diagnostics.
func DesignExperiment(ctx context.Context, aiClient ai.Client, pathString, contextText string) (Design, string, error) {
	reply, err := aiClient.GenerateCompletion(ctx,
		fmt.Sprintf(ai.ExperimentPrompt, pathString, contextText),
		ai.WithTemperature(0.1),
		ai.WithMaxTokens(3072),
	)
	if err != nil {
		return Design{}, "", fmt.Errorf("experiment design call failed: %w", err)
	}

	raw := ai.ExtractJSONObject(reply)
	if raw == "" {
		return Design{}, reply, fmt.Errorf("no JSON object in experiment design reply")
	}

	var design Design
	if err := ai.UnmarshalFlexible(raw, &design); err != nil {
		return Design{}, reply, fmt.Errorf("failed to decode experiment design: %w", err)
	}
	return design, reply, nil
}
