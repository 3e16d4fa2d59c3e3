package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/meridian-research/triad/pkg/ai"
	"github.com/meridian-research/triad/pkg/common"
	"github.com/meridian-research/triad/pkg/logger"
)

// insightContextLimit caps how much document text is sent to the model as
// grounding for the explanation.
const insightContextLimit = 2500

// ExplainInsight runs path discovery over a document graph and attaches a
// one-sentence explanation for the highest-ranked path. The explanation is
// best effort: if the model call fails or returns something unusable, a
// deterministic sentence built from the path itself is used instead, so
// this function never fails.
func ExplainInsight(ctx context.Context, aiClient ai.Client, g common.DocumentGraph, documentText string, cfg PathConfig) common.Insight {
	paths := FindPaths(g, cfg)
	if len(paths) == 0 {
		return common.Insight{
			Found:       false,
			Explanation: "No compelling multi-hop paths were discovered in the document.",
		}
	}

	top := paths[0]
	explanation := fmt.Sprintf(
		"A key relationship was discovered: %s. This suggests a potential causal link or area for further investigation.",
		top,
	)

	grounding := documentText
	if runes := []rune(grounding); len(runes) > insightContextLimit {
		grounding = string(runes[:insightContextLimit])
	}

	reply, err := aiClient.GenerateCompletion(ctx,
		fmt.Sprintf(ai.InsightPrompt, top, grounding),
		ai.WithTemperature(0.2),
		ai.WithMaxTokens(256),
	)
	if err != nil {
		logger.Warn("Insight explanation call failed, using fallback", "error", err)
	} else if reply = strings.TrimSpace(reply); reply != "" && !strings.Contains(strings.ToLower(reply), "error") {
		explanation = reply
	}

	return common.Insight{
		Found:       true,
		Explanation: explanation,
		Paths:       paths,
	}
}
