package cypher

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/meridian-research/triad/pkg/ai"
	"github.com/meridian-research/triad/pkg/logger"
)

// TranslationError reports that the model-based translation produced
// nothing usable. Callers that asked for a fallback never see it.
type TranslationError struct {
	Input  string
	Output string
	Err    error
}

func (e *TranslationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cypher translation failed for %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("cypher translation produced unusable output for %q: %q", e.Input, e.Output)
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}

var mutatingClause = regexp.MustCompile(`(?i)\b(create|delete|detach|set|merge|remove|drop|call)\b`)

// Translator converts natural language to Cypher with a language model,
// validating that the output is a single read-only query.
type Translator struct {
	aiClient ai.Client
}

func NewTranslator(aiClient ai.Client) *Translator {
	return &Translator{aiClient: aiClient}
}

// Translate asks the model for a Cypher query and rejects anything that is
// empty, fenced junk, multi-statement, or contains a mutating clause. On
// rejection it returns a TranslationError.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	reply, err := t.aiClient.GenerateCompletion(ctx,
		fmt.Sprintf(ai.CypherPrompt, text),
		ai.WithTemperature(0),
		ai.WithMaxTokens(300),
	)
	if err != nil {
		return "", &TranslationError{Input: text, Err: err}
	}

	query := cleanReply(reply)
	if query == "" {
		return "", &TranslationError{Input: text, Output: reply}
	}
	if !strings.HasPrefix(strings.ToUpper(query), "MATCH") {
		return "", &TranslationError{Input: text, Output: reply}
	}
	if mutatingClause.MatchString(query) {
		return "", &TranslationError{Input: text, Output: reply}
	}
	if strings.Contains(strings.TrimRight(query, ";"), ";") {
		return "", &TranslationError{Input: text, Output: reply}
	}
	return strings.TrimRight(query, ";"), nil
}

// TranslateOrFallback returns the model translation when it validates and
// the rule-based query otherwise. It never fails.
func (t *Translator) TranslateOrFallback(ctx context.Context, text string) string {
	if t == nil || t.aiClient == nil {
		return Generate(text)
	}
	query, err := t.Translate(ctx, text)
	if err != nil {
		logger.Warn("Model cypher translation rejected, using rule-based query", "error", err)
		return Generate(text)
	}
	return query
}

// cleanReply strips markdown fences and surrounding prose lines so that a
// reply like "```cypher\nMATCH ...\n```" reduces to the query itself.
func cleanReply(reply string) string {
	reply = strings.TrimSpace(reply)
	if strings.HasPrefix(reply, "```") {
		reply = strings.TrimPrefix(reply, "```")
		if i := strings.Index(reply, "\n"); i >= 0 && !strings.HasPrefix(strings.TrimSpace(reply[:i]), "MATCH") {
			reply = reply[i+1:]
		}
		if i := strings.Index(reply, "```"); i >= 0 {
			reply = reply[:i]
		}
	}
	return strings.TrimSpace(reply)
}
