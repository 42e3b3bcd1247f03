package evaluation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/trustwire/sourcecheck/src/ai/core"
	"github.com/trustwire/sourcecheck/src/evidence"
)

// Evaluator runs a single model against a domain and evidence pack and turns
// the raw completion into a validated, post-processed Result. Any provider
// failure (missing key, network error, malformed JSON, schema violation)
// comes back as an error; callers must not confuse that with a valid
// insufficient_data result.
type Evaluator struct {
	validate *validator.Validate
}

func NewEvaluator() *Evaluator {
	return &Evaluator{validate: validator.New()}
}

func (e *Evaluator) Evaluate(ctx context.Context, domain string, client core.Client, pack *evidence.Pack) (*Result, error) {
	if client == nil {
		return nil, fmt.Errorf("evaluate %s: provider not available", domain)
	}

	prompt := BuildEvaluationPrompt(domain, pack)
	raw, err := client.Complete(ctx, prompt, core.Options{SystemPrompt: SystemPrompt})
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", domain, err)
	}

	result, err := parseResult(raw)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", domain, err)
	}
	if err := e.validate.Struct(result); err != nil {
		return nil, fmt.Errorf("evaluate %s: response failed validation: %w", domain, err)
	}

	processed := PostProcess(*result, pack)
	return &processed, nil
}

// parseResult parses the model's raw text as JSON, tolerating a fenced code
// block or stray prose around the object. Legacy rating aliases are
// normalized here, before validation.
func parseResult(raw string) (*Result, error) {
	payload := stripCodeFence(raw)

	var result Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		extracted, ok := extractObject(payload)
		if !ok {
			return nil, fmt.Errorf("malformed model response: %w", err)
		}
		if err := json.Unmarshal([]byte(extracted), &result); err != nil {
			return nil, fmt.Errorf("malformed model response: %w", err)
		}
	}

	result.FactualRating = NormalizeRating(result.FactualRating)
	return &result, nil
}

func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}

func extractObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}
