package intent

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
)

// Provider completes a prompt against a language model. Implementations
// wrap whatever backend the host application uses; [HTTPProvider] is the
// built-in Anthropic-compatible client.
type Provider interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

const classifySystemPrompt = `You classify tool-routing queries. Respond with a single JSON object:
{"intent": "exact" or "hybrid", "category_filter": "" or a category name such as "file_discovery"}
Use "exact" only when the query names one specific command like "git.commit". No prose.`

// ClassifyLLM asks the provider to classify the query, returning nil
// whenever the override cannot produce a usable answer: override
// disabled, blank query, nil provider, transport error, or a response
// that is not the expected JSON object. Callers treat nil as "fall back
// to the rule-based classification".
func (c *Classifier) ClassifyLLM(ctx context.Context, query string, enabled bool, provider Provider) *Classification {
	if !enabled || provider == nil || strings.TrimSpace(query) == "" {
		return nil
	}

	raw, err := provider.Complete(ctx, classifySystemPrompt, query)
	if err != nil {
		slog.Debug("llm classification failed", "error", err)
		return nil
	}

	parsed := parseClassification(raw)
	if parsed == nil {
		slog.Debug("llm classification unparseable", "response", raw)
	}
	return parsed
}

// parseClassification extracts the first JSON object from a model
// response and validates it. Models wrap JSON in prose or code fences
// often enough that the extraction has to be tolerant.
func parseClassification(raw string) *Classification {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil
	}

	var result struct {
		Intent         string `json:"intent"`
		CategoryFilter string `json:"category_filter"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &result); err != nil {
		return nil
	}

	switch Intent(result.Intent) {
	case Exact, Hybrid:
		return &Classification{
			Intent:         Intent(result.Intent),
			CategoryFilter: result.CategoryFilter,
		}
	default:
		return nil
	}
}
