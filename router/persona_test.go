package router

import (
	"testing"

	"github.com/jonwraymond/toolrouter/confidence"
)

func TestPersonaRouter_AlwaysReturnsResult(t *testing.T) {
	p := NewPersonaRouter()

	tests := []struct {
		query string
		want  string
	}{
		{"find the config file please", "file-navigator"},
		{"refactor this function", "code-analyst"},
		{"parse the csv export", "data-wrangler"},
		{"", defaultPersona},
		{"completely unrelated qwxzv", defaultPersona},
	}

	for _, tt := range tests {
		result := p.Route(tt.query)
		if result == nil {
			t.Fatalf("Route(%q) returned nil", tt.query)
		}
		if result.Target.Command != tt.want {
			t.Errorf("Route(%q) = %s, want %s", tt.query, result.Target.Command, tt.want)
		}
		if result.Confidence != confidence.Low {
			t.Errorf("Route(%q) confidence = %s, want low", tt.query, result.Confidence)
		}
		if result.Reasoning == "" {
			t.Errorf("Route(%q) has empty reasoning", tt.query)
		}
	}
}

func TestPersonaRouter_MostKeywordsWins(t *testing.T) {
	p := NewPersonaRouter(
		Persona{Name: "one", Keywords: []string{"alpha"}},
		Persona{Name: "two", Keywords: []string{"alpha", "beta"}},
	)

	result := p.Route("alpha beta gamma")
	if result.Target.Command != "two" {
		t.Errorf("expected persona with most matches, got %s", result.Target.Command)
	}
}
