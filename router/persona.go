package router

import (
	"strings"

	"github.com/jonwraymond/toolrouter/confidence"
)

// defaultPersona is the catch-all target used when no persona keyword
// matches.
const defaultPersona = "orchestrator"

// Persona is a heuristic routing target matched by keywords. Personas
// back the last-resort path: when the hybrid index is unavailable or
// retrieval comes back empty, a persona still gives the caller a place
// to send the query.
type Persona struct {
	Name     string
	Keywords []string
}

// PersonaRouter routes queries by keyword match against a fixed persona
// list. Its Route method never returns nil.
type PersonaRouter struct {
	personas []Persona
	floor    float64
}

// NewPersonaRouter creates a persona router. With no personas given, a
// built-in default set is used.
func NewPersonaRouter(personas ...Persona) *PersonaRouter {
	if len(personas) == 0 {
		personas = defaultPersonas()
	}
	return &PersonaRouter{personas: personas, floor: 0.10}
}

func defaultPersonas() []Persona {
	return []Persona{
		{Name: "file-navigator", Keywords: []string{"file", "files", "directory", "folder", "glob", "path"}},
		{Name: "code-analyst", Keywords: []string{"code", "function", "refactor", "review", "lint", "debug"}},
		{Name: "data-wrangler", Keywords: []string{"data", "csv", "json", "parse", "convert", "transform"}},
		{Name: "researcher", Keywords: []string{"search", "find", "lookup", "documentation", "docs", "explain"}},
	}
}

// Route matches the query against persona keywords, scoring each
// persona by matched keyword count, and returns the best match. When
// nothing matches it falls back to the orchestrator persona, so the
// result is always usable.
func (p *PersonaRouter) Route(query string) *RouteResult {
	tokens := map[string]bool{}
	for _, tok := range strings.Fields(strings.ToLower(query)) {
		tokens[strings.Trim(tok, ".,!?;:()[]{}'\"")] = true
	}

	best := ""
	bestCount := 0
	for _, persona := range p.personas {
		count := 0
		for _, kw := range persona.Keywords {
			if tokens[kw] {
				count++
			}
		}
		if count > bestCount {
			best = persona.Name
			bestCount = count
		}
	}

	if best == "" {
		return &RouteResult{
			Target:     Target{Command: defaultPersona},
			Score:      p.floor,
			Confidence: confidence.Low,
			Reasoning:  "no persona keyword matched; defaulting to orchestrator",
		}
	}
	return &RouteResult{
		Target:     Target{Command: best},
		Score:      p.floor,
		Confidence: confidence.Low,
		Reasoning:  "persona fallback matched keyword vocabulary for " + best,
	}
}
