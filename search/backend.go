package search

import "context"

// Hit is a single candidate returned by a retrieval backend.
type Hit struct {
	// ID is the canonical command ID (skill.command).
	ID string

	// Score is the backend's relevance score. Semantic backends return
	// cosine similarity in [0,1]; keyword backends may return unbounded
	// scores, which the engine normalizes before fusion.
	Score float64

	// Payload carries backend metadata (content, category, ...).
	Payload map[string]any
}

// Backend is a retrieval backend queried by the hybrid engine.
// Implementations return candidates ranked by descending relevance;
// the engine over-fetches, so backends should not truncate aggressively.
type Backend interface {
	Search(ctx context.Context, query string) ([]Hit, error)
}
