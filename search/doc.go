// Package search provides hybrid score fusion and adaptive retrieval
// over pluggable semantic and keyword backends.
//
// # Fusion
//
// [Engine] queries the semantic backend (and the keyword backend when
// configured), clamps each score to [0,1], and combines them:
//
//	combined = semanticWeight*semantic + keywordWeight*keyword
//
// Results are ordered by descending combined score; ties break on the
// original semantic-backend rank for determinism. Candidates below the
// per-call minimum score are dropped before truncation.
//
// # Degradation
//
// A failed backend call is logged and treated as empty results; the
// other backend's scores carry the result. When both backends fail the
// engine returns no matches and the caller's fallback layers take over.
// [Engine.Search] never returns an error.
//
// # Adaptive retrieval
//
// [AdaptiveController] retries an empty search with a progressively
// lower threshold:
//
//	ctrl := search.NewAdaptiveController(engine, nil)
//	matches := ctrl.SearchAdaptive(ctx, "commit my changes", search.AdaptiveParams{
//	    Limit:       5,
//	    Threshold:   0.2,
//	    Step:        0.15,
//	    MaxAttempts: 3,
//	})
//
// # Thread Safety
//
// Engine weights are guarded by an RWMutex; SetWeights is intended as a
// rare administrative operation. Search itself holds no state across
// calls and is safe for concurrent use.
package search
