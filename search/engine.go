package search

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
)

// Error values for engine construction.
var (
	ErrNoSemanticBackend = errors.New("semantic backend is required")
	ErrInvalidWeight     = errors.New("weight must be in [0,1]")
)

// Params configures a single engine search call.
type Params struct {
	// Limit is the maximum number of matches to return.
	Limit int

	// MinScore filters out candidates whose combined score is below it.
	MinScore float64

	// Category restricts results to candidates whose payload category
	// matches. Empty means no filtering.
	Category string
}

// Options configures an Engine.
type Options struct {
	// Semantic is the semantic retrieval backend. Required.
	Semantic Backend

	// Keyword is the keyword retrieval backend. Optional; when nil every
	// keyword score is zero.
	Keyword Backend

	// SemanticWeight and KeywordWeight are the fusion weights. They are
	// not required to sum to 1.
	SemanticWeight float64
	KeywordWeight  float64

	// Logger receives degradation warnings. Nil uses slog.Default().
	Logger *slog.Logger
}

// Engine fuses semantic and keyword retrieval into ranked matches.
// Backend failures are absorbed: a failed backend contributes no
// candidates and the other backend's scores carry the result.
type Engine struct {
	mu        sync.RWMutex
	semantic  Backend
	keyword   Backend
	semWeight float64
	kwWeight  float64
	logger    *slog.Logger
}

// NewEngine creates a hybrid search engine.
func NewEngine(opts Options) (*Engine, error) {
	if opts.Semantic == nil {
		return nil, ErrNoSemanticBackend
	}
	for _, w := range []float64{opts.SemanticWeight, opts.KeywordWeight} {
		if w < 0 || w > 1 {
			return nil, ErrInvalidWeight
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		semantic:  opts.Semantic,
		keyword:   opts.Keyword,
		semWeight: opts.SemanticWeight,
		kwWeight:  opts.KeywordWeight,
		logger:    logger,
	}, nil
}

// SetWeights replaces the fusion weights. Intended as a rare
// administrative operation; safe for concurrent use.
func (e *Engine) SetWeights(semantic, keyword float64) error {
	for _, w := range []float64{semantic, keyword} {
		if w < 0 || w > 1 {
			return ErrInvalidWeight
		}
	}
	e.mu.Lock()
	e.semWeight = semantic
	e.kwWeight = keyword
	e.mu.Unlock()
	return nil
}

// Weights returns the current (semantic, keyword) weight pair.
func (e *Engine) Weights() (float64, float64) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.semWeight, e.kwWeight
}

// candidate tracks a document during fusion. rank is the original
// semantic-backend rank, used as a deterministic tie-break; keyword-only
// candidates rank after all semantic candidates.
type candidate struct {
	id       string
	content  string
	category string
	sem      float64
	kwd      float64
	combined float64
	meta     map[string]any
	rank     int
}

// Search queries both backends, fuses scores, filters by MinScore, and
// returns up to Limit matches ordered by descending combined score.
// It never returns an error: backend failures degrade to fewer (or no)
// candidates.
func (e *Engine) Search(ctx context.Context, query string, p Params) []Match {
	semWeight, kwWeight := e.Weights()

	semHits, semErr := e.semantic.Search(ctx, query)
	if semErr != nil {
		e.logger.Warn("semantic backend failed, degrading to keyword-only",
			"query", query, "error", semErr)
		semHits = nil
	}

	var kwHits []Hit
	var kwErr error
	if e.keyword != nil {
		kwHits, kwErr = e.keyword.Search(ctx, query)
		if kwErr != nil {
			e.logger.Warn("keyword backend failed, degrading to semantic-only",
				"query", query, "error", kwErr)
			kwHits = nil
		}
	}

	if semErr != nil && (e.keyword == nil || kwErr != nil) {
		return nil
	}

	byID := make(map[string]*candidate, len(semHits)+len(kwHits))
	cands := make([]*candidate, 0, len(semHits)+len(kwHits))

	for i, h := range semHits {
		c := &candidate{
			id:       h.ID,
			content:  payloadString(h.Payload, "content"),
			category: payloadString(h.Payload, "category"),
			sem:      clamp01(h.Score),
			meta:     h.Payload,
			rank:     i,
		}
		byID[h.ID] = c
		cands = append(cands, c)
	}

	for j, h := range kwHits {
		score := clamp01(h.Score)
		if c, ok := byID[h.ID]; ok {
			c.kwd = score
			continue
		}
		c := &candidate{
			id:       h.ID,
			content:  payloadString(h.Payload, "content"),
			category: payloadString(h.Payload, "category"),
			kwd:      score,
			meta:     h.Payload,
			rank:     len(semHits) + j,
		}
		byID[h.ID] = c
		cands = append(cands, c)
	}

	filtered := cands[:0]
	for _, c := range cands {
		if p.Category != "" && c.category != p.Category {
			continue
		}
		c.combined = semWeight*c.sem + kwWeight*c.kwd
		if c.combined < p.MinScore {
			continue
		}
		filtered = append(filtered, c)
	}

	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].combined != filtered[j].combined {
			return filtered[i].combined > filtered[j].combined
		}
		return filtered[i].rank < filtered[j].rank
	})

	if p.Limit > 0 && len(filtered) > p.Limit {
		filtered = filtered[:p.Limit]
	}

	matches := make([]Match, len(filtered))
	for i, c := range filtered {
		matches[i] = Match{
			ID:            c.id,
			Content:       c.content,
			SemanticScore: c.sem,
			KeywordScore:  c.kwd,
			CombinedScore: c.combined,
			Metadata:      c.meta,
		}
	}
	return matches
}

func payloadString(payload map[string]any, key string) string {
	if payload == nil {
		return ""
	}
	if s, ok := payload[key].(string); ok {
		return s
	}
	return ""
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
