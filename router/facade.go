package router

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonwraymond/toolrouter/cache"
	"github.com/jonwraymond/toolrouter/catalog"
	"github.com/jonwraymond/toolrouter/confidence"
	"github.com/jonwraymond/toolrouter/intent"
	"github.com/jonwraymond/toolrouter/keyword"
	"github.com/jonwraymond/toolrouter/search"
	"github.com/jonwraymond/toolrouter/semantic"
)

// embedderDim is the dimension of the default hashing embedder.
const embedderDim = 256

// Options configures a Facade.
type Options struct {
	// Config holds the router tunables. Zero value uses DefaultConfig.
	Config Config

	// Embedder generates semantic vectors. Nil uses the built-in
	// hashing embedder.
	Embedder semantic.Embedder

	// LLMProvider enables model-assisted intent classification when
	// Config.UseLLMClassifier is set. Optional.
	LLMProvider intent.Provider

	// Personas overrides the fallback persona set. Optional.
	Personas []Persona

	// Logger receives structured routing logs. Nil uses slog.Default().
	Logger *slog.Logger
}

// Facade is the single entry point for tool routing. It composes the
// intent classifier, catalog, hybrid search engine, adaptive controller,
// confidence calibration, result cache, and persona fallback.
//
// Only construction and configuration errors propagate; Route and
// RouteHybrid absorb runtime retrieval failures and degrade to lower
// confidence or the persona fallback.
type Facade struct {
	mu  sync.RWMutex
	cfg Config

	logger     *slog.Logger
	classifier *intent.Classifier
	llm        intent.Provider

	catalog  *catalog.InMemoryCatalog
	vector   *semantic.VectorIndex
	keywords *keyword.Index
	engine   *search.Engine
	adaptive *search.AdaptiveController
	results  *cache.ResultCache
	persona  *PersonaRouter

	initialized bool
	fingerprint string
}

// New creates a Facade from options. The configuration is validated
// before any index is built; an invalid configuration is the only way
// construction fails besides index allocation.
func New(opts Options) (*Facade, error) {
	cfg := opts.Config
	if len(cfg.Profiles) == 0 && cfg.ActiveProfile == "" {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	embedder := opts.Embedder
	if embedder == nil {
		var err error
		embedder, err = semantic.NewHashingEmbedder(embedderDim)
		if err != nil {
			return nil, err
		}
	}

	vector, err := semantic.NewVectorIndex(embedder)
	if err != nil {
		return nil, err
	}
	keywords, err := keyword.NewIndex()
	if err != nil {
		return nil, err
	}

	engine, err := search.NewEngine(search.Options{
		Semantic:       vector,
		Keyword:        keywords,
		SemanticWeight: cfg.SemanticWeight,
		KeywordWeight:  cfg.KeywordWeight,
		Logger:         logger,
	})
	if err != nil {
		return nil, err
	}

	return &Facade{
		cfg:        cfg,
		logger:     logger,
		classifier: intent.NewClassifier(),
		llm:        opts.LLMProvider,
		catalog:    catalog.NewInMemoryCatalog(),
		vector:     vector,
		keywords:   keywords,
		engine:     engine,
		adaptive:   search.NewAdaptiveController(engine, logger),
		results:    cache.New(cfg.CacheMaxSize, time.Duration(cfg.CacheTTLSeconds)*time.Second),
		persona:    NewPersonaRouter(opts.Personas...),
	}, nil
}

// Initialize builds the catalog and both retrieval indexes from the
// given skills. It may be called again to rebuild; the result cache is
// cleared only when the catalog contents actually changed.
func (f *Facade) Initialize(ctx context.Context, skills []catalog.Skill) error {
	if err := f.catalog.Initialize(skills); err != nil {
		return fmt.Errorf("initialize catalog: %w", err)
	}

	docs := f.catalog.Docs()
	if err := f.vector.Build(ctx, docs); err != nil {
		return fmt.Errorf("build semantic index: %w", err)
	}
	if err := f.keywords.Build(docs); err != nil {
		return fmt.Errorf("build keyword index: %w", err)
	}

	fingerprint := f.catalog.Fingerprint()

	f.mu.Lock()
	changed := fingerprint != f.fingerprint
	f.fingerprint = fingerprint
	f.initialized = true
	f.mu.Unlock()

	if changed {
		cleared := f.results.Clear()
		if cleared > 0 {
			f.logger.Info("catalog changed, result cache cleared",
				"entries", cleared, "commands", f.catalog.Len())
		}
	}

	f.logger.Info("router initialized",
		"skills", len(skills), "commands", f.catalog.Len(), "docs", len(docs))
	return nil
}

// IsReady reports whether the facade has been initialized and its
// retrieval engine is available.
func (f *Facade) IsReady() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.initialized && f.engine != nil
}

// Route resolves a query to a single target. It never returns nil: an
// uninitialized facade or exhausted retrieval falls through to the
// persona router, which always produces a result.
func (f *Facade) Route(ctx context.Context, query string) *RouteResult {
	logger := f.logger.With("request_id", uuid.NewString(), "query", query)

	if !f.IsReady() {
		logger.Debug("router not initialized, using persona fallback")
		return f.persona.Route(query)
	}

	cls := f.classify(ctx, query)
	logger.Debug("query classified",
		"intent", cls.Intent, "category_filter", cls.CategoryFilter)

	if cls.Intent == intent.Exact {
		if cmd, ok := f.catalog.Lookup(query); ok {
			level, calibrated := confidence.Calibrate(1.0, f.cfg.activeProfile())
			return &RouteResult{
				Target:     Target{Skill: cmd.Skill, Command: cmd.Name},
				Score:      calibrated,
				Confidence: level,
				Reasoning:  "exact catalog match for " + query,
			}
		}
		// An identifier-shaped query with no catalog entry still gets
		// hybrid retrieval.
		logger.Debug("exact lookup missed, falling back to hybrid")
	}

	if matches, ok := f.results.Get(query); ok && len(matches) > 0 {
		logger.Debug("cache hit", "candidates", len(matches))
		return f.resultFromMatches(f.rerank(matches), true)
	}

	matches := f.adaptive.SearchAdaptive(ctx, query, search.AdaptiveParams{
		Limit:       f.cfg.DefaultLimit,
		Threshold:   f.cfg.DefaultThreshold,
		Step:        f.cfg.AdaptiveThresholdStep,
		MaxAttempts: f.cfg.AdaptiveMaxAttempts,
		Category:    cls.CategoryFilter,
	})
	if len(matches) == 0 {
		logger.Debug("retrieval exhausted, using persona fallback")
		return f.persona.Route(query)
	}

	// An aborted attempt must not poison the cache.
	if ctx.Err() == nil {
		f.results.Set(query, matches)
	}
	return f.resultFromMatches(matches, false)
}

// RouteHybrid returns every match above threshold as calibrated
// results, ordered by score. It bypasses intent classification and the
// result cache, for bulk discovery use cases. An uninitialized facade
// returns nil.
func (f *Facade) RouteHybrid(ctx context.Context, query string, limit int, threshold float64) []RouteResult {
	if !f.IsReady() {
		return nil
	}
	if limit < 1 {
		limit = f.cfg.DefaultLimit
	}

	matches := f.engine.Search(ctx, query, search.Params{
		Limit:    limit,
		MinScore: threshold,
	})

	results := make([]RouteResult, len(matches))
	for i, m := range matches {
		level, calibrated := confidence.Calibrate(m.CombinedScore, f.cfg.activeProfile())
		results[i] = RouteResult{
			Target:     parseTarget(m.ID),
			Score:      calibrated,
			Confidence: level,
			Reasoning: fmt.Sprintf("hybrid score %.3f (semantic %.3f, keyword %.3f)",
				m.CombinedScore, m.SemanticScore, m.KeywordScore),
		}
	}
	return results
}

// SetWeights replaces the fusion weights. Administrative operation;
// safe for concurrent use but intended to be rare.
func (f *Facade) SetWeights(semantic, keyword float64) error {
	return f.engine.SetWeights(semantic, keyword)
}

// ClearCache drops every cached result list and returns the count.
func (f *Facade) ClearCache() int {
	return f.results.Clear()
}

// RemoveExpired sweeps expired cache entries and returns the count.
func (f *Facade) RemoveExpired() int {
	return f.results.RemoveExpired()
}

// CacheStats returns the result cache counters.
func (f *Facade) CacheStats() cache.Stats {
	return f.results.Stats()
}

// Stats merges readiness, catalog, and cache diagnostics into one
// payload.
func (f *Facade) Stats() map[string]any {
	f.mu.RLock()
	initialized := f.initialized
	f.mu.RUnlock()

	catalogStats := f.catalog.Stats()
	cacheStats := f.results.Stats()
	semWeight, kwWeight := f.engine.Weights()

	return map[string]any{
		"initialized":     initialized,
		"ready":           f.IsReady(),
		"active_profile":  f.cfg.ActiveProfile,
		"semantic_weight": semWeight,
		"keyword_weight":  kwWeight,
		"catalog": map[string]any{
			"commands":    catalogStats.Commands,
			"skills":      catalogStats.Skills,
			"version":     catalogStats.Version,
			"fingerprint": catalogStats.Fingerprint,
		},
		"cache": map[string]any{
			"size":     cacheStats.Size,
			"max_size": cacheStats.MaxSize,
			"ttl":      cacheStats.TTL.String(),
			"hits":     cacheStats.Hits,
			"misses":   cacheStats.Misses,
			"hit_rate": cacheStats.HitRate,
		},
	}
}

// classify runs the rule-based classifier, letting the model-assisted
// override replace the result when it is enabled and succeeds.
func (f *Facade) classify(ctx context.Context, query string) intent.Classification {
	cls := f.classifier.Classify(query)
	if override := f.classifier.ClassifyLLM(ctx, query, f.cfg.UseLLMClassifier, f.llm); override != nil {
		return *override
	}
	return cls
}

// resultFromMatches calibrates the top match into a RouteResult.
func (f *Facade) resultFromMatches(matches []search.Match, fromCache bool) *RouteResult {
	top := matches[0]
	level, calibrated := confidence.Calibrate(top.CombinedScore, f.cfg.activeProfile())
	return &RouteResult{
		Target:     parseTarget(top.ID),
		Score:      calibrated,
		Confidence: level,
		FromCache:  fromCache,
		Reasoning: fmt.Sprintf("hybrid retrieval ranked %s first of %d (combined %.3f)",
			top.ID, len(matches), top.CombinedScore),
	}
}

// rerank re-sorts cached matches with the current fusion weights, so a
// weight change after the cache write still orders served results
// correctly. Disabled by the rerank config flag.
func (f *Facade) rerank(matches []search.Match) []search.Match {
	if !f.cfg.Rerank || len(matches) < 2 {
		return matches
	}

	semWeight, kwWeight := f.engine.Weights()
	ranked := make([]search.Match, len(matches))
	copy(ranked, matches)
	for i := range ranked {
		ranked[i].CombinedScore = semWeight*ranked[i].SemanticScore + kwWeight*ranked[i].KeywordScore
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CombinedScore > ranked[j].CombinedScore
	})
	return ranked
}
