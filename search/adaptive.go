package search

import (
	"context"
	"log/slog"
)

// AdaptiveParams configures an adaptive search.
type AdaptiveParams struct {
	// Limit is the maximum number of matches per attempt.
	Limit int

	// Threshold is the starting minimum combined score.
	Threshold float64

	// Step is subtracted from the threshold on each retry.
	Step float64

	// MaxAttempts bounds the retry loop. Values below 1 are treated as 1.
	MaxAttempts int

	// Category restricts results to a catalog category. Empty means none.
	Category string
}

// AdaptiveController wraps an Engine with progressive threshold
// relaxation: each attempt lowers the acceptance threshold by Step until
// results are found or attempts are exhausted. Attempts are independent;
// results from different attempts are never merged.
type AdaptiveController struct {
	engine *Engine
	logger *slog.Logger
}

// NewAdaptiveController creates an adaptive controller over the engine.
func NewAdaptiveController(engine *Engine, logger *slog.Logger) *AdaptiveController {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdaptiveController{engine: engine, logger: logger}
}

// SearchAdaptive runs up to MaxAttempts engine searches, lowering the
// effective threshold by Step each round (floored at 0). The first
// non-empty result is returned immediately; an exhausted loop returns nil.
// A cancelled context abandons the remaining attempts.
func (c *AdaptiveController) SearchAdaptive(ctx context.Context, query string, p AdaptiveParams) []Match {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return nil
		}

		threshold := p.Threshold - float64(attempt-1)*p.Step
		if threshold < 0 {
			threshold = 0
		}

		matches := c.engine.Search(ctx, query, Params{
			Limit:    p.Limit,
			MinScore: threshold,
			Category: p.Category,
		})
		if len(matches) > 0 {
			if attempt > 1 {
				c.logger.Debug("adaptive search found results after relaxation",
					"query", query, "attempt", attempt, "threshold", threshold)
			}
			return matches
		}
	}

	c.logger.Debug("adaptive search exhausted", "query", query, "attempts", attempts)
	return nil
}
