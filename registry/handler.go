package registry

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolHandler executes a published tool with the given arguments.
// It receives a context for cancellation and a map of arguments parsed
// from the MCP request.
type ToolHandler func(ctx context.Context, args map[string]any) (any, error)

// registerRoutingTools publishes the facade's operations as MCP tools.
func (s *Server) registerRoutingTools() {
	s.register(mcp.Tool{
		Name:        "route",
		Description: "Route a natural-language or command-style query to the best matching tool",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The query to route",
				},
			},
			"required": []string{"query"},
		},
	}, s.handleRoute)

	s.register(mcp.Tool{
		Name:        "route_hybrid",
		Description: "Return every candidate above a score threshold, ordered by relevance",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The query to match against the catalog",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of candidates",
				},
				"threshold": map[string]any{
					"type":        "number",
					"description": "Minimum combined score in [0,1]",
				},
			},
			"required": []string{"query"},
		},
	}, s.handleRouteHybrid)

	s.register(mcp.Tool{
		Name:        "router_stats",
		Description: "Return router readiness, catalog, and cache diagnostics",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}, s.handleStats)

	s.register(mcp.Tool{
		Name:        "cache_clear",
		Description: "Drop every cached routing result",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}, s.handleCacheClear)

	s.register(mcp.Tool{
		Name:        "cache_remove_expired",
		Description: "Sweep expired entries from the result cache",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}, s.handleCacheRemoveExpired)
}

func (s *Server) handleRoute(ctx context.Context, args map[string]any) (any, error) {
	query, err := stringArg(args, "query")
	if err != nil {
		return nil, err
	}
	return s.facade.Route(ctx, query), nil
}

func (s *Server) handleRouteHybrid(ctx context.Context, args map[string]any) (any, error) {
	query, err := stringArg(args, "query")
	if err != nil {
		return nil, err
	}

	limit := intArg(args, "limit", 0)
	threshold := floatArg(args, "threshold", 0)

	results := s.facade.RouteHybrid(ctx, query, limit, threshold)
	return map[string]any{
		"results": results,
		"count":   len(results),
	}, nil
}

func (s *Server) handleStats(ctx context.Context, args map[string]any) (any, error) {
	return s.facade.Stats(), nil
}

func (s *Server) handleCacheClear(ctx context.Context, args map[string]any) (any, error) {
	return map[string]any{"removed": s.facade.ClearCache()}, nil
}

func (s *Server) handleCacheRemoveExpired(ctx context.Context, args map[string]any) (any, error) {
	return map[string]any{"removed": s.facade.RemoveExpired()}, nil
}

func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s argument is required", ErrInvalidRequest, key)
	}
	return v, nil
}

// intArg reads an integer argument; JSON numbers arrive as float64.
func intArg(args map[string]any, key string, fallback int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return fallback
	}
}

func floatArg(args map[string]any, key string, fallback float64) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return fallback
	}
}
