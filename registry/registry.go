package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/toolrouter/router"
)

// protocolVersion is the MCP protocol revision reported on initialize.
const protocolVersion = "2024-11-05"

// ServerInfo describes this MCP server for the initialize response.
type ServerInfo struct {
	Name    string
	Version string
}

// Config configures a Server.
type Config struct {
	ServerInfo ServerInfo

	// Logger receives request logs. Nil uses slog.Default().
	Logger *slog.Logger
}

// Server exposes a routing facade over the MCP protocol. The facade's
// operations are published as MCP tools (route, route_hybrid,
// router_stats, cache_clear, cache_remove_expired) so any MCP client
// can drive routing.
type Server struct {
	facade *router.Facade
	config Config
	logger *slog.Logger

	tools    []mcp.Tool
	handlers map[string]ToolHandler
}

// NewServer creates an MCP server over the given facade.
func NewServer(facade *router.Facade, cfg Config) (*Server, error) {
	if facade == nil {
		return nil, fmt.Errorf("%w: facade is required", ErrInvalidRequest)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		facade:   facade,
		config:   cfg,
		logger:   logger,
		handlers: make(map[string]ToolHandler),
	}
	s.registerRoutingTools()
	return s, nil
}

// register publishes a tool definition with its handler.
func (s *Server) register(tool mcp.Tool, handler ToolHandler) {
	s.tools = append(s.tools, tool)
	s.handlers[tool.Name] = handler
}

// ListTools returns the published tool definitions.
func (s *Server) ListTools(ctx context.Context) []mcp.Tool {
	tools := make([]mcp.Tool, len(s.tools))
	copy(tools, s.tools)
	return tools
}

// Execute runs a published tool by name with the given arguments.
func (s *Server) Execute(ctx context.Context, name string, args map[string]any) (any, error) {
	handler, ok := s.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	result, err := handler(ctx, args)
	if err != nil {
		s.logger.Warn("tool execution failed", "tool", name, "error", err)
		return nil, err
	}
	return result, nil
}

// Facade returns the underlying routing facade for host-side
// operations such as Initialize.
func (s *Server) Facade() *router.Facade {
	return s.facade
}
