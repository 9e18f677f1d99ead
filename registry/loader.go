package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/toolrouter/catalog"
)

// SourceConfig describes an MCP server whose tools become one skill in
// the routing catalog.
type SourceConfig struct {
	// Name is the skill name assigned to tools from this source.
	Name string
	// Description is the skill description.
	Description string
	// Category tags the skill for category-filtered retrieval.
	Category string
	// URL is the MCP server URL (http(s)://, sse://, stdio://).
	URL string
	// Headers are optional HTTP headers for authenticated sources.
	Headers map[string]string
	// MaxRetries controls reconnect attempts for streamable HTTP transport.
	MaxRetries int
	// Transport overrides URL handling when provided (useful for tests).
	Transport mcp.Transport
}

// SkillLoader builds routing catalogs from live MCP servers: each
// configured source is connected, its tool list fetched, and the tools
// wrapped as commands of one skill. Feed the result to
// Facade.Initialize.
type SkillLoader struct {
	mu      sync.Mutex
	sources map[string]SourceConfig
	logger  *slog.Logger
}

// NewSkillLoader creates an empty loader.
func NewSkillLoader(logger *slog.Logger) *SkillLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &SkillLoader{
		sources: make(map[string]SourceConfig),
		logger:  logger,
	}
}

// AddSource registers an MCP server as a skill source.
func (l *SkillLoader) AddSource(cfg SourceConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("%w: source name is required", ErrInvalidRequest)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.sources[cfg.Name]; exists {
		return fmt.Errorf("%w: source %s already registered", ErrInvalidRequest, cfg.Name)
	}
	l.sources[cfg.Name] = cfg
	return nil
}

// RemoveSource unregisters a skill source.
func (l *SkillLoader) RemoveSource(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.sources[name]; !exists {
		return fmt.Errorf("%w: %s", ErrLoaderNotFound, name)
	}
	delete(l.sources, name)
	return nil
}

// Load connects every source and returns one skill per source, in
// stable name order. A source that fails to connect is skipped with a
// warning rather than failing the whole load; an error is returned only
// when every source fails.
func (l *SkillLoader) Load(ctx context.Context) ([]catalog.Skill, error) {
	l.mu.Lock()
	sources := make([]SourceConfig, 0, len(l.sources))
	for _, cfg := range l.sources {
		sources = append(sources, cfg)
	}
	l.mu.Unlock()

	sort.Slice(sources, func(i, j int) bool { return sources[i].Name < sources[j].Name })

	skills := make([]catalog.Skill, 0, len(sources))
	failures := 0
	for _, cfg := range sources {
		skill, err := l.loadSource(ctx, cfg)
		if err != nil {
			l.logger.Warn("skill source failed, skipping",
				"source", cfg.Name, "error", err)
			failures++
			continue
		}
		skills = append(skills, skill)
	}

	if len(sources) > 0 && failures == len(sources) {
		return nil, fmt.Errorf("all %d skill sources failed", failures)
	}
	return skills, nil
}

func (l *SkillLoader) loadSource(ctx context.Context, cfg SourceConfig) (catalog.Skill, error) {
	transport, err := sourceTransport(cfg)
	if err != nil {
		return catalog.Skill{}, err
	}

	client := mcp.NewClient(&mcp.Implementation{Name: "toolrouter-loader"}, nil)
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return catalog.Skill{}, fmt.Errorf("connect: %w", err)
	}
	defer session.Close()

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		return catalog.Skill{}, fmt.Errorf("list tools: %w", err)
	}

	commands := make([]catalog.Command, 0, len(res.Tools))
	for _, tool := range res.Tools {
		if tool == nil {
			continue
		}
		commands = append(commands, catalog.Command{Tool: *tool})
	}

	l.logger.Debug("skill source loaded", "source", cfg.Name, "commands", len(commands))
	return catalog.Skill{
		Name:        cfg.Name,
		Description: cfg.Description,
		Category:    cfg.Category,
		Commands:    commands,
	}, nil
}

func sourceTransport(cfg SourceConfig) (mcp.Transport, error) {
	if cfg.Transport != nil {
		return cfg.Transport, nil
	}
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("source URL is required")
	}

	parsed, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid source URL: %w", err)
	}

	httpClient := httpClientWithHeaders(cfg.Headers)

	switch parsed.Scheme {
	case "http", "https":
		return &mcp.StreamableClientTransport{
			Endpoint:   cfg.URL,
			HTTPClient: httpClient,
			MaxRetries: cfg.MaxRetries,
		}, nil
	case "sse":
		parsed.Scheme = "http"
		return &mcp.SSEClientTransport{
			Endpoint:   parsed.String(),
			HTTPClient: httpClient,
		}, nil
	case "stdio":
		return &mcp.StdioTransport{}, nil
	default:
		return nil, fmt.Errorf("unsupported source URL scheme %q", parsed.Scheme)
	}
}

func httpClientWithHeaders(headers map[string]string) *http.Client {
	if len(headers) == 0 {
		return nil
	}
	clone := make(map[string]string, len(headers))
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		clone[k] = v
	}
	if len(clone) == 0 {
		return nil
	}
	return &http.Client{
		Transport: &headerRoundTripper{
			base:    http.DefaultTransport,
			headers: clone,
		},
	}
}

type headerRoundTripper struct {
	base    http.RoundTripper
	headers map[string]string
}

func (h *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	base := h.base
	if base == nil {
		base = http.DefaultTransport
	}
	for key, value := range h.headers {
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}
	return base.RoundTrip(req)
}
