package router

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/toolrouter/catalog"
	"github.com/jonwraymond/toolrouter/confidence"
)

func testSkills() []catalog.Skill {
	return []catalog.Skill{
		{
			Name:        "git",
			Description: "Version control operations",
			Category:    "version_control",
			Commands: []catalog.Command{
				{Tool: mcp.Tool{Name: "commit", Description: "Record changes to the repository"}, Tags: []string{"save", "snapshot"}},
				{Tool: mcp.Tool{Name: "push", Description: "Upload commits to a remote repository"}},
			},
		},
		{
			Name:        "fs",
			Description: "Filesystem discovery",
			Category:    "file_discovery",
			Commands: []catalog.Command{
				{Tool: mcp.Tool{Name: "glob", Description: "Find files matching a glob pattern"}, Tags: []string{"find", "pattern"}},
				{Tool: mcp.Tool{Name: "list", Description: "List directory contents"}},
			},
		},
	}
}

func newInitializedFacade(t *testing.T) *Facade {
	t.Helper()
	f, err := New(Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := f.Initialize(context.Background(), testSkills()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return f
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultLimit = 0
	if _, err := New(Options{Config: cfg}); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestRoute_UninitializedUsesPersona(t *testing.T) {
	f, err := New(Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if f.IsReady() {
		t.Error("expected not ready before Initialize")
	}

	result := f.Route(context.Background(), "anything at all")
	if result == nil {
		t.Fatal("Route must never return nil")
	}
	if result.Confidence != confidence.Low {
		t.Errorf("expected low confidence from persona fallback, got %s", result.Confidence)
	}
}

func TestRoute_ExactMatch(t *testing.T) {
	f := newInitializedFacade(t)

	result := f.Route(context.Background(), "git.commit")
	if result.Target.Skill != "git" || result.Target.Command != "commit" {
		t.Fatalf("expected git.commit, got %s", result.Target)
	}
	if result.Confidence != confidence.High {
		t.Errorf("expected high confidence for exact match, got %s", result.Confidence)
	}
	if result.FromCache {
		t.Error("exact match should not be served from cache")
	}
}

func TestRoute_ExactMissFallsThroughToHybrid(t *testing.T) {
	f := newInitializedFacade(t)

	// Identifier-shaped but not in the catalog; hybrid retrieval still
	// finds the closest command.
	result := f.Route(context.Background(), "git.committing")
	if result == nil {
		t.Fatal("Route must never return nil")
	}
	if result.Target.String() == "git.committing" {
		t.Error("expected fallthrough, not a fabricated exact hit")
	}
}

func TestRoute_HybridAndCache(t *testing.T) {
	f := newInitializedFacade(t)
	ctx := context.Background()

	first := f.Route(ctx, "record changes to the repository")
	if first.Target.String() != "git.commit" {
		t.Fatalf("expected git.commit, got %s", first.Target)
	}
	if first.FromCache {
		t.Error("first route should not come from cache")
	}

	second := f.Route(ctx, "record changes to the repository")
	if !second.FromCache {
		t.Error("second identical route should come from cache")
	}
	if second.Target != first.Target {
		t.Errorf("cached target %s differs from original %s", second.Target, first.Target)
	}
}

func TestRoute_CancelledContextSkipsCacheWrite(t *testing.T) {
	f := newInitializedFacade(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := f.Route(ctx, "record changes to the repository")
	if result == nil {
		t.Fatal("Route must never return nil")
	}
	if f.CacheStats().Size != 0 {
		t.Error("aborted route must not write the cache")
	}
}

func TestRoute_NoMatchUsesPersona(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultThreshold = 0.99
	cfg.AdaptiveThresholdStep = 0 // threshold never relaxes
	f, err := New(Options{Config: cfg})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := f.Initialize(context.Background(), testSkills()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	result := f.Route(context.Background(), "zzqx unrelated gibberish")
	if result == nil {
		t.Fatal("Route must never return nil")
	}
	if result.Confidence != confidence.Low {
		t.Errorf("expected persona fallback confidence, got %s", result.Confidence)
	}
}

func TestRouteHybrid(t *testing.T) {
	f := newInitializedFacade(t)

	results := f.RouteHybrid(context.Background(), "repository commits", 10, 0.0)
	if len(results) == 0 {
		t.Fatal("expected hybrid results")
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Error("expected descending score order")
		}
	}

	// Uninitialized facade returns nil rather than failing.
	bare, err := New(Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := bare.RouteHybrid(context.Background(), "anything", 5, 0); got != nil {
		t.Errorf("expected nil from uninitialized facade, got %v", got)
	}
}

func TestRoute_CategoryFilter(t *testing.T) {
	f := newInitializedFacade(t)

	// File-discovery phrasing restricts candidates to the fs skill.
	result := f.Route(context.Background(), "find files matching pattern")
	if result.Target.Skill != "fs" {
		t.Errorf("expected fs target under file_discovery filter, got %s", result.Target)
	}
}

func TestInitialize_RebuildClearsCacheOnChange(t *testing.T) {
	f := newInitializedFacade(t)
	ctx := context.Background()

	f.Route(ctx, "record changes to the repository")
	if f.CacheStats().Size == 0 {
		t.Fatal("expected a cached entry")
	}

	// Identical catalog: cache survives.
	if err := f.Initialize(ctx, testSkills()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if f.CacheStats().Size == 0 {
		t.Error("unchanged catalog should keep the cache")
	}

	// Changed catalog: cache is cleared.
	skills := testSkills()
	skills[0].Commands[0].Description = "Record staged changes only"
	if err := f.Initialize(ctx, skills); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if f.CacheStats().Size != 0 {
		t.Error("changed catalog should clear the cache")
	}
}

func TestStats(t *testing.T) {
	f := newInitializedFacade(t)

	stats := f.Stats()
	if stats["initialized"] != true || stats["ready"] != true {
		t.Errorf("unexpected readiness: %+v", stats)
	}
	catalogStats := stats["catalog"].(map[string]any)
	if catalogStats["commands"] != 4 {
		t.Errorf("expected 4 commands, got %v", catalogStats["commands"])
	}
	if _, ok := stats["cache"].(map[string]any); !ok {
		t.Error("expected cache stats payload")
	}
}

func TestCacheOperations(t *testing.T) {
	f := newInitializedFacade(t)
	ctx := context.Background()

	f.Route(ctx, "record changes to the repository")
	if removed := f.ClearCache(); removed != 1 {
		t.Errorf("expected 1 cleared entry, got %d", removed)
	}
	if removed := f.RemoveExpired(); removed != 0 {
		t.Errorf("expected 0 expired entries, got %d", removed)
	}
}
