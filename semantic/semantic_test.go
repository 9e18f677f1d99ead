package semantic

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/jonwraymond/toolrouter/catalog"
)

func TestNewHashingEmbedder(t *testing.T) {
	if _, err := NewHashingEmbedder(0); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("expected ErrInvalidDimension, got %v", err)
	}

	e, err := NewHashingEmbedder(64)
	if err != nil {
		t.Fatalf("NewHashingEmbedder failed: %v", err)
	}
	if e.Dimension() != 64 {
		t.Errorf("expected dimension 64, got %d", e.Dimension())
	}
}

func TestHashingEmbedder_Embed(t *testing.T) {
	e, err := NewHashingEmbedder(64)
	if err != nil {
		t.Fatalf("NewHashingEmbedder failed: %v", err)
	}
	ctx := context.Background()

	// Deterministic.
	v1, _ := e.Embed(ctx, "find files matching pattern")
	v2, _ := e.Embed(ctx, "find files matching pattern")
	for i := range v1 {
		if v1[i] != v2[i] {
			t.Fatal("expected deterministic embeddings")
		}
	}

	// L2 normalized.
	var norm float64
	for _, x := range v1 {
		norm += float64(x) * float64(x)
	}
	if math.Abs(norm-1.0) > 1e-6 {
		t.Errorf("expected unit norm, got %v", norm)
	}

	// Case insensitive.
	v3, _ := e.Embed(ctx, "FIND FILES MATCHING PATTERN")
	for i := range v1 {
		if v1[i] != v3[i] {
			t.Fatal("expected case-insensitive embeddings")
		}
	}

	// Empty text yields the zero vector.
	zero, _ := e.Embed(ctx, "")
	for _, x := range zero {
		if x != 0 {
			t.Fatal("expected zero vector for empty text")
		}
	}
}

func testDocs() []catalog.Doc {
	return []catalog.Doc{
		{ID: "git.commit", Skill: "git", Name: "commit", Category: "version_control",
			Text: "commit git record changes to the repository"},
		{ID: "git.push", Skill: "git", Name: "push", Category: "version_control",
			Text: "push git upload commits to a remote repository"},
		{ID: "fs.glob", Skill: "fs", Name: "glob", Category: "file_discovery",
			Text: "glob fs find files matching a pattern"},
	}
}

func TestVectorIndex_Search(t *testing.T) {
	e, _ := NewHashingEmbedder(256)
	idx, err := NewVectorIndex(e)
	if err != nil {
		t.Fatalf("NewVectorIndex failed: %v", err)
	}

	ctx := context.Background()
	if err := idx.Build(ctx, testDocs()); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if idx.Len() != 3 {
		t.Fatalf("expected 3 docs, got %d", idx.Len())
	}

	hits, err := idx.Search(ctx, "find files matching a pattern")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 3 {
		t.Fatalf("expected all docs ranked, got %d", len(hits))
	}
	if hits[0].ID != "fs.glob" {
		t.Errorf("expected fs.glob first, got %s", hits[0].ID)
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Score > hits[i-1].Score {
			t.Error("expected descending score order")
		}
	}
	if hits[0].Payload["category"] != "file_discovery" {
		t.Errorf("expected payload category, got %v", hits[0].Payload)
	}

	// Scores are clamped to [0,1].
	for _, h := range hits {
		if h.Score < 0 || h.Score > 1 {
			t.Errorf("score %v out of range", h.Score)
		}
	}
}

func TestVectorIndex_NilEmbedder(t *testing.T) {
	if _, err := NewVectorIndex(nil); !errors.Is(err, ErrInvalidEmbedder) {
		t.Errorf("expected ErrInvalidEmbedder, got %v", err)
	}
}

type failingEmbedder struct {
	failAfter int
	calls     int
}

func (f *failingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.calls > f.failAfter {
		return nil, errors.New("provider unavailable")
	}
	return []float32{1, 0}, nil
}

func TestVectorIndex_BuildFailureKeepsPriorContents(t *testing.T) {
	embedder := &failingEmbedder{failAfter: 10}
	idx, err := NewVectorIndex(embedder)
	if err != nil {
		t.Fatalf("NewVectorIndex failed: %v", err)
	}

	ctx := context.Background()
	if err := idx.Build(ctx, testDocs()[:2]); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	embedder.failAfter = 0
	if err := idx.Build(ctx, testDocs()); err == nil {
		t.Fatal("expected build failure")
	}
	if idx.Len() != 2 {
		t.Errorf("expected prior contents intact, got %d", idx.Len())
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"mismatched lengths", []float32{1, 0}, []float32{1}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosine(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("cosine = %v, want %v", got, tt.want)
			}
		})
	}
}
