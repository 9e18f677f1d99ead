package semantic

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/jonwraymond/toolrouter/catalog"
	"github.com/jonwraymond/toolrouter/search"
)

// indexedDoc holds a document's embedding and payload.
type indexedDoc struct {
	id      string
	vector  []float32
	payload map[string]any
}

// VectorIndex is an in-memory semantic index over catalog documents.
// It embeds each document's search text once at build time and answers
// queries by cosine similarity, returning all candidates ranked by
// descending score (the caller filters and truncates). It implements
// [search.Backend].
type VectorIndex struct {
	mu       sync.RWMutex
	embedder Embedder
	docs     []indexedDoc
}

// NewVectorIndex creates a vector index using the given embedder.
func NewVectorIndex(embedder Embedder) (*VectorIndex, error) {
	if embedder == nil {
		return nil, ErrInvalidEmbedder
	}
	return &VectorIndex{embedder: embedder}, nil
}

// Build replaces the index contents with embeddings of the given
// documents. A failed embedding aborts the build and leaves the
// previous contents intact.
func (v *VectorIndex) Build(ctx context.Context, docs []catalog.Doc) error {
	indexed := make([]indexedDoc, 0, len(docs))
	for _, doc := range docs {
		vec, err := v.embedder.Embed(ctx, doc.Text)
		if err != nil {
			return fmt.Errorf("embed %s: %w", doc.ID, err)
		}
		indexed = append(indexed, indexedDoc{
			id:     doc.ID,
			vector: vec,
			payload: map[string]any{
				"content":  doc.Text,
				"skill":    doc.Skill,
				"command":  doc.Name,
				"category": doc.Category,
			},
		})
	}

	v.mu.Lock()
	v.docs = indexed
	v.mu.Unlock()
	return nil
}

// Len returns the number of indexed documents.
func (v *VectorIndex) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.docs)
}

// Search embeds the query and returns every document ranked by cosine
// similarity (negatives clamped to 0), ties broken by ID for
// determinism.
func (v *VectorIndex) Search(ctx context.Context, query string) ([]search.Hit, error) {
	queryVec, err := v.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	hits := make([]search.Hit, 0, len(v.docs))
	for _, doc := range v.docs {
		score := cosine(queryVec, doc.vector)
		if score < 0 {
			score = 0
		}
		hits = append(hits, search.Hit{ID: doc.id, Score: score, Payload: doc.payload})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ID < hits[j].ID
	})
	return hits, nil
}

// cosine computes the cosine similarity of two vectors. Mismatched
// lengths or zero vectors score 0.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
