// Package keyword provides a bleve-backed lexical retrieval backend for
// the hybrid router. Bleve relevance scores are normalized per query to
// [0,1] so they fuse directly with semantic scores.
package keyword

import (
	"context"
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/jonwraymond/toolrouter/catalog"
	"github.com/jonwraymond/toolrouter/search"
)

// indexedDoc is the document shape handed to bleve.
type indexedDoc struct {
	Text     string `json:"text"`
	Skill    string `json:"skill"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Index is a memory-only bleve index over catalog documents. It
// implements [search.Backend].
type Index struct {
	mu       sync.RWMutex
	idx      bleve.Index
	payloads map[string]map[string]any
	size     int
}

// NewIndex creates an empty keyword index.
func NewIndex() (*Index, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create bleve index: %w", err)
	}
	return &Index{idx: idx, payloads: make(map[string]map[string]any)}, nil
}

// Build replaces the index contents with the given documents. The old
// index is closed after the swap.
func (k *Index) Build(docs []catalog.Doc) error {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return fmt.Errorf("create bleve index: %w", err)
	}

	batch := idx.NewBatch()
	payloads := make(map[string]map[string]any, len(docs))
	for _, doc := range docs {
		if err := batch.Index(doc.ID, indexedDoc{
			Text:     doc.Text,
			Skill:    doc.Skill,
			Name:     doc.Name,
			Category: doc.Category,
		}); err != nil {
			_ = idx.Close()
			return fmt.Errorf("index %s: %w", doc.ID, err)
		}
		payloads[doc.ID] = map[string]any{
			"content":  doc.Text,
			"skill":    doc.Skill,
			"command":  doc.Name,
			"category": doc.Category,
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return fmt.Errorf("apply batch: %w", err)
	}

	k.mu.Lock()
	old := k.idx
	k.idx = idx
	k.payloads = payloads
	k.size = len(docs)
	k.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	return nil
}

// Len returns the number of indexed documents.
func (k *Index) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.size
}

// Search runs a match query and returns every hit ranked by bleve
// score, normalized to [0,1] against the top hit. Empty queries return
// no hits.
func (k *Index) Search(ctx context.Context, query string) ([]search.Hit, error) {
	if query == "" {
		return nil, nil
	}

	k.mu.RLock()
	idx := k.idx
	payloads := k.payloads
	size := k.size
	k.mu.RUnlock()

	if idx == nil || size == 0 {
		return nil, nil
	}

	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(query), size, 0, false)
	res, err := idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("bleve search: %w", err)
	}

	// Bleve scores are unbounded; scale against the top hit so fusion
	// sees [0,1] like the semantic backend.
	var top float64
	if len(res.Hits) > 0 {
		top = res.Hits[0].Score
	}

	hits := make([]search.Hit, 0, len(res.Hits))
	for _, hit := range res.Hits {
		score := hit.Score
		if top > 0 {
			score /= top
		}
		hits = append(hits, search.Hit{
			ID:      hit.ID,
			Score:   score,
			Payload: payloads[hit.ID],
		})
	}
	return hits, nil
}

// Close releases the underlying bleve index.
func (k *Index) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.idx == nil {
		return nil
	}
	err := k.idx.Close()
	k.idx = nil
	return err
}
