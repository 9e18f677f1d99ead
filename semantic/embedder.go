package semantic

import (
	"context"
	"errors"
	"hash/fnv"
	"math"
	"strings"
)

// Error values for embedding operations.
var (
	ErrInvalidEmbedder  = errors.New("embedder is required")
	ErrInvalidDimension = errors.New("embedding dimension must be positive")
)

// Embedder generates vector embeddings from text. Implementations are
// user-provided (OpenAI, Ollama, local models); [HashingEmbedder] is a
// deterministic local default with no network dependency.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// HashingEmbedder produces feature-hashed token vectors: each lowercased
// token is hashed into one of dim buckets and the vector is L2
// normalized. It captures token overlap only, but it is deterministic,
// dependency-free, and good enough for catalogs of command descriptions.
type HashingEmbedder struct {
	dim int
}

// NewHashingEmbedder creates a hashing embedder with the given dimension.
func NewHashingEmbedder(dim int) (*HashingEmbedder, error) {
	if dim <= 0 {
		return nil, ErrInvalidDimension
	}
	return &HashingEmbedder{dim: dim}, nil
}

// Dimension returns the embedding dimension.
func (e *HashingEmbedder) Dimension() int {
	return e.dim
}

// Embed hashes the text's tokens into a normalized vector. It never
// fails; empty text yields a zero vector.
func (e *HashingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.dim)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(token))
		vec[int(h.Sum32())%e.dim]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		inv := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= inv
		}
	}
	return vec, nil
}
