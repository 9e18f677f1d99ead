// Package semantic provides embedding-based retrieval for the hybrid
// router.
//
// # Core Interfaces
//
//   - [Embedder]: generates vector embeddings from text (user-provided)
//   - [VectorIndex]: in-memory cosine-similarity index over catalog
//     documents, implementing search.Backend
//
// # Bring Your Own Embedder
//
// Any embedding provider works:
//
//	type MyEmbedder struct {
//	    client *openai.Client
//	}
//
//	func (e *MyEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
//	    resp, err := e.client.CreateEmbedding(ctx, openai.EmbeddingRequest{
//	        Model: "text-embedding-3-small",
//	        Input: []string{text},
//	    })
//	    if err != nil {
//	        return nil, err
//	    }
//	    return resp.Data[0].Embedding, nil
//	}
//
// [HashingEmbedder] is the dependency-free default: feature-hashed
// token vectors, deterministic across processes.
//
// # Thread Safety
//
// VectorIndex guards its document set with an RWMutex; Build replaces
// the set atomically and Search is safe for concurrent use.
package semantic
