package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Contract: returned vectors must be unit-norm (L2 norm = 1 within floating
// tolerance) so that squared Euclidean distance between two vectors is a
// monotonic transform of cosine similarity (distance = 2 - 2*cosine).
// Core normalises defensively on receipt; a zero-norm vector is left
// untouched and treated as degenerate.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, all-minilm, multilingual MiniLM variants)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// This is more efficient than calling Embed in a loop for large batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768, 1536).
	// This is determined by the model and must match the DocumentIndex
	// configuration.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
