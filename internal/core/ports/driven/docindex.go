package driven

import (
	"context"

	"github.com/preceptor-labs/preceptor-cli/internal/core/domain"
)

// DocumentIndex provides exact nearest-neighbour search over ingested
// passages plus durable persistence.
//
// Implementations must uphold the parity invariant: the vector structure
// and the parallel document/metadata lists always have equal length and
// consistent ordering, across every mutation and after every reload.
type DocumentIndex interface {
	// Add appends documents and their matching vectors, then persists the
	// full snapshot synchronously before returning. The batch is rejected
	// wholesale with domain.ErrDimensionMismatch when counts or vector
	// widths disagree; nothing is partially written.
	Add(ctx context.Context, records []domain.IngestRecord, vectors [][]float32) error

	// Search returns the k nearest stored passages by squared Euclidean
	// distance, best first, ties broken by insertion order. An empty index
	// yields an empty result, not an error.
	Search(ctx context.Context, vector []float32, k int) (domain.SearchResult, error)

	// Restore reloads the persisted snapshot. A missing, absent or
	// zero-length artifact means the whole store loads empty; partial
	// restore is disallowed.
	Restore() error

	// Clear resets all in-memory and on-disk state to empty. Idempotent.
	Clear() error

	// Stats reports the read-only observability surface.
	Stats() domain.IndexStats
}
