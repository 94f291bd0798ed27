package driven

import (
	"context"
	"time"

	"github.com/preceptor-labs/preceptor-cli/internal/core/domain"
)

// HistoryEntry records one routing decision for observability.
type HistoryEntry struct {
	// ID is a unique identifier for the entry.
	ID string

	// Query is the raw query text as received.
	Query string

	// Category is the lexical classification of the query.
	Category domain.QueryCategory

	// UsedRetrieval is true when the answer came from document search.
	UsedRetrieval bool

	// Confidence is the confidence of the resolved reply.
	Confidence float64

	// Answer is the resolved reply text.
	Answer string

	// CreatedAt is when the query was processed.
	CreatedAt time.Time
}

// HistoryStore persists the routing decision journal.
// This is an optional service - when nil, decisions are not recorded.
// Recording is best-effort and must never fail the query it describes.
type HistoryStore interface {
	// Record appends one routing decision.
	Record(ctx context.Context, entry HistoryEntry) error

	// Recent returns the most recent entries, newest first.
	Recent(ctx context.Context, n int) ([]HistoryEntry, error)

	// Close releases resources.
	Close() error
}
