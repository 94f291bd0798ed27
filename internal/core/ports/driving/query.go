package driving

import (
	"context"

	"github.com/preceptor-labs/preceptor-cli/internal/core/domain"
)

// QueryService routes free-text questions to a resolution path and
// returns the resolved reply.
type QueryService interface {
	// Ask resolves a single query. It never returns an error for internal
	// retrieval or generation failures; those degrade to the fallback
	// reply with zero confidence.
	Ask(ctx context.Context, query string) domain.Reply
}

// StatsService exposes read-only system statistics.
type StatsService interface {
	// Stats reports document index and intent table statistics.
	Stats(ctx context.Context) (SystemStats, error)
}

// SystemStats aggregates the observability surface of the engine.
type SystemStats struct {
	Index          domain.IndexStats `json:"index"`
	IntentCount    int               `json:"intent_count"`
	EmbeddingModel string            `json:"embedding_model"`
}
