package services

import (
	"context"

	"github.com/preceptor-labs/preceptor-cli/internal/core/ports/driven"
	"github.com/preceptor-labs/preceptor-cli/internal/core/ports/driving"
)

// Ensure StatsService implements the interface.
var _ driving.StatsService = (*StatsService)(nil)

// StatsService aggregates the read-only observability surface.
type StatsService struct {
	index     driven.DocumentIndex
	intents   driven.IntentIndex
	embedding driven.EmbeddingService
}

// NewStatsService creates a stats service. The embedding service is
// optional (can be nil).
func NewStatsService(
	index driven.DocumentIndex,
	intents driven.IntentIndex,
	embedding driven.EmbeddingService,
) *StatsService {
	return &StatsService{
		index:     index,
		intents:   intents,
		embedding: embedding,
	}
}

// Stats reports document index and intent table statistics.
func (s *StatsService) Stats(ctx context.Context) (driving.SystemStats, error) {
	stats := driving.SystemStats{
		Index:       s.index.Stats(),
		IntentCount: s.intents.Count(),
	}
	if s.embedding != nil {
		stats.EmbeddingModel = s.embedding.ModelName()
	}
	return stats, nil
}
