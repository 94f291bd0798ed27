package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/preceptor-labs/preceptor-cli/internal/core/domain"
	"github.com/preceptor-labs/preceptor-cli/internal/core/ports/driven"
	"github.com/preceptor-labs/preceptor-cli/internal/core/ports/driving"
	"github.com/preceptor-labs/preceptor-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService vectorises reference passages and appends them to
// the document index.
type IngestService struct {
	index     driven.DocumentIndex
	embedding driven.EmbeddingService
}

// NewIngestService creates an ingestion service.
func NewIngestService(index driven.DocumentIndex, embedding driven.EmbeddingService) *IngestService {
	return &IngestService{
		index:     index,
		embedding: embedding,
	}
}

// Ingest embeds the records in one batch and appends them to the index.
// Unlike querying, failures here surface to the caller so bad batches
// can be retried or rejected upstream.
func (s *IngestService) Ingest(ctx context.Context, records []domain.IngestRecord) (driving.IngestReport, error) {
	logger.Section("Document Ingestion")
	logger.Debug("Batch size: %d", len(records))

	if len(records) == 0 {
		return driving.IngestReport{}, fmt.Errorf("empty batch: %w", domain.ErrInvalidInput)
	}

	texts := make([]string, len(records))
	for i, r := range records {
		if r.Text == "" {
			return driving.IngestReport{}, fmt.Errorf("record %d has no text: %w", i, domain.ErrInvalidInput)
		}
		texts[i] = r.Text
	}

	vectors, err := s.embedding.EmbedBatch(ctx, texts)
	if err != nil {
		return driving.IngestReport{}, fmt.Errorf("embedding batch: %w", err)
	}
	for _, v := range vectors {
		domain.Normalize(v)
	}

	batchID := uuid.NewString()
	batch := make([]domain.IngestRecord, len(records))
	for i, r := range records {
		meta := make(map[string]any, len(r.Metadata)+1)
		for k, v := range r.Metadata {
			meta[k] = v
		}
		meta[domain.MetaBatchID] = batchID
		batch[i] = domain.IngestRecord{Text: r.Text, Metadata: meta}
	}

	if err := s.index.Add(ctx, batch, vectors); err != nil {
		return driving.IngestReport{}, fmt.Errorf("indexing batch: %w", err)
	}

	logger.Info("Ingested %d documents (batch %s)", len(records), batchID)
	return driving.IngestReport{
		BatchID:  batchID,
		Ingested: len(records),
	}, nil
}

// Clear resets the document index to empty.
func (s *IngestService) Clear(ctx context.Context) error {
	if err := s.index.Clear(); err != nil {
		return fmt.Errorf("clearing index: %w", err)
	}
	logger.Info("Document index cleared")
	return nil
}
