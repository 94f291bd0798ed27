package driving

import (
	"context"

	"github.com/preceptor-labs/preceptor-cli/internal/core/domain"
)

// IngestService vectorises and stores reference passages.
type IngestService interface {
	// Ingest embeds the records and appends them to the document index.
	// Unlike querying, ingestion-time failures are surfaced to the caller
	// so bad batches can be retried or rejected upstream.
	Ingest(ctx context.Context, records []domain.IngestRecord) (IngestReport, error)

	// Clear resets the document index to empty.
	Clear(ctx context.Context) error
}

// IngestReport summarises a completed ingestion batch.
type IngestReport struct {
	// BatchID identifies the batch in document metadata.
	BatchID string `json:"batch_id"`

	// Ingested is the number of documents stored.
	Ingested int `json:"ingested"`
}
