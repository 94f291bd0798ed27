package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preceptor-labs/preceptor-cli/internal/core/domain"
)

func TestIngestBatch(t *testing.T) {
	index := &mockDocIndex{}
	embed := &mockEmbedding{dim: 4}
	svc := NewIngestService(index, embed)

	report, err := svc.Ingest(context.Background(), []domain.IngestRecord{
		{Text: "El módulo dura 6 semanas.", Metadata: map[string]any{"title": "duración"}},
		{Text: "Las clases son de lunes a viernes."},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, report.BatchID)
	assert.Equal(t, 2, report.Ingested)
	require.Len(t, index.records, 2)

	// Batch ID is stamped into every record's metadata.
	assert.Equal(t, report.BatchID, index.records[0].Metadata[domain.MetaBatchID])
	assert.Equal(t, report.BatchID, index.records[1].Metadata[domain.MetaBatchID])

	// Caller metadata survives.
	assert.Equal(t, "duración", index.records[0].Metadata["title"])
}

func TestIngestDoesNotMutateCallerMetadata(t *testing.T) {
	meta := map[string]any{"title": "duración"}
	svc := NewIngestService(&mockDocIndex{}, &mockEmbedding{dim: 4})

	_, err := svc.Ingest(context.Background(), []domain.IngestRecord{
		{Text: "El módulo dura 6 semanas.", Metadata: meta},
	})
	require.NoError(t, err)

	assert.Len(t, meta, 1, "caller map must not gain the batch key")
}

func TestIngestVectorsAreNormalized(t *testing.T) {
	index := &mockDocIndex{}
	embed := &mockEmbedding{
		dim:     4,
		vectors: map[string][]float32{"texto de prueba suficientemente largo": {3, 4, 0, 0}},
	}
	svc := NewIngestService(index, embed)

	_, err := svc.Ingest(context.Background(), []domain.IngestRecord{
		{Text: "texto de prueba suficientemente largo"},
	})
	require.NoError(t, err)

	require.Len(t, index.vectors, 1)
	assert.InDelta(t, 0.6, float64(index.vectors[0][0]), 1e-6)
	assert.InDelta(t, 0.8, float64(index.vectors[0][1]), 1e-6)
}

func TestIngestRejectsEmptyBatch(t *testing.T) {
	svc := NewIngestService(&mockDocIndex{}, &mockEmbedding{dim: 4})

	_, err := svc.Ingest(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestIngestRejectsEmptyText(t *testing.T) {
	svc := NewIngestService(&mockDocIndex{}, &mockEmbedding{dim: 4})

	_, err := svc.Ingest(context.Background(), []domain.IngestRecord{{Text: ""}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestIngestSurfacesEmbeddingError(t *testing.T) {
	embed := &mockEmbedding{dim: 4, err: domain.ErrEmbeddingUnavailable}
	svc := NewIngestService(&mockDocIndex{}, embed)

	_, err := svc.Ingest(context.Background(), []domain.IngestRecord{{Text: "texto"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEmbeddingUnavailable))
}

func TestIngestSurfacesIndexError(t *testing.T) {
	index := &mockDocIndex{addErr: domain.ErrDimensionMismatch}
	svc := NewIngestService(index, &mockEmbedding{dim: 4})

	_, err := svc.Ingest(context.Background(), []domain.IngestRecord{{Text: "texto"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDimensionMismatch))
}

func TestIngestClear(t *testing.T) {
	index := &mockDocIndex{}
	svc := NewIngestService(index, &mockEmbedding{dim: 4})

	_, err := svc.Ingest(context.Background(), []domain.IngestRecord{{Text: "texto"}})
	require.NoError(t, err)
	require.NoError(t, svc.Clear(context.Background()))
	assert.Empty(t, index.records)
}

func TestStats(t *testing.T) {
	index := &mockDocIndex{}
	intents := &mockIntentIndex{}
	require.NoError(t, intents.Load(domain.DefaultIntentSet()))
	require.NoError(t, index.Add(context.Background(),
		[]domain.IngestRecord{{Text: "El módulo dura 6 semanas."}}, [][]float32{{1, 0, 0, 0}}))

	svc := NewStatsService(index, intents, &mockEmbedding{dim: 4})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Index.DocumentCount)
	assert.Equal(t, 1, stats.IntentCount)
	assert.Equal(t, "mock-embedder", stats.EmbeddingModel)
}

func TestStatsWithoutEmbeddingService(t *testing.T) {
	svc := NewStatsService(&mockDocIndex{}, &mockIntentIndex{}, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stats.EmbeddingModel)
	assert.Zero(t, stats.Index.DocumentCount)
}
