package mcp

import (
	"context"

	"github.com/preceptor-labs/preceptor-cli/internal/core/domain"
	"github.com/preceptor-labs/preceptor-cli/internal/core/ports/driving"
)

// mockQueryService returns a canned reply.
type mockQueryService struct {
	reply     domain.Reply
	lastQuery string
}

func (m *mockQueryService) Ask(ctx context.Context, query string) domain.Reply {
	m.lastQuery = query
	return m.reply
}

// mockIngestService records the batch it receives.
type mockIngestService struct {
	report  driving.IngestReport
	err     error
	records []domain.IngestRecord
}

func (m *mockIngestService) Ingest(ctx context.Context, records []domain.IngestRecord) (driving.IngestReport, error) {
	if m.err != nil {
		return driving.IngestReport{}, m.err
	}
	m.records = records
	return m.report, nil
}

func (m *mockIngestService) Clear(ctx context.Context) error {
	return m.err
}

// mockStatsService returns canned stats.
type mockStatsService struct {
	stats driving.SystemStats
	err   error
}

func (m *mockStatsService) Stats(ctx context.Context) (driving.SystemStats, error) {
	if m.err != nil {
		return driving.SystemStats{}, m.err
	}
	return m.stats, nil
}
