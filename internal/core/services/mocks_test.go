package services

import (
	"context"
	"sort"

	"github.com/preceptor-labs/preceptor-cli/internal/core/domain"
	"github.com/preceptor-labs/preceptor-cli/internal/core/ports/driven"
)

// mockIntentIndex returns canned matches.
type mockIntentIndex struct {
	matches []domain.IntentMatch
	set     domain.IntentSet
}

func (m *mockIntentIndex) Match(query string, k int) []domain.IntentMatch {
	if len(m.matches) > k {
		return m.matches[:k]
	}
	return m.matches
}

func (m *mockIntentIndex) Load(set domain.IntentSet) error {
	m.set = set
	return nil
}

func (m *mockIntentIndex) Count() int {
	return len(m.set.Intents)
}

// mockEmbedding returns a fixed vector per text, or a canned error.
type mockEmbedding struct {
	vectors map[string][]float32
	dim     int
	err     error
	calls   int
}

func (m *mockEmbedding) Embed(ctx context.Context, text string) ([]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if v, ok := m.vectors[text]; ok {
		return append([]float32(nil), v...), nil
	}
	v := make([]float32, m.dim)
	v[0] = 1
	return v, nil
}

func (m *mockEmbedding) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for _, t := range texts {
		v, err := m.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (m *mockEmbedding) Dimensions() int                { return m.dim }
func (m *mockEmbedding) ModelName() string              { return "mock-embedder" }
func (m *mockEmbedding) Ping(ctx context.Context) error { return nil }
func (m *mockEmbedding) Close() error                   { return nil }

// mockDocIndex is an in-memory brute-force index without persistence.
type mockDocIndex struct {
	records []domain.IngestRecord
	vectors [][]float32
	addErr  error
	search  error
}

func (m *mockDocIndex) Add(ctx context.Context, records []domain.IngestRecord, vectors [][]float32) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.records = append(m.records, records...)
	m.vectors = append(m.vectors, vectors...)
	return nil
}

func (m *mockDocIndex) Search(ctx context.Context, vector []float32, k int) (domain.SearchResult, error) {
	if m.search != nil {
		return domain.SearchResult{}, m.search
	}
	matches := make([]domain.DocumentMatch, 0, len(m.vectors))
	for i, v := range m.vectors {
		var d float64
		for j := range v {
			diff := float64(v[j]) - float64(vector[j])
			d += diff * diff
		}
		matches = append(matches, domain.DocumentMatch{
			Text:     m.records[i].Text,
			Metadata: m.records[i].Metadata,
			Distance: d,
		})
	}
	sort.SliceStable(matches, func(a, b int) bool { return matches[a].Distance < matches[b].Distance })
	if len(matches) > k {
		matches = matches[:k]
	}
	return domain.SearchResult{Matches: matches}, nil
}

func (m *mockDocIndex) Restore() error { return nil }

func (m *mockDocIndex) Clear() error {
	m.records = nil
	m.vectors = nil
	return nil
}

func (m *mockDocIndex) Stats() domain.IndexStats {
	return domain.IndexStats{DocumentCount: len(m.records)}
}

// mockReader returns a canned span or error.
type mockReader struct {
	span  driven.Span
	err   error
	calls int
}

func (m *mockReader) Extract(ctx context.Context, question, passage string) (driven.Span, error) {
	m.calls++
	if m.err != nil {
		return driven.Span{}, m.err
	}
	return m.span, nil
}

func (m *mockReader) ModelName() string { return "mock-reader" }
func (m *mockReader) Close() error      { return nil }

// mockHistory records entries in memory.
type mockHistory struct {
	entries []driven.HistoryEntry
	err     error
}

func (m *mockHistory) Record(ctx context.Context, entry driven.HistoryEntry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockHistory) Recent(ctx context.Context, n int) ([]driven.HistoryEntry, error) {
	return m.entries, nil
}

func (m *mockHistory) Close() error { return nil }
