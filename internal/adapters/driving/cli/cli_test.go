package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preceptor-labs/preceptor-cli/internal/core/domain"
	"github.com/preceptor-labs/preceptor-cli/internal/core/ports/driving"
)

// stubQueryService returns a canned reply.
type stubQueryService struct {
	reply     domain.Reply
	lastQuery string
}

func (s *stubQueryService) Ask(ctx context.Context, query string) domain.Reply {
	s.lastQuery = query
	return s.reply
}

// stubIngestService records batches.
type stubIngestService struct {
	report  driving.IngestReport
	err     error
	records []domain.IngestRecord
	cleared bool
}

func (s *stubIngestService) Ingest(ctx context.Context, records []domain.IngestRecord) (driving.IngestReport, error) {
	if s.err != nil {
		return driving.IngestReport{}, s.err
	}
	s.records = records
	return s.report, nil
}

func (s *stubIngestService) Clear(ctx context.Context) error {
	s.cleared = true
	return s.err
}

// stubStatsService returns canned stats.
type stubStatsService struct {
	stats driving.SystemStats
}

func (s *stubStatsService) Stats(ctx context.Context) (driving.SystemStats, error) {
	return s.stats, nil
}

// stubIntentIndex tracks the loaded table.
type stubIntentIndex struct {
	set domain.IntentSet
}

func (s *stubIntentIndex) Match(query string, k int) []domain.IntentMatch { return nil }
func (s *stubIntentIndex) Load(set domain.IntentSet) error                { s.set = set; return nil }
func (s *stubIntentIndex) Count() int                                     { return len(s.set.Intents) }

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestAskCmd_PrintsReply(t *testing.T) {
	stub := &stubQueryService{reply: domain.Reply{
		Text:       "¡Hola! ¿En qué puedo ayudarte?",
		Confidence: 0.9,
	}}
	SetQueryService(stub)
	defer SetQueryService(nil)

	out, err := execute(t, "ask", "hola")
	require.NoError(t, err)

	assert.Equal(t, "hola", stub.lastQuery)
	assert.Contains(t, out, "¡Hola! ¿En qué puedo ayudarte?")
	assert.Contains(t, out, "0.90")
}

func TestAskCmd_JoinsArgs(t *testing.T) {
	stub := &stubQueryService{reply: domain.Reply{Text: "respuesta"}}
	SetQueryService(stub)
	defer SetQueryService(nil)

	_, err := execute(t, "ask", "cuánto", "dura", "el", "módulo")
	require.NoError(t, err)
	assert.Equal(t, "cuánto dura el módulo", stub.lastQuery)
}

func TestAskCmd_JSONOutput(t *testing.T) {
	stub := &stubQueryService{reply: domain.Reply{
		Text:          "El módulo dura 6 semanas.",
		UsedRetrieval: true,
		Confidence:    0.82,
		Evidence:      []domain.Evidence{{Preview: "El módulo dura 6 semanas."}},
	}}
	SetQueryService(stub)
	defer SetQueryService(nil)
	defer func() { askJSON = false }()

	out, err := execute(t, "ask", "--json", "¿cuánto dura?")
	require.NoError(t, err)

	var reply domain.Reply
	require.NoError(t, json.Unmarshal([]byte(out), &reply))
	assert.True(t, reply.UsedRetrieval)
	assert.Len(t, reply.Evidence, 1)
}

func TestAskCmd_FailsWithoutService(t *testing.T) {
	SetQueryService(nil)

	_, err := execute(t, "ask", "hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestIngestCmd_ReadsJSONFile(t *testing.T) {
	stub := &stubIngestService{report: driving.IngestReport{BatchID: "batch-1", Ingested: 2}}
	SetIngestService(stub)
	defer SetIngestService(nil)

	records := []domain.IngestRecord{
		{Text: "El módulo dura 6 semanas.", Metadata: map[string]any{"title": "duración"}},
		{Text: "Las clases son de lunes a viernes."},
	}
	data, err := json.Marshal(records)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "docs.json")
	require.NoError(t, os.WriteFile(path, data, 0600))

	out, err := execute(t, "ingest", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Ingested 2 documents")
	require.Len(t, stub.records, 2)
	assert.Equal(t, "duración", stub.records[0].Metadata["title"])
}

func TestIngestCmd_RejectsBadJSON(t *testing.T) {
	SetIngestService(&stubIngestService{})
	defer SetIngestService(nil)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{no es json"), 0600))

	_, err := execute(t, "ingest", path)
	require.Error(t, err)
}

func TestClearCmd_Force(t *testing.T) {
	stub := &stubIngestService{}
	SetIngestService(stub)
	defer SetIngestService(nil)
	defer func() { clearForce = false }()

	out, err := execute(t, "clear", "--force")
	require.NoError(t, err)
	assert.True(t, stub.cleared)
	assert.Contains(t, out, "cleared")
}

func TestStatsCmd_PrintsCounts(t *testing.T) {
	SetStatsService(&stubStatsService{stats: driving.SystemStats{
		Index:          domain.IndexStats{DocumentCount: 7, Dimension: 384},
		IntentCount:    4,
		EmbeddingModel: "all-minilm",
	}})
	defer SetStatsService(nil)

	out, err := execute(t, "stats")
	require.NoError(t, err)

	assert.Contains(t, out, "Documents: 7")
	assert.Contains(t, out, "Dimension: 384")
	assert.Contains(t, out, "Intents:   4")
	assert.Contains(t, out, "all-minilm")
}

func TestIntentsLoadCmd_ReplacesTable(t *testing.T) {
	stub := &stubIntentIndex{}
	SetIntentIndex(stub)
	defer SetIntentIndex(nil)

	set := domain.DefaultIntentSet()
	data, err := json.Marshal(set)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "intents.json")
	require.NoError(t, os.WriteFile(path, data, 0600))

	out, err := execute(t, "intents", "load", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Loaded 1 intents")
	assert.Equal(t, 1, stub.Count())
}

func TestIntentsLoadCmd_RejectsEmptyTable(t *testing.T) {
	SetIntentIndex(&stubIntentIndex{})
	defer SetIntentIndex(nil)

	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"intents": []}`), 0600))

	_, err := execute(t, "intents", "load", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no intents")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "preceptor version")
}

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [pregunta]", askCmd.Use)
}

func TestHistoryCmd_HasLimitFlag(t *testing.T) {
	flag := historyCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "10", flag.DefValue)
}
