package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/preceptor-labs/preceptor-cli/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Query string `json:"query" jsonschema:"the question to answer"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Text          string           `json:"text"`
	UsedRetrieval bool             `json:"used_retrieval"`
	Confidence    float64          `json:"confidence"`
	Evidence      []EvidenceOutput `json:"evidence,omitempty"`
}

// EvidenceOutput represents one supporting passage.
type EvidenceOutput struct {
	Preview  string         `json:"content_preview"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// IngestInput is the input schema for the ingest_documents tool.
type IngestInput struct {
	Documents []IngestDocumentInput `json:"documents" jsonschema:"the passages to store"`
}

// IngestDocumentInput is one passage to ingest.
type IngestDocumentInput struct {
	Text     string         `json:"text" jsonschema:"the passage text"`
	Metadata map[string]any `json:"metadata,omitempty" jsonschema:"open key-value metadata for the passage"`
}

// IngestOutput is the output schema for the ingest_documents tool.
type IngestOutput struct {
	BatchID  string `json:"batch_id"`
	Ingested int    `json:"ingested"`
}

// StatsInput is the input schema for the stats tool.
type StatsInput struct{}

// StatsOutput is the output schema for the stats tool.
type StatsOutput struct {
	DocumentCount  int    `json:"document_count"`
	Dimension      int    `json:"index_dimension"`
	IntentCount    int    `json:"intent_count"`
	EmbeddingModel string `json:"embedding_model,omitempty"`
	LastUpdated    string `json:"last_updated,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a free-text question from the curated intents or the ingested course materials",
	}, s.handleAsk)

	if s.ports.Ingest != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ingest_documents",
			Description: "Store reference passages in the document index",
		}, s.handleIngest)
	}

	if s.ports.Stats != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "stats",
			Description: "Report document index and intent table statistics",
		}, s.handleStats)
	}
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	reply := s.ports.Query.Ask(ctx, input.Query)

	output := AskOutput{
		Text:          reply.Text,
		UsedRetrieval: reply.UsedRetrieval,
		Confidence:    reply.Confidence,
	}
	for _, ev := range reply.Evidence {
		output.Evidence = append(output.Evidence, EvidenceOutput{
			Preview:  ev.Preview,
			Metadata: ev.Metadata,
		})
	}

	return nil, output, nil
}

// handleIngest handles the ingest_documents tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	records := make([]domain.IngestRecord, len(input.Documents))
	for i, d := range input.Documents {
		records[i] = domain.IngestRecord{
			Text:     d.Text,
			Metadata: d.Metadata,
		}
	}

	report, err := s.ports.Ingest.Ingest(ctx, records)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	return nil, IngestOutput{
		BatchID:  report.BatchID,
		Ingested: report.Ingested,
	}, nil
}

// handleStats handles the stats tool invocation.
func (s *Server) handleStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatsInput,
) (*mcp.CallToolResult, StatsOutput, error) {
	stats, err := s.ports.Stats.Stats(ctx)
	if err != nil {
		return nil, StatsOutput{}, err
	}

	output := StatsOutput{
		DocumentCount:  stats.Index.DocumentCount,
		Dimension:      stats.Index.Dimension,
		IntentCount:    stats.IntentCount,
		EmbeddingModel: stats.EmbeddingModel,
	}
	if !stats.Index.LastUpdated.IsZero() {
		output.LastUpdated = stats.Index.LastUpdated.Format("2006-01-02T15:04:05Z07:00")
	}

	return nil, output, nil
}
