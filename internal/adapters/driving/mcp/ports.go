package mcp

import (
	"github.com/preceptor-labs/preceptor-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query routes questions to intents or retrieval.
	Query driving.QueryService

	// Ingest stores reference documents.
	Ingest driving.IngestService

	// Stats exposes index statistics.
	Stats driving.StatsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	// Ingest and Stats are optional; their tools are skipped when nil
	return nil
}
