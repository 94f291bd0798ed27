package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/preceptor-labs/preceptor-cli/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [archivo.json]",
	Short: "Ingest reference documents from a JSON file",
	Long: `Reads a JSON array of {"text", "metadata"} records, embeds each
passage and appends it to the document index. The whole batch is
rejected if any record fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	var records []domain.IngestRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	report, err := ingestService.Ingest(context.Background(), records)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	cmd.Printf("Ingested %d documents (batch %s)\n", report.Ingested, report.BatchID)
	return nil
}
