package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if statsService == nil {
		return errors.New("stats service not configured")
	}

	stats, err := statsService.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}

	if statsJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Documents: %d\n", stats.Index.DocumentCount)
	cmd.Printf("Dimension: %d\n", stats.Index.Dimension)
	cmd.Printf("Intents:   %d\n", stats.IntentCount)
	if stats.EmbeddingModel != "" {
		cmd.Printf("Model:     %s\n", stats.EmbeddingModel)
	}
	if !stats.Index.LastUpdated.IsZero() {
		cmd.Printf("Updated:   %s\n", stats.Index.LastUpdated.Format("2006-01-02 15:04:05"))
	}
	return nil
}
