package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent routing decisions",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of entries")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyStore == nil {
		return errors.New("history store not configured")
	}

	entries, err := historyStore.Recent(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	if len(entries) == 0 {
		cmd.Println("No history yet.")
		return nil
	}

	for _, e := range entries {
		path := "intent"
		if e.UsedRetrieval {
			path = "retrieval"
		}
		cmd.Printf("%s  %-20s  %-9s  %.2f  %q\n",
			e.CreatedAt.Format("2006-01-02 15:04"), e.Category, path, e.Confidence, e.Query)
	}
	return nil
}
