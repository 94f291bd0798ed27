package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var clearForce bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all ingested documents",
	Long:  `Resets the document index to empty, in memory and on disk.`,
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "skip the confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	if !clearForce {
		cmd.Print("This removes every ingested document. Continue? [y/N]: ")
		reader := bufio.NewReader(cmd.InOrStdin())
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := ingestService.Clear(context.Background()); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}
	cmd.Println("Document index cleared.")
	return nil
}
