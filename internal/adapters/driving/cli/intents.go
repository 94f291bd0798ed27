package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/preceptor-labs/preceptor-cli/internal/core/domain"
)

var intentsCmd = &cobra.Command{
	Use:   "intents",
	Short: "Manage the intent table",
}

var intentsLoadCmd = &cobra.Command{
	Use:   "load [archivo.json]",
	Short: "Replace the intent table from a JSON file",
	Long: `Loads {"intents": [{"tag", "patterns", "responses", "context"}]}
and replaces the intent table wholesale.`,
	Args: cobra.ExactArgs(1),
	RunE: runIntentsLoad,
}

var intentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the loaded intent count",
	RunE:  runIntentsList,
}

func init() {
	intentsCmd.AddCommand(intentsLoadCmd)
	intentsCmd.AddCommand(intentsListCmd)
	rootCmd.AddCommand(intentsCmd)
}

func runIntentsLoad(cmd *cobra.Command, args []string) error {
	if intentIndex == nil {
		return errors.New("intent index not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	var set domain.IntentSet
	if err := json.Unmarshal(data, &set); err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}
	if len(set.Intents) == 0 {
		return fmt.Errorf("%s contains no intents", args[0])
	}

	if err := intentIndex.Load(set); err != nil {
		return fmt.Errorf("loading intents: %w", err)
	}
	cmd.Printf("Loaded %d intents\n", len(set.Intents))
	return nil
}

func runIntentsList(cmd *cobra.Command, _ []string) error {
	if intentIndex == nil {
		return errors.New("intent index not configured")
	}
	cmd.Printf("Intents loaded: %d\n", intentIndex.Count())
	return nil
}
