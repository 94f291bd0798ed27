package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/preceptor-labs/preceptor-cli/internal/core/domain"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [pregunta]",
	Short: "Ask a single question",
	Long: `Routes the question through the decision pipeline and prints the
resolved answer with its confidence and supporting evidence.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the reply as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	query := strings.Join(args, " ")
	reply := queryService.Ask(context.Background(), query)

	if askJSON {
		return outputReplyJSON(cmd, reply)
	}

	outputReply(cmd, reply)
	return nil
}

func outputReplyJSON(cmd *cobra.Command, reply domain.Reply) error {
	data, err := json.MarshalIndent(reply, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal reply: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputReply(cmd *cobra.Command, reply domain.Reply) {
	cmd.Println(reply.Text)
	cmd.Println()
	cmd.Printf("  Confianza: %.2f\n", reply.Confidence)
	if reply.UsedRetrieval {
		cmd.Println("  Fuente: materiales del módulo")
	}
	for i, ev := range reply.Evidence {
		cmd.Printf("  [%d] %s\n", i+1, ev.Preview)
	}
}
