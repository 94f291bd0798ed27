// Package cli implements the command-line interface using cobra.
// Commands are thin adapters over the driving port services; wiring
// happens in main via the Set*Service functions.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/preceptor-labs/preceptor-cli/internal/core/ports/driven"
	"github.com/preceptor-labs/preceptor-cli/internal/core/ports/driving"
	"github.com/preceptor-labs/preceptor-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Injected services. Commands check for nil and fail with a clear
// message instead of panicking.
var (
	queryService  driving.QueryService
	ingestService driving.IngestService
	statsService  driving.StatsService
	intentIndex   driven.IntentIndex
	historyStore  driven.HistoryStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "preceptor",
	Short: "Asistente de preguntas del módulo propedéutico",
	Long: `Preceptor answers free-text questions by routing each query to a
curated intent table or to retrieval over ingested course materials.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetQueryService injects the query router.
func SetQueryService(s driving.QueryService) {
	queryService = s
}

// SetIngestService injects the ingestion service.
func SetIngestService(s driving.IngestService) {
	ingestService = s
}

// SetStatsService injects the stats service.
func SetStatsService(s driving.StatsService) {
	statsService = s
}

// SetIntentIndex injects the intent index for the intents command.
func SetIntentIndex(idx driven.IntentIndex) {
	intentIndex = idx
}

// SetHistoryStore injects the history journal for the history command.
func SetHistoryStore(s driven.HistoryStore) {
	historyStore = s
}

// SetVersion overrides the build version string.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
