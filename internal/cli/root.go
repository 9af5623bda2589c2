package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/me/taskindex/internal/logging"
)

var (
	flagServer    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
	client *Client
)

// defaultServer returns the default server URL, checking TASKINDEX_SERVER
// env var first.
func defaultServer() string {
	if s := os.Getenv("TASKINDEX_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

// NewRootCmd creates the root cobra command for the taskindex CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "taskindex",
		Short: "taskindex — task scheduling and resource allocation",
		Long:  "taskindex submits, monitors, and manages scheduled tasks and resource pools.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.NewLogger(logging.ParseLevel(flagLogLevel), flagLogFormat)
			client = NewClient(flagServer, logger)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "taskindex server URL (or TASKINDEX_SERVER env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newSubmitCmd(),
		newStatusCmd(),
		newListCmd(),
		newCancelCmd(),
		newPlaceCmd(),
		newResourcesCmd(),
		newNodesCmd(),
		newStatsCmd(),
		newValidateCmd(),
		newStateCmd(),
	)

	return root
}
