package main

import (
	"github.com/spf13/cobra"

	"github.com/nao1215/riskscan/internal/report"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the backend's scan history",
		Long: `History fetches every scan the backend has recorded and prints one line
per entry in the order the backend returns them:

  [timestamp] type - content - Risk: level

Examples:
  riskscan history
  riskscan history --markdown -o reports/history.md`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	addReportFlags(cmd)

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)

	client, err := newBackendClient(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	history, err := client.History(ctx)
	if err != nil {
		return err
	}

	return writeReport(cmd, cfg, func(w report.Writer) error {
		_, err := w.WriteHistory(history)
		return err
	})
}
