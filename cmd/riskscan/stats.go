package main

import (
	"github.com/spf13/cobra"

	"github.com/nao1215/riskscan/internal/report"
)

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the backend's per-level risk counts",
		Long: `Stats prints how many scans the backend has rated at each risk level:

  Low: N | Medium: N | High: N

The Markdown format adds a pie chart of the distribution.

Examples:
  riskscan stats
  riskscan stats --json`,
		Args: cobra.NoArgs,
		RunE: runStatsCmd,
	}

	addReportFlags(cmd)

	return cmd
}

// runStatsCmd executes the stats command.
func runStatsCmd(cmd *cobra.Command, _ []string) error {
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

	stats, err := client.Stats(ctx)
	if err != nil {
		return err
	}

	return writeReport(cmd, cfg, func(w report.Writer) error {
		_, err := w.WriteStats(stats)
		return err
	})
}
