package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/riskscan/internal/config"
)

// NewRootCmd creates the root command for RiskScan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "riskscan",
		Short: "Client for a screenshot, text, and website risk analysis backend",
		Long: `RiskScan submits screenshots, free text, or website URLs to a risk
analysis backend and prints the verdict (Low, Medium, or High) with the
backend's reason.

It also shows the backend's scan history and per-level statistics, either on
demand (history, stats) or continuously in an interactive console (watch)
that refreshes every 10 seconds.

The backend origin is taken from --backend, the RISKSCAN_BACKEND_URL
environment variable (a .env file is loaded automatically), or the
configuration file, in that order of precedence.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	flags := cmd.PersistentFlags()
	flags.StringP("backend", "b", "",
		fmt.Sprintf("Backend origin (default %s)", config.DefaultBackendURL))
	flags.StringP("config", "c", "",
		"Configuration file path (default: .riskscan in current or home directory)")
	flags.String("proxy", "",
		"Route backend requests through a SOCKS5 proxy at host:port")
	flags.Duration("timeout", config.DefaultTimeout,
		"Per-request timeout (0 disables the timeout)")
	flags.Duration("interval", config.DefaultRefreshInterval,
		"Automatic refresh interval for the watch console")
	flags.Bool("no-journal", false,
		"Do not record submissions in the local journal")
	flags.BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScreenshotCmd())
	cmd.AddCommand(NewTextCmd())
	cmd.AddCommand(NewWebsiteCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewWatchCmd())
	cmd.AddCommand(NewJournalCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
