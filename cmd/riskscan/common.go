package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/riskscan/internal/backend"
	"github.com/nao1215/riskscan/internal/config"
	"github.com/nao1215/riskscan/internal/controller"
	"github.com/nao1215/riskscan/internal/database"
	"github.com/nao1215/riskscan/internal/display"
	"github.com/nao1215/riskscan/internal/log"
	"github.com/nao1215/riskscan/internal/preflight"
	"github.com/nao1215/riskscan/internal/report"
)

// Region titles used by the terminal display.
const (
	historyRegionTitle = "History"
	statsRegionTitle   = "Stats"
)

// addReportFlags adds the output format flags shared by history, stats, and
// journal.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write output to the specified file path (creates directories if needed)")
	cmd.Flags().Bool("tee", false,
		"With --output, also print the report to stdout")
}

// buildConfig assembles the Config for cmd.
// Precedence from lowest to highest: defaults, configuration file,
// environment (including .env), command-line flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicitly requested file must exist; the default locations are
	// optional.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := cf.Apply(cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
		}
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if err := config.ApplyEnvironment(cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	return cfg, nil
}

// applyFlags copies explicitly set flags onto cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("backend") {
		if cfg.BackendURL, err = flags.GetString("backend"); err != nil {
			return err
		}
	}
	if flags.Changed("proxy") {
		if cfg.ProxyAddress, err = flags.GetString("proxy"); err != nil {
			return err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("interval") {
		if cfg.RefreshInterval, err = flags.GetDuration("interval"); err != nil {
			return err
		}
	}

	noJournal, err := flags.GetBool("no-journal")
	if err != nil {
		return err
	}
	if noJournal {
		cfg.SaveToDB = false
	}

	if cfg.Verbose, err = flags.GetBool("verbose"); err != nil {
		return err
	}

	// Report flags only exist on the listing commands.
	if flags.Lookup("json") != nil {
		if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
			return err
		}
		if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
			return err
		}
		if cfg.ReportFile, err = flags.GetString("output"); err != nil {
			return err
		}
		if cfg.TeeReport, err = flags.GetBool("tee"); err != nil {
			return err
		}
	}

	return nil
}

// newLogger creates the sanitizing logger. Logs go to the command's stderr.
func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
}

// newBackendClient creates the backend client described by cfg.
func newBackendClient(cfg *config.Config, logger *slog.Logger) (*backend.Client, error) {
	httpClient, err := backend.NewHTTPClient(backend.HTTPOptions{
		Timeout:      cfg.Timeout,
		ProxyAddress: cfg.ProxyAddress,
		UserAgent:    cfg.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	return backend.NewClient(cfg.BackendURL,
		backend.WithHTTPClient(httpClient),
		backend.WithMaxBodySize(cfg.MaxBodySize),
		backend.WithLogger(logger),
	)
}

// openJournal opens the journal when cfg enables it. It returns a nil
// JournalDB when the journal is disabled.
func openJournal(cfg *config.Config, logger *slog.Logger) (*database.JournalDB, error) {
	if !cfg.SaveToDB {
		return nil, nil
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	logger.Debug("journal opened", "path", db.Path())
	return db, nil
}

// session bundles what a submitting command needs.
type session struct {
	cfg        *config.Config
	logger     *slog.Logger
	client     *backend.Client
	terminal   *display.Terminal
	history    *display.Region
	stats      *display.Region
	controller *controller.Controller
	journal    *database.JournalDB
}

// newSession wires a controller to a terminal on the command's stdout.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cmd, cfg)

	client, err := newBackendClient(cfg, logger)
	if err != nil {
		return nil, err
	}

	terminal := display.NewTerminal(cmd.OutOrStdout())

	opts := []controller.Option{
		controller.WithLogger(logger),
		controller.WithInterval(cfg.RefreshInterval),
	}
	if cfg.InspectMetadata {
		opts = append(opts, controller.WithInspector(
			preflight.NewInspector(preflight.WithMaxImageSize(cfg.MaxImageSize))))
	}

	journal, err := openJournal(cfg, logger)
	if err != nil {
		// The journal is an audit aid; submissions still work without it.
		logger.Warn("continuing without journal", "error", err)
	}
	if journal != nil {
		opts = append(opts, controller.WithRecorder(journal))
	}

	history := terminal.Region(historyRegionTitle)
	stats := terminal.Region(statsRegionTitle)
	ctrl := controller.New(client, terminal, history, stats, opts...)

	return &session{
		cfg:        cfg,
		logger:     logger,
		client:     client,
		terminal:   terminal,
		history:    history,
		stats:      stats,
		controller: ctrl,
		journal:    journal,
	}, nil
}

// Close releases the session's journal.
func (s *session) Close() error {
	if s.journal == nil {
		return nil
	}
	return s.journal.Close()
}

// openReportOutput returns the destination for report output: the file named
// by cfg.ReportFile, or stdout.
func openReportOutput(cfg *config.Config, stdout io.Writer) (io.Writer, func() error, error) {
	if cfg.ReportFile == "" {
		return stdout, func() error { return nil }, nil
	}

	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports list what the operator submitted, so only the owner may read them.
	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// newReportWriter selects the writer for the configured format.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}

// writeReport opens the configured output, runs write, and closes it.
func writeReport(cmd *cobra.Command, cfg *config.Config, write func(report.Writer) error) (err error) {
	output, closeOutput, err := openReportOutput(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeOutput())
	}()

	w := newReportWriter(cfg, output)
	if cfg.TeeReport && cfg.ReportFile != "" {
		w = report.NewMultiWriter(w, newReportWriter(cfg, cmd.OutOrStdout()))
	}
	return write(w)
}
