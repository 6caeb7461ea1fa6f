package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/riskscan/internal/config"
	"github.com/nao1215/riskscan/internal/database"
	"github.com/nao1215/riskscan/internal/model"
	"github.com/nao1215/riskscan/internal/report"
)

// errSubmissionNotFound is returned by "journal --id" for an unknown ID.
var errSubmissionNotFound = errors.New("submission not found")

// NewJournalCmd creates the journal command.
func NewJournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "List submissions made from this machine",
		Long: `Journal lists the submissions recorded locally, newest first, with a
per-level summary. Screenshots are listed by file name and SHA3-256 digest.

The journal is stored in the XDG data directory
(~/.local/share/riskscan/riskscan.db on Linux). It only records what was
sent from this machine; use "history" for the backend's own records.

Examples:
  riskscan journal
  riskscan journal --limit 100 --markdown -o journal.md
  riskscan journal --id 42`,
		Args: cobra.NoArgs,
		RunE: runJournalCmd,
	}

	cmd.Flags().IntP("limit", "l", config.DefaultJournalLimit,
		"Maximum number of submissions to list (0 lists all)")
	cmd.Flags().Int64("id", 0,
		"Show only the submission with this journal ID")
	addReportFlags(cmd)

	return cmd
}

// runJournalCmd executes the journal command.
func runJournalCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	id, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	var submissions []*model.Submission
	if id > 0 {
		s, err := db.GetSubmission(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get submission with ID %d: %w", id, err)
		}
		if s == nil {
			return fmt.Errorf("%w: ID %d", errSubmissionNotFound, id)
		}
		submissions = []*model.Submission{s}
	} else {
		submissions, err = db.ListSubmissions(ctx, limit)
		if err != nil {
			return err
		}
	}
	counts, err := db.CountByRisk(ctx)
	if err != nil {
		return err
	}

	return writeReport(cmd, cfg, func(w report.Writer) error {
		_, err := w.WriteJournal(&report.Journal{
			Submissions: submissions,
			Counts:      counts,
		})
		return err
	})
}
