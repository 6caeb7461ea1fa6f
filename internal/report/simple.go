package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/riskscan/internal/model"
)

// SimpleWriter outputs human-readable text.
// History and stats are written exactly as the display regions show them so
// one-shot commands and the watch console read the same. The journal gets a
// sectioned layout.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because the output is often piped to files or other tools.
type SimpleWriter struct {
	baseWriter

	// verbose adds totals and digests to the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteHistory outputs one line per entry, or the empty-history sentinel.
func (w *SimpleWriter) WriteHistory(history model.History) (int, error) {
	return io.WriteString(w.output, FormatHistory(history)+"\n")
}

// WriteStats outputs the stats line.
func (w *SimpleWriter) WriteStats(stats *model.StatsSnapshot) (int, error) {
	var sb strings.Builder
	sb.WriteString(FormatStats(stats))
	sb.WriteString("\n")
	if w.verbose && stats != nil {
		fmt.Fprintf(&sb, "Total: %d\n", stats.Total())
	}
	return io.WriteString(w.output, sb.String())
}

// WriteJournal outputs the journal summary followed by its records.
func (w *SimpleWriter) WriteJournal(journal *Journal) (int, error) {
	if journal == nil {
		journal = &Journal{}
	}

	var sb strings.Builder

	w.writeHeader(&sb, "LOCAL SUBMISSION JOURNAL")
	w.writeSummary(&sb, journal.Counts)
	w.writeSubmissions(&sb, journal.Submissions)

	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes a banner title.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")
}

// writeSummary writes the per-risk counts.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, counts model.StatsSnapshot) {
	for _, level := range model.RiskLevels {
		fmt.Fprintf(sb, "  %-7s %d\n", strings.ToUpper(level.String())+":", counts.Count(level))
	}
	sb.WriteString("\n")
	fmt.Fprintf(sb, "  TOTAL:  %d submissions\n\n", counts.Total())
}

// writeSubmissions writes one block per journaled submission.
func (w *SimpleWriter) writeSubmissions(sb *strings.Builder, submissions []*model.Submission) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")

	if len(submissions) == 0 {
		sb.WriteString("  No submissions recorded\n\n")
		return
	}

	for _, s := range submissions {
		fmt.Fprintf(sb, "[%s] %s %s - %s\n",
			s.RiskLevel.Indicator(),
			s.SubmittedAt.Format("2006-01-02 15:04:05 MST"),
			s.Kind,
			s.Content,
		)
		fmt.Fprintf(sb, "    Risk: %s\n", s.RiskLevel)
		fmt.Fprintf(sb, "    Reason: %s\n", s.Reason)
		if w.verbose && s.Digest != "" {
			fmt.Fprintf(sb, "    SHA3-256: %s\n", s.Digest)
		}
	}
	sb.WriteString("\n")
}
