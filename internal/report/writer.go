package report

import (
	"io"

	"github.com/nao1215/riskscan/internal/model"
)

// Writer defines the interface for report output.
// Implementations render backend history, backend stats, and the local
// submission journal in one format each.
//
// Design decision: We use an interface so the history, stats, and journal
// commands can pick the format from flags and write to stdout or a file
// through the same API.
type Writer interface {
	// WriteHistory outputs the backend history.
	WriteHistory(history model.History) (int, error)

	// WriteStats outputs the backend risk counts.
	WriteStats(stats *model.StatsSnapshot) (int, error)

	// WriteJournal outputs locally journaled submissions.
	WriteJournal(journal *Journal) (int, error)
}

// Journal is the view of the local submission journal handed to writers.
type Journal struct {
	// Submissions are the most recent records, newest first.
	Submissions []*model.Submission `json:"submissions"`

	// Counts is the per-risk total over the whole journal.
	Counts model.StatsSnapshot `json:"counts"`
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteHistory outputs the history to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) WriteHistory(history model.History) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteHistory(history) })
}

// WriteStats outputs the stats to all configured Writers.
func (m *MultiWriter) WriteStats(stats *model.StatsSnapshot) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteStats(stats) })
}

// WriteJournal outputs the journal to all configured Writers.
func (m *MultiWriter) WriteJournal(journal *Journal) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteJournal(journal) })
}

func (m *MultiWriter) each(fn func(Writer) (int, error)) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := fn(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
