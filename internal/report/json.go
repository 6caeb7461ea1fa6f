package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/riskscan/internal/model"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// History and stats keep the backend's wire field names, so piping
// `riskscan history --json` yields the same document the backend served.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteHistory outputs the history as a JSON array. An empty history is
// written as [] rather than null.
func (w *JSONWriter) WriteHistory(history model.History) (int, error) {
	if history == nil {
		history = model.History{}
	}
	return w.writeJSON(history)
}

// WriteStats outputs the stats object.
func (w *JSONWriter) WriteStats(stats *model.StatsSnapshot) (int, error) {
	if stats == nil {
		stats = &model.StatsSnapshot{}
	}
	return w.writeJSON(stats)
}

// WriteJournal outputs the journal with its counts.
func (w *JSONWriter) WriteJournal(journal *Journal) (int, error) {
	if journal == nil {
		journal = &Journal{}
	}
	out := *journal
	if out.Submissions == nil {
		out.Submissions = []*model.Submission{}
	}
	return w.writeJSON(&out)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
