package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/riskscan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides tables, alerts, and mermaid charts without
// hand-escaping.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteHistory outputs the history as a table.
func (w *MarkdownWriter) WriteHistory(history model.History) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Scan History")
	md.PlainText("")

	if history.Empty() {
		md.PlainText(EmptyHistoryText)
		md.PlainText("")
	} else {
		rows := make([][]string, len(history))
		for i, e := range history {
			rows[i] = []string{e.Timestamp, e.Type, e.Content, riskLabel(e.RiskLevel)}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Timestamp", "Type", "Content", "Risk"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteStats outputs the stats as a table with a pie chart.
func (w *MarkdownWriter) WriteStats(stats *model.StatsSnapshot) (int, error) {
	if stats == nil {
		stats = &model.StatsSnapshot{}
	}

	md := markdown.NewMarkdown(w.output)

	md.H1("Risk Statistics")
	md.PlainText("")
	w.writeCounts(md, *stats, "Risk Distribution")
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteJournal outputs the local journal summary and records.
func (w *MarkdownWriter) WriteJournal(journal *Journal) (int, error) {
	if journal == nil {
		journal = &Journal{}
	}

	md := markdown.NewMarkdown(w.output)

	md.H1("Local Submission Journal")
	md.PlainText("")

	md.H2("Summary")
	md.PlainText("")
	w.writeCounts(md, journal.Counts, "Submitted Risk Distribution")

	md.H2("Submissions")
	md.PlainText("")
	if len(journal.Submissions) == 0 {
		md.PlainText("No submissions recorded.")
		md.PlainText("")
	} else {
		rows := make([][]string, len(journal.Submissions))
		for i, s := range journal.Submissions {
			rows[i] = []string{
				s.SubmittedAt.Format("2006-01-02 15:04:05 MST"),
				s.Kind,
				s.Content,
				riskLabel(s.RiskLevel),
				s.Reason,
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Submitted", "Type", "Content", "Risk", "Reason"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeCounts writes the count table, a pie chart when there is data, and an
// alert keyed on the most severe non-zero level.
func (w *MarkdownWriter) writeCounts(md *markdown.Markdown, counts model.StatsSnapshot, chartTitle string) {
	rows := make([][]string, 0, len(model.RiskLevels)+1)
	for _, level := range model.RiskLevels {
		rows = append(rows, []string{riskLabel(level), strconv.Itoa(counts.Count(level))})
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(counts.Total()) + "**"})

	md.Table(markdown.TableSet{
		Header: []string{"Risk", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	if counts.Total() > 0 {
		w.writePieChart(md, counts, chartTitle)
	}

	switch {
	case counts.High > 0:
		md.Warningf("%d submission(s) were rated High risk.", counts.High)
	case counts.Medium > 0:
		md.Importantf("%d submission(s) were rated Medium risk.", counts.Medium)
	case counts.Total() > 0:
		md.Tip("All submissions were rated Low risk.")
	default:
		md.Note("Nothing has been analyzed yet.")
	}
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart for the risk distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, counts model.StatsSnapshot, title string) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle(title),
		piechart.WithShowData(true),
	)

	for _, level := range model.RiskLevels {
		if n := counts.Count(level); n > 0 {
			chart.LabelAndIntValue(level.String(), uint64(n))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by [riskscan](https://github.com/nao1215/riskscan)*")
}

// riskLabel returns the level with a colored marker.
func riskLabel(level model.RiskLevel) string {
	switch level {
	case model.RiskHigh:
		return "🔴 High"
	case model.RiskMedium:
		return "🟡 Medium"
	case model.RiskLow:
		return "🟢 Low"
	default:
		return level.String()
	}
}
