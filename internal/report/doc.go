// Package report renders backend history, backend stats, and the local
// submission journal.
//
// This package contains:
//   - Format functions: the exact region and notice texts the controller
//     displays (FormatResult, FormatHistory, FormatStats)
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: Markdown output with a mermaid pie chart of risk counts
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
