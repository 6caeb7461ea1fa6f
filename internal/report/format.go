package report

import (
	"fmt"
	"strings"

	"github.com/nao1215/riskscan/internal/model"
)

// EmptyHistoryText is shown in the history region when the backend has no
// records.
const EmptyHistoryText = "No scans yet..."

// FormatResult renders a verdict as the two-line notice
// "Risk: <level>\nReason: <reason>".
func FormatResult(result *model.AnalysisResult) string {
	if result == nil {
		return ""
	}
	return fmt.Sprintf("Risk: %s\nReason: %s", result.RiskLevel, result.Reason)
}

// FormatHistoryLine renders one history entry as
// "[timestamp] type - content - Risk: level".
func FormatHistoryLine(entry model.HistoryEntry) string {
	return fmt.Sprintf("[%s] %s - %s - Risk: %s",
		entry.Timestamp, entry.Type, entry.Content, entry.RiskLevel)
}

// FormatHistory renders the history region text. Entries keep the order the
// backend returned them in. An empty history renders as EmptyHistoryText.
func FormatHistory(history model.History) string {
	if history.Empty() {
		return EmptyHistoryText
	}

	lines := make([]string, len(history))
	for i, entry := range history {
		lines[i] = FormatHistoryLine(entry)
	}
	return strings.Join(lines, "\n")
}

// FormatStats renders the stats region text "Low: N | Medium: N | High: N".
func FormatStats(stats *model.StatsSnapshot) string {
	if stats == nil {
		stats = &model.StatsSnapshot{}
	}
	return fmt.Sprintf("Low: %d | Medium: %d | High: %d", stats.Low, stats.Medium, stats.High)
}
