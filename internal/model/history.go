package model

// HistoryEntry is one backend-persisted record of a past analysis.
type HistoryEntry struct {
	// Timestamp is the backend's ISO 8601 time of the analysis.
	// It is kept as a string and displayed verbatim.
	Timestamp string `json:"timestamp"`

	// Type is the submission kind ("Text", "Screenshot", "Website").
	Type string `json:"type"`

	// Content is the backend's preview of what was submitted.
	Content string `json:"content"`

	// RiskLevel is the verdict that was assigned.
	RiskLevel RiskLevel `json:"riskLevel"`
}

// History is the full history collection in the order the backend returned
// it. The client never re-sorts it.
type History []HistoryEntry

// Empty reports whether the history contains no entries.
func (h History) Empty() bool {
	return len(h) == 0
}
