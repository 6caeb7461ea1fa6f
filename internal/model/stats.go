package model

// StatsSnapshot holds verdict counts per risk level.
// The JSON field names are capitalized because that is the backend's wire
// format.
type StatsSnapshot struct {
	Low    int `json:"Low"`
	Medium int `json:"Medium"`
	High   int `json:"High"`
}

// Count returns the count for a known risk level, or 0 for unknown levels.
func (s StatsSnapshot) Count(level RiskLevel) int {
	switch level {
	case RiskLow:
		return s.Low
	case RiskMedium:
		return s.Medium
	case RiskHigh:
		return s.High
	default:
		return 0
	}
}

// Total returns the sum of all counts.
func (s StatsSnapshot) Total() int {
	return s.Low + s.Medium + s.High
}
