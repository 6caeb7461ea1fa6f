package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RiskLevel is the categorical verdict the backend assigns to a submission.
//
// Design decision: We use a string type rather than an iota enum because the
// value travels verbatim over the wire and the backend may introduce levels
// this client does not know about. Unknown levels are displayed as-is.
type RiskLevel string

const (
	// RiskLow indicates no major suspicious patterns were found.
	RiskLow RiskLevel = "Low"

	// RiskMedium indicates a possible scam or an unreachable website.
	RiskMedium RiskLevel = "Medium"

	// RiskHigh indicates suspicious content such as credential harvesting.
	RiskHigh RiskLevel = "High"
)

// RiskLevels lists the known levels from least to most severe.
// Report writers iterate in this order.
var RiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh}

// ParseRiskLevel normalizes a risk level string.
// Known levels are matched case-insensitively; anything else is returned
// trimmed but otherwise unchanged. It is safe for concurrent use: a Caser
// keeps state, so each call builds its own.
func ParseRiskLevel(s string) RiskLevel {
	trimmed := strings.TrimSpace(s)
	normalized := RiskLevel(cases.Title(language.English).String(trimmed))
	if normalized.Known() {
		return normalized
	}
	return RiskLevel(trimmed)
}

// Known reports whether the level is one of Low, Medium, or High.
func (r RiskLevel) Known() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	default:
		return false
	}
}

// String returns the level as sent by the backend.
func (r RiskLevel) String() string {
	return string(r)
}

// Indicator returns a short visual marker for terminal output.
func (r RiskLevel) Indicator() string {
	switch r {
	case RiskHigh:
		return "!!"
	case RiskMedium:
		return "!"
	case RiskLow:
		return "-"
	default:
		return "?"
	}
}
