package model

// AnalysisResult is the verdict returned by all three analyze endpoints.
// It is displayed immediately and not retained by the controller.
type AnalysisResult struct {
	// RiskLevel is the backend-assigned verdict.
	RiskLevel RiskLevel `json:"riskLevel"`

	// Reason explains the verdict in one sentence.
	Reason string `json:"reason"`

	// ExtractedText is the OCR text of a screenshot.
	// Only the screenshot endpoint fills this field. It is logged at debug
	// level, not shown in the verdict notice.
	ExtractedText string `json:"extractedText,omitempty"`
}
