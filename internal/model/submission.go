package model

import "time"

// Submission is a locally journaled record of one successful submission.
// It is written by the controller after the backend returns a verdict and
// read back by the journal command.
type Submission struct {
	// ID is the journal row identifier. Zero until stored.
	ID int64 `json:"id"`

	// Kind is the submission variant name ("Screenshot", "Text", "Website").
	Kind string `json:"kind"`

	// Content is the filename, text preview, or URL.
	Content string `json:"content"`

	// Digest is the SHA3-256 digest of the screenshot bytes, if any.
	Digest string `json:"digest,omitempty"`

	// RiskLevel is the verdict that was returned.
	RiskLevel RiskLevel `json:"riskLevel"`

	// Reason is the backend's explanation.
	Reason string `json:"reason"`

	// SubmittedAt is when the verdict was received.
	SubmittedAt time.Time `json:"submittedAt"`
}

// NewSubmission builds a journal record from a request and its verdict.
func NewSubmission(req AnalysisRequest, result *AnalysisResult, at time.Time) *Submission {
	s := &Submission{
		Kind:        req.Kind.String(),
		Content:     req.Content(),
		Digest:      req.Digest(),
		SubmittedAt: at,
	}
	if result != nil {
		s.RiskLevel = result.RiskLevel
		s.Reason = result.Reason
	}
	return s
}
