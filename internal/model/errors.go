package model

import "errors"

// ValidationError reports missing or empty operator input.
// It is raised before any network call, so a submission that fails
// validation has no side effects.
type ValidationError struct {
	// Field is the input that failed validation ("image", "text", "url").
	Field string

	// Message is the short machine-oriented description.
	Message string

	// Prompt is the operator-facing notice text.
	Prompt string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Input validation errors.
// These are package-level values so callers can match them with errors.Is
// and still extract the prompt with errors.As.
var (
	// ErrNoFileSelected is returned when a screenshot submission has no file.
	ErrNoFileSelected = &ValidationError{
		Field:   "image",
		Message: "no file selected",
		Prompt:  "Please upload an image first!",
	}

	// ErrEmptyText is returned when the text is empty after trimming.
	ErrEmptyText = &ValidationError{
		Field:   "text",
		Message: "empty text",
		Prompt:  "Please enter text!",
	}

	// ErrEmptyURL is returned when the URL is empty after trimming.
	ErrEmptyURL = &ValidationError{
		Field:   "url",
		Message: "empty url",
		Prompt:  "Please enter a website URL!",
	}
)

// ErrUnknownRequestKind is returned for an AnalysisRequest whose Kind is not
// one of the three supported variants.
var ErrUnknownRequestKind = errors.New("unknown analysis request kind")

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
