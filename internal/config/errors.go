package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidBackendURL is returned when the backend origin is not an
	// absolute http or https URL.
	ErrInvalidBackendURL = errors.New("invalid backend url: must be an absolute http(s) url such as http://127.0.0.1:5000")

	// ErrInvalidTimeout is returned when the timeout is negative.
	// Use 0 to disable the timeout.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrInvalidInterval is returned when the refresh interval is not positive.
	ErrInvalidInterval = errors.New("invalid refresh interval: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidMaxImageSize is returned when the EXIF search limit is
	// negative.
	ErrInvalidMaxImageSize = errors.New("invalid max image size: must be non-negative")
)
