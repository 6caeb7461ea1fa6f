package backend

import (
	"errors"
	"fmt"
)

// Transport failure categories. A *TransportError always wraps exactly one
// of these so callers can branch with errors.Is.
var (
	// ErrRequestFailed is returned when the request could not be sent or no
	// response was received (connection refused, DNS failure, timeout).
	ErrRequestFailed = errors.New("backend request failed")

	// ErrUnexpectedStatus is returned for non-2xx responses.
	ErrUnexpectedStatus = errors.New("unexpected backend status")

	// ErrMalformedResponse is returned when a 2xx response body is not the
	// expected JSON document.
	ErrMalformedResponse = errors.New("malformed backend response")

	// ErrInvalidBaseURL is returned by NewClient for an unusable origin.
	ErrInvalidBaseURL = errors.New("invalid backend base url")

	// ErrInvalidProxyAddress is returned by NewHTTPClient for a proxy address
	// that is not in "host:port" form.
	ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")
)

// TransportError describes a failed backend call.
type TransportError struct {
	// Method is the HTTP method of the failed request.
	Method string

	// Endpoint is the request path, e.g. "/api/history".
	Endpoint string

	// StatusCode is the HTTP status, or 0 if no response was received.
	StatusCode int

	// Message is the backend's own error text, when it sent one.
	Message string

	// Err is the failure category, possibly wrapping the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Method, e.Endpoint)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the wrapped category error.
func (e *TransportError) Unwrap() error {
	return e.Err
}
