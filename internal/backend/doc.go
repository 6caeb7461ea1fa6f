// Package backend provides the HTTP client for the RiskScan analysis backend.
//
// The backend exposes five endpoints under a fixed origin:
//
//	POST /api/analyze-screenshot  multipart form, field "image"
//	POST /api/analyze-text        JSON {"text": ...}
//	POST /api/analyze-website     JSON {"url": ...}
//	GET  /api/history             JSON array of history entries
//	GET  /api/stats               JSON {"Low": n, "Medium": n, "High": n}
//
// Every call returns (value, error). Failures of any kind (network errors,
// non-2xx statuses, malformed JSON) are reported as *TransportError, which
// wraps one of the package's sentinel errors so callers can use errors.Is.
//
// Requests are never retried. Requests may optionally be routed through a
// SOCKS5 proxy (see NewHTTPClient).
package backend
