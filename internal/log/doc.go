// Package log provides sanitizing structured logging for RiskScan, built on
// top of the standard slog package.
//
// The SecureHandler wraps any slog.Handler and, before a record is written:
//   - masks values under sensitive keys (authorization, cookie, token, ...)
//   - masks values that look like credentials (JWTs, bearer tokens, long keys)
//   - truncates operator-submitted content (keys "text" and "content") so that
//     messages sent for analysis are not copied wholesale into log files
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Debug("submitting", "kind", "Text", "text", body) // text is truncated
package log
