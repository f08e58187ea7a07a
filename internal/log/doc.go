// Package log provides the slog logger used by pagescout.
//
// Scanned sites sometimes carry credentials in their links: user info in
// the authority or session tokens in the query string. SecureHandler masks
// both before a record is written, so verbose logs can be shared.
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("fetch failed", "url", "https://u:p@example.com/?token=abc")
//	// url="https://***REDACTED***@example.com/?token=***REDACTED***"
package log
