// Package log provides slog-based logging that never writes password
// material, even in verbose mode.
//
// The SecureHandler wraps any slog.Handler and redacts:
//   - Attributes whose key names a secret (password, passwd, candidate, secret, token, ...)
//   - String values that look like credentials (JWTs, bearer tokens, private keys)
//
// Groups are sanitized recursively, and so are attributes attached with
// Logger.With.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("evaluated", "password", pw, "length", len(pw))
//	// password=***REDACTED*** length=8
//	slog.SetDefault(logger)
package log
