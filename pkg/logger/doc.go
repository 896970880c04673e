// Package logger builds the slog loggers used across the relay.
//
// Loggers are plain *slog.Logger values. The package adds:
//   - context extractors that copy request-scoped values (request IDs) into every record
//   - a file-backed append sink for transport diagnostics (NewFile)
//   - optional Sentry reporting that falls back to stdout when no DSN is set
//   - Tee for writing one record to several loggers
//
// Example:
//
//	log := logger.New(logger.RequestIDExtractor())
//	ctx := logger.WithRequestID(context.Background(), "abc-123")
//	log.InfoContext(ctx, "settings saved")
//	// {"level":"INFO","msg":"settings saved","request_id":"abc-123"}
package logger
