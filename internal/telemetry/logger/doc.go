// Package logger builds the process logger for clipmesh.
//
// It configures a log/slog handler:
//
//   - logger.go: handler construction, level parsing, dynamic level
//   - redact.go: sensitive data redaction
//
// Features:
//
//   - JSON and text output formats
//   - Log level filtering, adjustable at runtime
//   - Automatic masking of secret keys
//
// Components receive a *slog.Logger and log with key/value pairs.
package logger
