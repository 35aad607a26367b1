// Package logging builds the slog loggers used by every command.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for captured runs. The "auto" format picks console when stderr
// is a terminal. Attr helpers keep field names consistent across packages,
// and WithContext folds per-invocation correlation fields into a logger.
package logging
