// Package logging provides structured logging for the charm.
//
// It wraps the standard library slog package with charm-specific defaults:
// JSON output to stderr (which the unit agent captures into the juju debug
// log), environment-based log level configuration via LOG_LEVEL, module and
// version context on every record, and source location tracking at debug
// level.
//
// Typical usage from main:
//
//	logging.SetDefaultStructuredLogger("sicharm", version)
//	slog.Info("hook dispatched", "hook", "config-changed")
//
// Setting an explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("sicharm", version, "debug")
//
// Supported log levels (case-insensitive): debug, info, warn/warning,
// error. Unset or unknown levels default to info.
package logging
