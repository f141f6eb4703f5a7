// Package logging assembles structured slog loggers and formatting helpers used
// across returnnotify components.
//
// It owns the console/JSON handlers, tees records into a JSON log file when a
// log directory is configured, and exposes context-aware helpers so pipeline
// code can tag log lines with reseller IDs, channels and correlation IDs. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
package logging
