// Package services defines shared utilities consumed by the notification
// pipeline and its transports.
//
// Key responsibilities:
//   - Context helpers that stamp reseller IDs, channel names, and correlation
//     identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper, and the caller-facing
//     Error type whose marker decides the HTTP status (400 vs 500).
//
// Use these helpers when wiring new components so failure classification
// stays uniform between the API, the CLI and the core.
package services
