// Package messaging delivers rendered notifications over email and SMS.
//
// Both transports POST JSON to an HTTP gateway configured in config.toml and
// degrade to a no-op when no gateway URL is set. Callers depend only on the
// Mailer and SMSSender interfaces.
package messaging
