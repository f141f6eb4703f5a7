// Package config loads, normalizes, and validates returnnotify configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MAIL_GATEWAY_API_KEY and SMS_GATEWAY_API_KEY. The Config type centralizes
// every knob the API server and CLI need: the entity directory database, the
// message catalog, the mail/SMS gateways and the per-channel switches.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
