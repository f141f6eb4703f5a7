// Package daemon runs the long-lived returnnotify HTTP service.
//
// It wires configuration, the entity directory and the notification
// operation into a single lifecycle with flock-based locking so only one
// instance serves a data directory. The HTTP server exposes the notify
// endpoint and a status summary.
package daemon
