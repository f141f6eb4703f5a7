// Command returnnotify sends staff and client notifications when a return
// changes status.
//
// `returnnotify serve` runs the HTTP API; `returnnotify notify --event
// file.json` runs a single event from disk. The directory subcommands seed
// and inspect the SQLite entity directory the service resolves resellers,
// clients and employees from.
package main
