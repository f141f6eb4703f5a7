// Package preflight provides readiness checks for the filesystem paths,
// entity directory, template catalog and gateways returnnotify depends on.
//
// These checks run in two contexts:
//   - `returnnotify serve` calls RunAll at startup and logs every failure
//     without refusing to start, since a gateway may come up later.
//   - `returnnotify check` renders the results as a table and exits non-zero
//     when any check fails.
//
// Gateway checks are skipped when the gateway is not configured.
package preflight
