// Package returns turns return-status change events into staff and client
// notifications.
//
// Operation.Do checks the reseller id, builds a Notice (entity lookups, the
// "what changed" text and the rendering context), then hands it to the
// Dispatcher which runs the staff email, client email and client SMS
// channels. Invalid events fail before anything is sent. Once past
// validation a channel either sends or quietly reports false; it never
// fails the operation.
//
// Entity lookups, templates and transports are consumed through the small
// interfaces in collaborators.go so the package can be driven by the SQLite
// directory in production and by fakes in tests.
package returns
