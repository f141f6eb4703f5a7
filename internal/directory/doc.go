// Package directory persists the reference records a return notification is
// built from: resellers, contractors (clients), employees, the permissions
// staff subscribe to, and return status names.
//
// The Store is backed by SQLite and is read-mostly; the notification pipeline
// only performs lookups. Seeding happens through Seed, usually from a TOML
// fixture file loaded with LoadFixture. Schema changes bump schemaVersion in
// schema.go; operators delete the database to adopt a new schema.
package directory
