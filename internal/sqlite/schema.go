// Package sqlite implements a SQLite blob backend for the achievements log.
// This file holds the schema DDL.
package sqlite

// dbFileName is the database file created inside the data directory.
const dbFileName = "achievements.db"

// Schema DDL. Statements are idempotent so an existing database is reused.
const (
	createBlobs = `CREATE TABLE IF NOT EXISTS blobs (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at TEXT NOT NULL
);`
)

// schemaDDL lists all CREATE statements in dependency order.
var schemaDDL = []string{
	createBlobs,
}
