// Package storage keeps scorer output in SQLite, keyed by scoresheet name
// and content hash.
package storage

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// DB is the scorer output cache.
type DB struct {
	conn *sql.DB
}

// Open opens the cache at path, creating the file and the calcs table when
// missing. ":memory:" gives a throwaway cache.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", "file:"+path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	// One connection: ":memory:" databases are per connection.
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create calcs table: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close releases the connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
