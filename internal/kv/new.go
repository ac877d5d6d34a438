package kv

import (
	"database/sql"
	"fmt"
	"time"

	"vision/pkg/log"
)

// Schema creates the key/value table.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}

type implStore struct {
	db  *sql.DB
	l   log.Logger
	now func() time.Time
}

// New creates a Store on an already migrated db (see Schema).
func New(db *sql.DB, l log.Logger) Store {
	return &implStore{db: db, l: l, now: time.Now}
}

func (s *implStore) dsn(method string) string {
	return fmt.Sprintf("kv.%s", method)
}
