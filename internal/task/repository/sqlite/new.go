package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"vision/internal/task/repository"
	"vision/pkg/log"
)

// Schema creates the task document table and the replication cursor table.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id             TEXT PRIMARY KEY,
		title          TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		status         TEXT NOT NULL,
		source         TEXT NOT NULL,
		estimated_time TEXT NOT NULL DEFAULT '',
		prepared_items TEXT NOT NULL DEFAULT '[]',
		position       INTEGER NOT NULL DEFAULT 0,
		deleted        INTEGER NOT NULL DEFAULT 0,
		pending        INTEGER NOT NULL DEFAULT 1,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_position ON tasks(deleted, position)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_pending ON tasks(pending, updated_at)`,
	`CREATE TABLE IF NOT EXISTS replication_checkpoints (
		identifier TEXT PRIMARY KEY,
		doc_id     TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL
	)`,
}

type implRepository struct {
	db  *sql.DB
	l   log.Logger
	now func() time.Time
}

// Store is the concrete SQLite repository. It satisfies both repository.Repository
// and repository.ReplicationRepository.
type Store interface {
	repository.Repository
	repository.ReplicationRepository
}

// New creates a SQLite-backed task store on an already migrated db (see Schema).
func New(db *sql.DB, l log.Logger) Store {
	if db == nil {
		panic("task/repository/sqlite: db is required")
	}
	return &implRepository{db: db, l: l, now: time.Now}
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("task/repository/sqlite.%s", method)
}

// stamp returns a write timestamp strictly after prev.
func (r *implRepository) stamp(prev time.Time) time.Time {
	now := r.now().UTC().Truncate(time.Microsecond)
	if !now.After(prev) {
		now = prev.Add(time.Microsecond)
	}
	return now
}
