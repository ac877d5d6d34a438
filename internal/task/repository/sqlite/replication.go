package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"vision/internal/task"
	repo "vision/internal/task/repository"
	pkgSqlite "vision/pkg/sqlite"
)

// ListPending returns locally changed tasks, oldest change first, tombstones included.
func (r *implRepository) ListPending(ctx context.Context, limit int) ([]task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE pending = 1 ORDER BY updated_at ASC, id ASC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListPending"), err)
		return nil, repo.ErrFailedToList
	}
	tasks, err := queryTasks(rows)
	if err != nil {
		r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListPending"), err)
		return nil, repo.ErrFailedToList
	}
	return tasks, nil
}

// MarkPushed clears the pending flag of each pushed document whose row was not
// written again while the push was in flight.
func (r *implRepository) MarkPushed(ctx context.Context, docs []task.Task) error {
	if len(docs) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("MarkPushed"), err)
		return repo.ErrFailedToUpdate
	}
	defer tx.Rollback()

	const query = `UPDATE tasks SET pending = 0 WHERE id = ? AND updated_at = ?`
	for _, d := range docs {
		if _, err := tx.ExecContext(ctx, query, d.ID, pkgSqlite.FormatTime(d.UpdatedAt)); err != nil {
			r.l.Errorf(ctx, "%s %s: %v", r.dsn("MarkPushed"), d.ID, err)
			return repo.ErrFailedToUpdate
		}
	}
	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("MarkPushed"), err)
		return repo.ErrFailedToUpdate
	}
	return nil
}

// ApplyRemote writes remote documents into the store in one transaction.
//
// With Force a document always wins, except over a row that changed after the
// version recorded in Pushed.
//
// Without Force a document replaces the local row when it is newer, or equally new
// while the local row has nothing pending. A local tombstone is never revived: the
// remote fields are taken but deleted stays true and the row is queued to push again.
func (r *implRepository) ApplyRemote(ctx context.Context, opt repo.ApplyRemoteOptions) (repo.ApplyResult, error) {
	var res repo.ApplyResult
	if len(opt.Documents) == 0 {
		return res, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("ApplyRemote"), err)
		return res, repo.ErrFailedToApply
	}
	defer tx.Rollback()

	for _, doc := range opt.Documents {
		pushedAt, guarded := opt.Pushed[doc.ID]
		applied, err := r.applyOne(ctx, tx, normalizeRemote(doc), opt.Force, pushedAt, guarded)
		if err != nil {
			r.l.Errorf(ctx, "%s %s: %v", r.dsn("ApplyRemote"), doc.ID, err)
			return repo.ApplyResult{}, repo.ErrFailedToApply
		}
		if applied {
			res.Applied = append(res.Applied, doc.ID)
		} else {
			res.Skipped = append(res.Skipped, doc.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("ApplyRemote"), err)
		return repo.ApplyResult{}, repo.ErrFailedToApply
	}
	return res, nil
}

func (r *implRepository) applyOne(ctx context.Context, tx *sql.Tx, doc task.Task, force bool, pushedAt time.Time, guarded bool) (bool, error) {
	const selectQuery = `SELECT ` + taskColumns + `, pending FROM tasks WHERE id = ?`

	var pending int
	local, err := scanTask(withPending{row: tx.QueryRowContext(ctx, selectQuery, doc.ID), pending: &pending})
	if errors.Is(err, sql.ErrNoRows) {
		args, err := taskArgs(doc)
		if err != nil {
			return false, err
		}
		const insertQuery = `INSERT INTO tasks (` + taskColumns + `, pending)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`
		_, err = tx.ExecContext(ctx, insertQuery, args...)
		return err == nil, err
	}
	if err != nil {
		return false, err
	}

	if force && guarded && !local.UpdatedAt.Equal(pushedAt.UTC().Truncate(time.Microsecond)) {
		return false, nil
	}
	if !force {
		switch {
		case doc.UpdatedAt.Before(local.UpdatedAt):
			return false, nil
		case doc.UpdatedAt.Equal(local.UpdatedAt) && pending == 1:
			return false, nil
		}
	}

	stillPending := false
	if local.Deleted && !doc.Deleted {
		doc.Deleted = true
		doc.UpdatedAt = r.stamp(laterOf(doc.UpdatedAt, local.UpdatedAt))
		stillPending = true
	}
	doc.CreatedAt = local.CreatedAt
	return true, r.writeTask(ctx, tx, doc, stillPending)
}

// GetCheckpoint returns the stored cursor for identifier, or a zero Checkpoint.
func (r *implRepository) GetCheckpoint(ctx context.Context, identifier string) (task.Checkpoint, error) {
	const query = `SELECT doc_id, updated_at FROM replication_checkpoints WHERE identifier = ?`
	var id, updatedAt string
	err := r.db.QueryRowContext(ctx, query, identifier).Scan(&id, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return task.Checkpoint{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetCheckpoint"), err)
		return task.Checkpoint{}, repo.ErrFailedToCursor
	}
	ts, err := pkgSqlite.ParseTime(updatedAt)
	if err != nil {
		r.l.Errorf(ctx, "%s parse: %v", r.dsn("GetCheckpoint"), err)
		return task.Checkpoint{}, repo.ErrFailedToCursor
	}
	return task.Checkpoint{ID: id, UpdatedAt: ts}, nil
}

// SaveCheckpoint stores cp only if it is after the current cursor.
func (r *implRepository) SaveCheckpoint(ctx context.Context, identifier string, cp task.Checkpoint) (task.Checkpoint, error) {
	cp.UpdatedAt = cp.UpdatedAt.UTC().Truncate(time.Microsecond)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("SaveCheckpoint"), err)
		return task.Checkpoint{}, repo.ErrFailedToCursor
	}
	defer tx.Rollback()

	var id, updatedAt string
	err = tx.QueryRowContext(ctx,
		`SELECT doc_id, updated_at FROM replication_checkpoints WHERE identifier = ?`, identifier).
		Scan(&id, &updatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		r.l.Errorf(ctx, "%s select: %v", r.dsn("SaveCheckpoint"), err)
		return task.Checkpoint{}, repo.ErrFailedToCursor
	default:
		ts, perr := pkgSqlite.ParseTime(updatedAt)
		if perr != nil {
			r.l.Errorf(ctx, "%s parse: %v", r.dsn("SaveCheckpoint"), perr)
			return task.Checkpoint{}, repo.ErrFailedToCursor
		}
		current := task.Checkpoint{ID: id, UpdatedAt: ts}
		if !cp.After(current) {
			return current, nil
		}
	}

	const upsert = `INSERT INTO replication_checkpoints (identifier, doc_id, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(identifier) DO UPDATE SET doc_id = excluded.doc_id, updated_at = excluded.updated_at`
	if _, err := tx.ExecContext(ctx, upsert, identifier, cp.ID, pkgSqlite.FormatTime(cp.UpdatedAt)); err != nil {
		r.l.Errorf(ctx, "%s upsert: %v", r.dsn("SaveCheckpoint"), err)
		return task.Checkpoint{}, repo.ErrFailedToCursor
	}
	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("SaveCheckpoint"), err)
		return task.Checkpoint{}, repo.ErrFailedToCursor
	}
	return cp, nil
}

func normalizeRemote(doc task.Task) task.Task {
	doc.UpdatedAt = doc.UpdatedAt.UTC().Truncate(time.Microsecond)
	doc.CreatedAt = doc.CreatedAt.UTC().Truncate(time.Microsecond)
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = doc.UpdatedAt
	}
	if doc.PreparedItems == nil {
		doc.PreparedItems = []string{}
	}
	if doc.Status == "" {
		doc.Status = task.DefaultStatus
	}
	if doc.Source == "" {
		doc.Source = task.DefaultSource
	}
	return doc
}

// withPending appends the pending column to a taskColumns scan.
type withPending struct {
	row     rowScanner
	pending *int
}

func (w withPending) Scan(dest ...any) error {
	return w.row.Scan(append(dest, w.pending)...)
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
