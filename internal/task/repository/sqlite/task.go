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

// CreateTask inserts a new pending task. Missing timestamps are stamped now.
func (r *implRepository) CreateTask(ctx context.Context, opt repo.CreateTaskOptions) (task.Task, error) {
	t := opt.Task
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = r.stamp(t.UpdatedAt)
	}
	t.UpdatedAt = t.UpdatedAt.UTC().Truncate(time.Microsecond)
	if t.CreatedAt.IsZero() {
		t.CreatedAt = t.UpdatedAt
	}
	t.CreatedAt = t.CreatedAt.UTC().Truncate(time.Microsecond)
	if t.PreparedItems == nil {
		t.PreparedItems = []string{}
	}

	args, err := taskArgs(t)
	if err != nil {
		r.l.Errorf(ctx, "%s encode: %v", r.dsn("CreateTask"), err)
		return task.Task{}, repo.ErrFailedToInsert
	}

	const query = `INSERT INTO tasks (` + taskColumns + `, pending)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateTask"), err)
		return task.Task{}, repo.ErrFailedToInsert
	}
	return t, nil
}

// GetOneTask retrieves a single task by id, tombstones included.
// Returns zero-value Task (ID == "") when not found.
func (r *implRepository) GetOneTask(ctx context.Context, opt repo.GetOneTaskOptions) (task.Task, error) {
	const query = `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? LIMIT 1`
	t, err := scanTask(r.db.QueryRowContext(ctx, query, opt.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return task.Task{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneTask"), err)
		return task.Task{}, repo.ErrFailedToGet
	}
	return t, nil
}

// ListTasks returns tasks ordered by position.
func (r *implRepository) ListTasks(ctx context.Context, opt repo.ListTasksOptions) ([]task.Task, error) {
	query, args := r.buildListQuery(opt)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListTasks"), err)
		return nil, repo.ErrFailedToList
	}
	tasks, err := queryTasks(rows)
	if err != nil {
		r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListTasks"), err)
		return nil, repo.ErrFailedToList
	}
	return tasks, nil
}

// UpdateTask applies opt.Mutate to the stored row and marks it pending.
// id and created_at cannot be changed by the mutation.
func (r *implRepository) UpdateTask(ctx context.Context, opt repo.UpdateTaskOptions) (task.Task, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("UpdateTask"), err)
		return task.Task{}, repo.ErrFailedToUpdate
	}
	defer tx.Rollback()

	const selectQuery = `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	current, err := scanTask(tx.QueryRowContext(ctx, selectQuery, opt.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return task.Task{}, repo.ErrNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "%s select: %v", r.dsn("UpdateTask"), err)
		return task.Task{}, repo.ErrFailedToUpdate
	}

	next := current
	next.PreparedItems = append([]string(nil), current.PreparedItems...)
	if opt.Mutate != nil {
		if err := opt.Mutate(&next); err != nil {
			return task.Task{}, err
		}
	}
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = r.stamp(current.UpdatedAt)

	if err := r.writeTask(ctx, tx, next, true); err != nil {
		r.l.Errorf(ctx, "%s write: %v", r.dsn("UpdateTask"), err)
		return task.Task{}, repo.ErrFailedToUpdate
	}
	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("UpdateTask"), err)
		return task.Task{}, repo.ErrFailedToUpdate
	}
	return next, nil
}

// MaxPosition returns the highest position among visible tasks.
func (r *implRepository) MaxPosition(ctx context.Context) (int, bool, error) {
	var pos sql.NullInt64
	err := r.db.QueryRowContext(ctx, `SELECT MAX(position) FROM tasks WHERE deleted = 0`).Scan(&pos)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("MaxPosition"), err)
		return 0, false, repo.ErrFailedToGet
	}
	return int(pos.Int64), pos.Valid, nil
}

// CountPending returns how many local changes have not been acknowledged by the remote.
func (r *implRepository) CountPending(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE pending = 1`).Scan(&n); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CountPending"), err)
		return 0, repo.ErrFailedToGet
	}
	return n, nil
}

// writeTask replaces every column of an existing row.
func (r *implRepository) writeTask(ctx context.Context, tx *sql.Tx, t task.Task, pending bool) error {
	items, err := encodeItems(t.PreparedItems)
	if err != nil {
		return err
	}
	const query = `UPDATE tasks SET title = ?, description = ?, status = ?, source = ?,
		estimated_time = ?, prepared_items = ?, position = ?, deleted = ?, pending = ?,
		created_at = ?, updated_at = ?
		WHERE id = ?`
	_, err = tx.ExecContext(ctx, query,
		t.Title, t.Description, string(t.Status), string(t.Source), t.EstimatedTime, items,
		t.Position, boolInt(t.Deleted), boolInt(pending),
		pkgSqlite.FormatTime(t.CreatedAt), pkgSqlite.FormatTime(t.UpdatedAt), t.ID)
	return err
}
