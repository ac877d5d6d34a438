package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"vision/internal/task"
	repo "vision/internal/task/repository"
	pkgSqlite "vision/pkg/sqlite"
)

const taskColumns = `id, title, description, status, source, estimated_time, prepared_items,
	position, deleted, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask decodes one row. prepared_items is decoded here and nowhere else.
func scanTask(row rowScanner) (task.Task, error) {
	var (
		t                    task.Task
		status, source       string
		prepared             string
		deleted              int
		createdAt, updatedAt string
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &status, &source, &t.EstimatedTime,
		&prepared, &t.Position, &deleted, &createdAt, &updatedAt); err != nil {
		return task.Task{}, err
	}
	t.Status = task.Status(status)
	t.Source = task.Source(source)
	t.Deleted = deleted != 0

	items, err := decodeItems(prepared)
	if err != nil {
		return task.Task{}, err
	}
	t.PreparedItems = items

	if t.CreatedAt, err = pkgSqlite.ParseTime(createdAt); err != nil {
		return task.Task{}, err
	}
	if t.UpdatedAt, err = pkgSqlite.ParseTime(updatedAt); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

func encodeItems(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeItems(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	items := []string{}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("invalid prepared_items %q: %w", raw, err)
	}
	return items, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// taskArgs returns the positional arguments matching taskColumns.
func taskArgs(t task.Task) ([]any, error) {
	items, err := encodeItems(t.PreparedItems)
	if err != nil {
		return nil, err
	}
	return []any{
		t.ID, t.Title, t.Description, string(t.Status), string(t.Source), t.EstimatedTime,
		items, t.Position, boolInt(t.Deleted),
		pkgSqlite.FormatTime(t.CreatedAt), pkgSqlite.FormatTime(t.UpdatedAt),
	}, nil
}

func (r *implRepository) buildListQuery(opt repo.ListTasksOptions) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if !opt.IncludeDeleted {
		conds = append(conds, "deleted = 0")
	}
	if opt.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(opt.Status))
	}

	query := "SELECT " + taskColumns + " FROM tasks"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY position ASC, created_at ASC"
	if opt.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opt.Limit)
	}
	return query, args
}

func queryTasks(rows *sql.Rows) ([]task.Task, error) {
	defer rows.Close()
	var out []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
