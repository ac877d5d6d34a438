package kv

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pkgSqlite "vision/pkg/sqlite"
)

func (s *implStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	if key == "" {
		return Entry{}, false, ErrEmptyKey
	}
	var value, updatedAt string
	err := s.db.QueryRowContext(ctx, `SELECT value, updated_at FROM kv WHERE key = ?`, key).Scan(&value, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		s.l.Errorf(ctx, "%s %s: %v", s.dsn("Get"), key, err)
		return Entry{}, false, ErrFailedToGet
	}
	ts, err := pkgSqlite.ParseTime(updatedAt)
	if err != nil {
		s.l.Errorf(ctx, "%s %s: %v", s.dsn("Get"), key, err)
		return Entry{}, false, ErrFailedToGet
	}
	return Entry{Key: key, Value: value, UpdatedAt: ts}, true, nil
}

// Set writes value and stamps an updated_at strictly after the previous one.
func (s *implStore) Set(ctx context.Context, key, value string) (Entry, error) {
	if key == "" {
		return Entry{}, ErrEmptyKey
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.l.Errorf(ctx, "%s begin: %v", s.dsn("Set"), err)
		return Entry{}, ErrFailedToSet
	}
	defer tx.Rollback()

	var prev string
	err = tx.QueryRowContext(ctx, `SELECT updated_at FROM kv WHERE key = ?`, key).Scan(&prev)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		s.l.Errorf(ctx, "%s select %s: %v", s.dsn("Set"), key, err)
		return Entry{}, ErrFailedToSet
	}
	prevAt, _ := pkgSqlite.ParseTime(prev)

	at := s.now().UTC().Truncate(time.Microsecond)
	if !prevAt.IsZero() && !at.After(prevAt) {
		at = prevAt.Add(time.Microsecond)
	}

	const upsert = `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := tx.ExecContext(ctx, upsert, key, value, pkgSqlite.FormatTime(at)); err != nil {
		s.l.Errorf(ctx, "%s upsert %s: %v", s.dsn("Set"), key, err)
		return Entry{}, ErrFailedToSet
	}
	if err := tx.Commit(); err != nil {
		s.l.Errorf(ctx, "%s commit: %v", s.dsn("Set"), err)
		return Entry{}, ErrFailedToSet
	}
	return Entry{Key: key, Value: value, UpdatedAt: at}, nil
}

func (s *implStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		s.l.Errorf(ctx, "%s %s: %v", s.dsn("Delete"), key, err)
		return ErrFailedToDel
	}
	return nil
}

func (s *implStore) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	e, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return ok, err
	}
	if err := json.Unmarshal([]byte(e.Value), out); err != nil {
		return true, fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
	}
	return true, nil
}

func (s *implStore) SetJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kv: failed to encode %s: %w", key, err)
	}
	_, err = s.Set(ctx, key, string(b))
	return err
}
