package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"vision/internal/task"
	"vision/internal/task/repository"
	taskSqlite "vision/internal/task/repository/sqlite"
	pkgSqlite "vision/pkg/sqlite"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// recordingListener collects change notifications.
type recordingListener struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *recordingListener) TasksChanged(ctx context.Context, ids []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, append([]string(nil), ids...))
}

func (r *recordingListener) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// failingRepo wraps a real store and fails UpdateTask for chosen ids.
type failingRepo struct {
	repository.Repository
	failIDs map[string]bool
}

var errInjected = errors.New("injected failure")

func (f *failingRepo) UpdateTask(ctx context.Context, opt repository.UpdateTaskOptions) (task.Task, error) {
	if f.failIDs[opt.ID] {
		return task.Task{}, errInjected
	}
	return f.Repository.UpdateTask(ctx, opt)
}

func newTestStore(t *testing.T) repository.Repository {
	t.Helper()
	db, err := pkgSqlite.Open(context.Background(), filepath.Join(t.TempDir(), "tasks.db"), taskSqlite.Schema...)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return taskSqlite.New(db, &mockLogger{})
}

func newTestUseCase(t *testing.T) (*implUseCase, *recordingListener) {
	t.Helper()
	li := &recordingListener{}
	return New(&mockLogger{}, newTestStore(t), li), li
}
