package sync

import (
	"context"
	"path/filepath"
	gosync "sync"
	"testing"
	"time"

	taskSqlite "vision/internal/task/repository/sqlite"
	pkgSqlite "vision/pkg/sqlite"
	"vision/pkg/visionapi"
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

// fakeRemote serves queued pull pages and records pushes.
type fakeRemote struct {
	mu        gosync.Mutex
	pages     []visionapi.PullResponse
	pulls     []visionapi.PullRequest
	pushed    [][]visionapi.TaskDocument
	conflicts []visionapi.TaskDocument
	pullErr   error
	pushErr   error
	// duringPush runs while a push request is in flight.
	duringPush func()
}

func (f *fakeRemote) PullTasks(ctx context.Context, req visionapi.PullRequest) (visionapi.PullResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pulls = append(f.pulls, req)
	if f.pullErr != nil {
		return visionapi.PullResponse{}, f.pullErr
	}
	if len(f.pages) == 0 {
		return visionapi.PullResponse{}, nil
	}
	page := f.pages[0]
	f.pages = f.pages[1:]
	return page, nil
}

func (f *fakeRemote) PushTasks(ctx context.Context, docs []visionapi.TaskDocument) ([]visionapi.TaskDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pushErr != nil {
		return nil, f.pushErr
	}
	f.pushed = append(f.pushed, docs)
	if f.duringPush != nil {
		f.duringPush()
	}
	return f.conflicts, nil
}

func (f *fakeRemote) pushCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pushed)
}

type recordingListener struct {
	mu  gosync.Mutex
	ids []string
}

func (r *recordingListener) TasksChanged(ctx context.Context, ids []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, ids...)
}

var baseTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) taskSqlite.Store {
	t.Helper()
	db, err := pkgSqlite.Open(context.Background(), filepath.Join(t.TempDir(), "tasks.db"), taskSqlite.Schema...)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return taskSqlite.New(db, &mockLogger{})
}

func doc(id, title string, updatedAt time.Time) visionapi.TaskDocument {
	return visionapi.TaskDocument{
		ID:            id,
		Title:         title,
		Status:        "ready",
		Source:        "manual",
		EstimatedTime: "15m",
		PreparedItems: visionapi.StringList{},
		CreatedAt:     visionapi.Timestamp(updatedAt),
		UpdatedAt:     visionapi.Timestamp(updatedAt),
	}
}
