package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	dreamUC "vision/internal/dream/usecase"
	"vision/internal/kv"
	"vision/internal/live"
	prefsUC "vision/internal/preferences/usecase"
	sessionUC "vision/internal/session/usecase"
	taskSqlite "vision/internal/task/repository/sqlite"
	taskUC "vision/internal/task/usecase"
	"vision/pkg/log"
	pkgSqlite "vision/pkg/sqlite"
	"vision/pkg/visionapi"
)

type noAnalyzer struct{}

func (noAnalyzer) AnalyzeDream(ctx context.Context, req visionapi.DreamAnalysisRequest) ([]visionapi.DreamStep, error) {
	return nil, nil
}

type failingPinger struct{}

func (failingPinger) PingContext(ctx context.Context) error { return errors.New("database is closed") }

func newTestServer(t *testing.T) *HTTPServer {
	t.Helper()
	srv, err := New(log.NewNop(), newTestConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv
}

func newTestConfig(t *testing.T) Config {
	t.Helper()
	ctx := context.Background()
	l := log.NewNop()

	schema := append(append([]string{}, kv.Schema...), taskSqlite.Schema...)
	db, err := pkgSqlite.Open(ctx, filepath.Join(t.TempDir(), "vision.db"), schema...)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := kv.New(db, l)
	tasks := taskUC.New(l, taskSqlite.New(db, l))
	hub := live.New(l, tasks)
	tasks.AddListener(hub)

	return Config{
		Logger:         l,
		Host:           "127.0.0.1",
		Port:           8787,
		Mode:           "test",
		Environment:    "development",
		Store:          db,
		AllowedOrigins: []string{"http://localhost:3000"},
		TaskUC:         tasks,
		Streamer:       hub,
		SessionUC:      sessionUC.New(l, store),
		PreferencesUC:  prefsUC.New(l, store),
		DreamUC:        dreamUC.New(l, store, noAnalyzer{}, tasks),
	}
}

func TestNewValidate(t *testing.T) {
	l := log.NewNop()
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "missing mode", cfg: Config{Port: 1}, want: "mode is required"},
		{name: "missing port", cfg: Config{Mode: "test"}, want: "port is required"},
		{name: "missing task usecase", cfg: Config{Mode: "test", Port: 1}, want: "task usecase is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(l, tt.cfg)
			if err == nil || err.Error() != tt.want {
				t.Errorf("expected %q, got %v", tt.want, err)
			}
		})
	}
}

func TestSystemRoutes(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/health", "/ready", "/live"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			var body struct {
				Data map[string]any `json:"data"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Data["service"] != ServiceName {
				t.Errorf("service = %q", body.Data["service"])
			}
		})
	}

	t.Run("/health reports the session", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		if !strings.Contains(w.Body.String(), `"authenticated":false`) {
			t.Errorf("expected signed-out session in %s", w.Body.String())
		}
	})

	t.Run("/metrics", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "vision_http_requests_total") {
			t.Errorf("expected request metrics in output")
		}
	})
}

func TestReadyFailsWhenStoreIsDown(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Store = failingPinger{}
	srv, err := New(log.NewNop(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"store":"unavailable"`) {
		t.Errorf("expected store to be reported down: %s", w.Body.String())
	}
}

func TestDomainRoutes(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/v1/tasks", "", http.StatusOK},
		{http.MethodPost, "/api/v1/tasks", `{"title":"Write report"}`, http.StatusCreated},
		{http.MethodGet, "/api/v1/session", "", http.StatusOK},
		{http.MethodGet, "/api/v1/preferences", "", http.StatusOK},
		{http.MethodGet, "/api/v1/dream", "", http.StatusOK},
		// optional domains were not configured
		{http.MethodGet, "/api/v1/sync/status", "", http.StatusNotFound},
		{http.MethodPost, "/api/v1/integrations/calendar/import", "{}", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			srv.Handler().ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestRunShutsDownOnCancel(t *testing.T) {
	srv := newTestServer(t)
	srv.port = 0

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	cancel()

	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
}
