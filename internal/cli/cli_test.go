package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	gosync "sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"vision/config"
	"vision/internal/calendar"
	"vision/internal/preferences"
	"vision/internal/session"
)

type fakeAPI struct {
	*httptest.Server

	mu     gosync.Mutex
	pushed int
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-1","token_type":"bearer","user":{"id":7,"email":"aki@example.com","name":"Aki"}}`))
	})
	mux.HandleFunc("/api/sync/tasks", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost {
			var docs []json.RawMessage
			json.NewDecoder(r.Body).Decode(&docs)
			f.mu.Lock()
			f.pushed += len(docs)
			f.mu.Unlock()
			w.Write([]byte(`[]`))
			return
		}
		w.Write([]byte(`{"documents":[],"checkpoint":null}`))
	})
	authed := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer tok-1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(body))
		}
	}
	mux.HandleFunc("/api/chat", authed(`{"response":"Start with the report."}`))
	mux.HandleFunc("/api/stats/weekly", authed(`{"data":[{"day":"Mon","tasks":3,"hours":2.5}],"summary":{"totalTasks":3,"totalHours":2.5,"streak":4,"achievementRate":80}}`))
	mux.HandleFunc("/api/loss-data", authed(`{"hourlyRate":3000,"idleMinutes":30}`))
	mux.HandleFunc("/api/proposals", authed(`[{"id":3,"title":"Archive stale tasks","status":"pending"}]`))
	mux.HandleFunc("/api/proposals/3/approve", authed(`{}`))
	mux.HandleFunc("/api/snapshots", authed(`{"id":9,"name":"deep work"}`))
	mux.HandleFunc("/api/prepared-tasks", authed(`[]`))
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeAPI) pushedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pushed
}

type testEnv struct {
	api   *fakeAPI
	stdin string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	e := &testEnv{api: newFakeAPI(t)}

	cfg := &config.Config{}
	cfg.Store.Path = filepath.Join(t.TempDir(), "vision.db")
	cfg.Remote.BaseURL = e.api.URL
	cfg.Remote.LoginPath = "/login"
	cfg.Remote.CacheTTL = -1
	cfg.Replication.BatchSize = 100

	prev := loadConfig
	loadConfig = func() (*config.Config, error) { return cfg, nil }
	t.Cleanup(func() { loadConfig = prev })
	return e
}

// run executes one command line. Flags keep their values between runs, so they are reset first.
func (e *testEnv) run(args ...string) (string, error) {
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(e.stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			sv.Replace(nil)
		} else {
			f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func mustRun(t *testing.T, e *testEnv, args ...string) string {
	t.Helper()
	out, err := e.run(args...)
	if err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out)
	}
	return out
}

func addedID(t *testing.T, out string) string {
	t.Helper()
	id := strings.TrimSpace(strings.TrimPrefix(out, "Added "))
	if id == "" || strings.Contains(id, " ") {
		t.Fatalf("unexpected add output %q", out)
	}
	return id
}

func TestTasksCommands(t *testing.T) {
	e := newTestEnv(t)

	if out := mustRun(t, e, "tasks", "list"); !strings.Contains(out, "No tasks.") {
		t.Errorf("empty list output = %q", out)
	}

	first := addedID(t, mustRun(t, e, "tasks", "add", "Write", "report", "--estimate", "30m"))
	second := addedID(t, mustRun(t, e, "tasks", "add", "Review PR", "--source", "github", "--item", "diff", "--item", "notes"))

	out := mustRun(t, e, "tasks", "list")
	if !strings.Contains(out, "Write report") || !strings.Contains(out, "Review PR") {
		t.Errorf("list output missing tasks: %q", out)
	}
	if strings.Index(out, "Write report") > strings.Index(out, "Review PR") {
		t.Errorf("expected insertion order, got %q", out)
	}

	mustRun(t, e, "tasks", "reorder", second, first)
	out = mustRun(t, e, "tasks", "list")
	if strings.Index(out, "Review PR") > strings.Index(out, "Write report") {
		t.Errorf("expected reordered list, got %q", out)
	}

	if out := mustRun(t, e, "tasks", "start", first); !strings.Contains(out, "[>]") {
		t.Errorf("start output = %q", out)
	}
	if out := mustRun(t, e, "tasks", "complete", first); !strings.Contains(out, "[x]") {
		t.Errorf("complete output = %q", out)
	}
	if out := mustRun(t, e, "tasks", "list", "--status", "completed"); !strings.Contains(out, "Write report") || strings.Contains(out, "Review PR") {
		t.Errorf("status filter output = %q", out)
	}

	mustRun(t, e, "tasks", "delete", second)
	if out := mustRun(t, e, "tasks", "list"); strings.Contains(out, "Review PR") {
		t.Errorf("deleted task still visible: %q", out)
	}
	if out := mustRun(t, e, "tasks", "list", "--all"); !strings.Contains(out, "(deleted)") {
		t.Errorf("expected tombstone with --all: %q", out)
	}

	if _, err := e.run("tasks", "list", "--status", "blocked"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestTasksExport(t *testing.T) {
	e := newTestEnv(t)
	mustRun(t, e, "tasks", "add", "Write report")

	t.Run("yaml", func(t *testing.T) {
		out := mustRun(t, e, "tasks", "export")
		var got exportFile
		if err := yaml.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("unmarshal: %v\n%s", err, out)
		}
		if len(got.Tasks) != 1 || got.Tasks[0].Title != "Write report" {
			t.Errorf("unexpected export %+v", got)
		}
		if got.Tasks[0].EstimatedTime != "15m" || got.Tasks[0].PreparedItems == nil {
			t.Errorf("defaults not exported: %+v", got.Tasks[0])
		}
	})

	t.Run("json", func(t *testing.T) {
		out := mustRun(t, e, "tasks", "export", "--format", "json")
		var got exportFile
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("unmarshal: %v\n%s", err, out)
		}
		if len(got.Tasks) != 1 || got.Tasks[0].Status != "ready" {
			t.Errorf("unexpected export %+v", got)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if _, err := e.run("tasks", "export", "--format", "csv"); err == nil {
			t.Error("expected error")
		}
	})
}

func TestLoginAndSync(t *testing.T) {
	e := newTestEnv(t)

	if out := mustRun(t, e, "whoami"); !strings.Contains(out, "Not signed in.") {
		t.Errorf("whoami before login = %q", out)
	}

	mustRun(t, e, "tasks", "add", "Offline task")

	e.stdin = "secret\n"
	out := mustRun(t, e, "login", "--email", "aki@example.com")
	if !strings.Contains(out, "Signed in as Aki <aki@example.com>") {
		t.Errorf("login output = %q", out)
	}
	e.stdin = ""

	if out := mustRun(t, e, "sync", "status"); !strings.Contains(out, "Pending:    1") {
		t.Errorf("status before sync = %q", out)
	}

	if out := mustRun(t, e, "sync", "run"); !strings.Contains(out, "Pushed 1") {
		t.Errorf("sync output = %q", out)
	}
	if got := e.api.pushedCount(); got != 1 {
		t.Errorf("server received %d documents, want 1", got)
	}

	if out := mustRun(t, e, "sync", "status"); !strings.Contains(out, "Pending:    0") {
		t.Errorf("status after sync = %q", out)
	}

	mustRun(t, e, "logout")
	if out := mustRun(t, e, "whoami"); !strings.Contains(out, "Not signed in.") {
		t.Errorf("whoami after logout = %q", out)
	}
	if _, err := e.run("sync", "run"); err == nil {
		t.Error("expected sync to fail without a session")
	}
}

func TestRemoteCommands(t *testing.T) {
	e := newTestEnv(t)

	if _, err := e.run("chat", "hello"); err == nil {
		t.Fatal("expected chat to require a session")
	}

	e.stdin = "secret\n"
	mustRun(t, e, "login", "--email", "aki@example.com")
	e.stdin = ""

	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"chat", "what", "next?"}, want: "Start with the report."},
		{args: []string{"stats", "weekly"}, want: "streak 4 days"},
		{args: []string{"stats", "loss"}, want: "Idle 30 min at 3000/h: 1500 lost"},
		{args: []string{"proposals"}, want: "Archive stale tasks"},
		{args: []string{"proposals", "approve", "3"}, want: "Approved proposal 3"},
		{args: []string{"snapshots", "create", "deep work", "--window", "editor:main.go"}, want: "Saved snapshot 9"},
		{args: []string{"prepared"}, want: "No prepared tasks."},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			if out := mustRun(t, e, tt.args...); !strings.Contains(out, tt.want) {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}

	if _, err := e.run("proposals", "reject", "abc"); err == nil {
		t.Error("expected invalid id to fail")
	}
	if _, err := e.run("snapshots", "create", "x", "--window", "nocolon"); err == nil {
		t.Error("expected invalid window to fail")
	}
}

func TestPrefsCommands(t *testing.T) {
	e := newTestEnv(t)

	out := mustRun(t, e, "prefs", "get")
	if !strings.Contains(out, "theme:         dark") || !strings.Contains(out, "hourly-rate:   3000") {
		t.Errorf("defaults = %q", out)
	}

	mustRun(t, e, "prefs", "set", "theme", "light")
	mustRun(t, e, "prefs", "set", "hourly-rate", "4500")

	out = mustRun(t, e, "prefs", "get")
	if !strings.Contains(out, "theme:         light") || !strings.Contains(out, "hourly-rate:   4500") {
		t.Errorf("after set = %q", out)
	}

	if _, err := e.run("prefs", "set", "theme", "neon"); err == nil {
		t.Error("expected invalid theme to fail")
	}
}

func TestParsePref(t *testing.T) {
	tests := []struct {
		key, value string
		wantErr    bool
		check      func(preferences.UpdateInput) bool
	}{
		{key: "theme", value: "system", check: func(in preferences.UpdateInput) bool { return *in.Theme == preferences.ThemeSystem }},
		{key: "locale", value: "en", check: func(in preferences.UpdateInput) bool { return *in.Locale == preferences.LocaleEN }},
		{key: "sound", value: "false", check: func(in preferences.UpdateInput) bool { return !*in.Sound && in.Notifications == nil }},
		{key: "notifications", value: "true", check: func(in preferences.UpdateInput) bool { return *in.Notifications }},
		{key: "hourly-rate", value: "abc", wantErr: true},
		{key: "sound", value: "maybe", wantErr: true},
		{key: "colour", value: "red", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			in, err := parsePref(tt.key, tt.value)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.check(in) {
				t.Errorf("unexpected input %+v", in)
			}
		})
	}
}

func TestDreamCommands(t *testing.T) {
	e := newTestEnv(t)

	if out := mustRun(t, e, "dream"); !strings.Contains(out, "No dream yet.") {
		t.Errorf("empty dream = %q", out)
	}

	out := mustRun(t, e, "dream", "set", "Become", "a", "pilot", "--target", "1 year")
	if !strings.Contains(out, "Become a pilot (1 year)") {
		t.Errorf("set output = %q", out)
	}

	if _, err := e.run("dream", "step", "x", "active"); err == nil {
		t.Error("expected invalid step id to fail")
	}

	mustRun(t, e, "dream", "clear")
	if out := mustRun(t, e, "dream"); !strings.Contains(out, "No dream yet.") {
		t.Errorf("after clear = %q", out)
	}
}

func TestCalendarImportNotConfigured(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.run("calendar", "import")
	if !errors.Is(err, calendar.ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		user session.User
		want string
	}{
		{user: session.User{ID: 7, Name: "Aki", Email: "aki@example.com"}, want: "Aki <aki@example.com>"},
		{user: session.User{ID: 7, Email: "aki@example.com"}, want: "aki@example.com"},
		{user: session.User{ID: 7, Name: "Aki"}, want: "Aki"},
		{user: session.User{ID: 7}, want: "user 7"},
	}
	for _, tt := range tests {
		if got := displayName(tt.user); got != tt.want {
			t.Errorf("displayName(%+v) = %q, want %q", tt.user, got, tt.want)
		}
	}
}
