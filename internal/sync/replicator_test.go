package sync

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"
	"time"

	"vision/internal/task"
	"vision/internal/task/repository"
	"vision/pkg/visionapi"
)

func TestPull(t *testing.T) {
	ctx := context.Background()

	t.Run("applies documents and advances the checkpoint", func(t *testing.T) {
		store := newTestStore(t)
		li := &recordingListener{}
		remote := &fakeRemote{pages: []visionapi.PullResponse{{
			Documents: []visionapi.TaskDocument{
				doc("a", "first", baseTime),
				doc("b", "second", baseTime.Add(time.Second)),
			},
		}}}
		r := New(&mockLogger{}, store, remote, Config{BatchSize: 10}, li)

		res, err := r.Pull(ctx)
		if err != nil {
			t.Fatalf("Pull: %v", err)
		}
		if res.Received != 2 || len(res.Applied) != 2 {
			t.Fatalf("expected 2 applied, got %+v", res)
		}
		want := task.Checkpoint{ID: "b", UpdatedAt: baseTime.Add(time.Second)}
		if !sameCheckpoint(res.Checkpoint, want) {
			t.Errorf("expected checkpoint %+v, got %+v", want, res.Checkpoint)
		}
		if len(li.ids) != 2 {
			t.Errorf("expected listeners to hear both ids, got %v", li.ids)
		}
		got, _ := store.GetOneTask(ctx, repository.GetOneTaskOptions{ID: "a"})
		if got.Title != "first" {
			t.Errorf("expected a stored, got %+v", got)
		}
	})

	t.Run("zero documents leaves the checkpoint unchanged", func(t *testing.T) {
		store := newTestStore(t)
		cp := task.Checkpoint{ID: "z", UpdatedAt: baseTime}
		if _, err := store.SaveCheckpoint(ctx, defaultIdentifier, cp); err != nil {
			t.Fatalf("SaveCheckpoint: %v", err)
		}
		remote := &fakeRemote{}
		r := New(&mockLogger{}, store, remote, Config{})

		res, err := r.Pull(ctx)
		if err != nil {
			t.Fatalf("Pull: %v", err)
		}
		if !sameCheckpoint(res.Checkpoint, cp) {
			t.Errorf("expected checkpoint %+v, got %+v", cp, res.Checkpoint)
		}
		if !remote.pulls[0].MinUpdatedAt.Equal(baseTime) {
			t.Errorf("expected pull from %v, got %v", baseTime, remote.pulls[0].MinUpdatedAt)
		}
	})

	t.Run("server cursor older than stored is ignored", func(t *testing.T) {
		store := newTestStore(t)
		cp := task.Checkpoint{ID: "z", UpdatedAt: baseTime.Add(time.Hour)}
		store.SaveCheckpoint(ctx, defaultIdentifier, cp)
		remote := &fakeRemote{pages: []visionapi.PullResponse{{
			Documents:  []visionapi.TaskDocument{doc("a", "old", baseTime)},
			Checkpoint: &visionapi.Checkpoint{ID: "a", UpdatedAt: visionapi.Timestamp(baseTime)},
		}}}
		r := New(&mockLogger{}, store, remote, Config{})

		res, err := r.Pull(ctx)
		if err != nil {
			t.Fatalf("Pull: %v", err)
		}
		if !sameCheckpoint(res.Checkpoint, cp) {
			t.Errorf("checkpoint moved backwards: %+v", res.Checkpoint)
		}
	})

	t.Run("pages while batches are full", func(t *testing.T) {
		store := newTestStore(t)
		remote := &fakeRemote{pages: []visionapi.PullResponse{
			{Documents: []visionapi.TaskDocument{doc("a", "a", baseTime)}},
			{Documents: []visionapi.TaskDocument{doc("b", "b", baseTime.Add(time.Second))}},
			{},
		}}
		r := New(&mockLogger{}, store, remote, Config{BatchSize: 1})

		res, err := r.Pull(ctx)
		if err != nil {
			t.Fatalf("Pull: %v", err)
		}
		if res.Received != 2 || len(remote.pulls) != 3 {
			t.Errorf("expected 2 docs over 3 requests, got %d over %d", res.Received, len(remote.pulls))
		}
	})

	t.Run("stops when the cursor does not advance", func(t *testing.T) {
		store := newTestStore(t)
		same := visionapi.PullResponse{Documents: []visionapi.TaskDocument{doc("a", "a", baseTime)}}
		remote := &fakeRemote{pages: []visionapi.PullResponse{same, same, same}}
		r := New(&mockLogger{}, store, remote, Config{BatchSize: 1})

		if _, err := r.Pull(ctx); err != nil {
			t.Fatalf("Pull: %v", err)
		}
		if len(remote.pulls) != 2 {
			t.Errorf("expected the loop to stop after a repeated page, got %d pulls", len(remote.pulls))
		}
	})

	t.Run("remote error is returned", func(t *testing.T) {
		store := newTestStore(t)
		remote := &fakeRemote{pullErr: errors.New("boom")}
		r := New(&mockLogger{}, store, remote, Config{})
		if _, err := r.Pull(ctx); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestPush(t *testing.T) {
	ctx := context.Background()

	t.Run("sends pending and clears them", func(t *testing.T) {
		store := newTestStore(t)
		store.CreateTask(ctx, repository.CreateTaskOptions{Task: task.Task{ID: "a", Title: "local"}})
		remote := &fakeRemote{}
		r := New(&mockLogger{}, store, remote, Config{})

		res, err := r.Push(ctx)
		if err != nil {
			t.Fatalf("Push: %v", err)
		}
		if res.Pushed != 1 || len(remote.pushed) != 1 || remote.pushed[0][0].ID != "a" {
			t.Fatalf("expected a pushed, got %+v", res)
		}
		if n, _ := store.CountPending(ctx); n != 0 {
			t.Errorf("expected nothing pending, got %d", n)
		}
	})

	t.Run("nothing pending sends nothing", func(t *testing.T) {
		store := newTestStore(t)
		remote := &fakeRemote{}
		r := New(&mockLogger{}, store, remote, Config{})
		if _, err := r.Push(ctx); err != nil {
			t.Fatalf("Push: %v", err)
		}
		if remote.pushCount() != 0 {
			t.Errorf("expected no request, got %d", remote.pushCount())
		}
	})

	t.Run("conflicts apply the master copy", func(t *testing.T) {
		store := newTestStore(t)
		store.CreateTask(ctx, repository.CreateTaskOptions{Task: task.Task{ID: "a", Title: "local"}})
		store.CreateTask(ctx, repository.CreateTaskOptions{Task: task.Task{ID: "b", Title: "fine"}})
		li := &recordingListener{}
		remote := &fakeRemote{conflicts: []visionapi.TaskDocument{doc("a", "master", baseTime)}}
		r := New(&mockLogger{}, store, remote, Config{}, li)

		res, err := r.Push(ctx)
		if err != nil {
			t.Fatalf("Push: %v", err)
		}
		if len(res.Conflicts) != 1 || res.Conflicts[0] != "a" {
			t.Fatalf("expected conflict on a, got %+v", res)
		}
		got, _ := store.GetOneTask(ctx, repository.GetOneTaskOptions{ID: "a"})
		if got.Title != "master" {
			t.Errorf("expected master copy to win, got %q", got.Title)
		}
		if n, _ := store.CountPending(ctx); n != 0 {
			t.Errorf("expected nothing pending, got %d", n)
		}
		if len(li.ids) != 1 || li.ids[0] != "a" {
			t.Errorf("expected listener to hear a, got %v", li.ids)
		}
	})

	t.Run("conflict keeps an edit made during the push", func(t *testing.T) {
		store := newTestStore(t)
		store.CreateTask(ctx, repository.CreateTaskOptions{Task: task.Task{ID: "a", Title: "local"}})
		remote := &fakeRemote{conflicts: []visionapi.TaskDocument{doc("a", "master", baseTime)}}
		remote.duringPush = func() {
			_, err := store.UpdateTask(ctx, repository.UpdateTaskOptions{ID: "a", Mutate: func(tk *task.Task) error {
				tk.Title = "edited during push"
				return nil
			}})
			if err != nil {
				t.Errorf("UpdateTask: %v", err)
			}
		}
		r := New(&mockLogger{}, store, remote, Config{})

		res, err := r.Push(ctx)
		if err != nil {
			t.Fatalf("Push: %v", err)
		}
		if len(res.Conflicts) != 1 {
			t.Fatalf("expected one conflict, got %+v", res)
		}
		got, _ := store.GetOneTask(ctx, repository.GetOneTaskOptions{ID: "a"})
		if got.Title != "edited during push" {
			t.Errorf("expected local edit to survive, got %q", got.Title)
		}
		if n, _ := store.CountPending(ctx); n != 1 {
			t.Errorf("expected the edit to stay pending, got %d", n)
		}

		remote.conflicts = nil
		remote.duringPush = nil
		if _, err := r.Push(ctx); err != nil {
			t.Fatalf("second Push: %v", err)
		}
		last := remote.pushed[len(remote.pushed)-1]
		if len(last) != 1 || last[0].Title != "edited during push" {
			t.Errorf("expected the edit to be pushed next, got %+v", last)
		}
	})

	t.Run("failed push keeps changes pending", func(t *testing.T) {
		store := newTestStore(t)
		store.CreateTask(ctx, repository.CreateTaskOptions{Task: task.Task{ID: "a", Title: "local"}})
		remote := &fakeRemote{pushErr: errors.New("offline")}
		r := New(&mockLogger{}, store, remote, Config{})

		if _, err := r.Push(ctx); err == nil {
			t.Fatal("expected error")
		}
		if n, _ := store.CountPending(ctx); n != 1 {
			t.Errorf("expected change to stay pending, got %d", n)
		}
	})
}

func TestRunOnceStatus(t *testing.T) {
	ctx := context.Background()

	tcs := map[string]struct {
		pushErr error
		want    State
	}{
		"success":      {want: StateIdle},
		"unauthorized": {pushErr: fmt.Errorf("push: %w", visionapi.ErrUnauthorized), want: StateUnauthorized},
		"offline": {
			pushErr: &url.Error{Op: "Post", URL: "http://x", Err: &net.OpError{Op: "dial", Err: errors.New("refused")}},
			want:    StateOffline,
		},
		"server error": {pushErr: &visionapi.StatusError{StatusCode: 500, Status: "500 Internal Server Error"}, want: StateError},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			store := newTestStore(t)
			store.CreateTask(ctx, repository.CreateTaskOptions{Task: task.Task{ID: "a", Title: "local"}})
			remote := &fakeRemote{pushErr: tc.pushErr}
			r := New(&mockLogger{}, store, remote, Config{})

			_, err := r.RunOnce(ctx)
			if (err != nil) != (tc.pushErr != nil) {
				t.Fatalf("unexpected error: %v", err)
			}
			st, err := r.Status(ctx)
			if err != nil {
				t.Fatalf("Status: %v", err)
			}
			if st.State != tc.want {
				t.Errorf("expected state %q, got %q", tc.want, st.State)
			}
			if tc.pushErr == nil {
				if st.Pending != 0 || st.LastSyncAt.IsZero() {
					t.Errorf("expected a clean sync, got %+v", st)
				}
				if len(remote.pulls) != 1 {
					t.Errorf("expected pull after push, got %d", len(remote.pulls))
				}
			} else {
				if st.Pending != 1 || st.LastError == "" {
					t.Errorf("expected pending change and error, got %+v", st)
				}
				if len(remote.pulls) != 0 {
					t.Errorf("pull must not run after a failed push")
				}
			}
		})
	}
}

type countingCredentials struct {
	calls int
	err   error
}

func (c *countingCredentials) Reload(ctx context.Context) (bool, error) {
	c.calls++
	return false, c.err
}

func TestRunOnceReloadsCredentials(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	creds := &countingCredentials{err: errors.New("kv locked")}
	r := New(&mockLogger{}, store, &fakeRemote{}, Config{})
	r.UseCredentials(creds)

	if _, err := r.RunOnce(ctx); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if _, err := r.RunOnce(ctx); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if creds.calls != 2 {
		t.Errorf("expected a reload per cycle, got %d", creds.calls)
	}
}

func TestRunTriggeredByLocalWrite(t *testing.T) {
	store := newTestStore(t)
	remote := &fakeRemote{}
	r := New(&mockLogger{}, store, remote, Config{Interval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	store.CreateTask(ctx, repository.CreateTaskOptions{Task: task.Task{ID: "a", Title: "local"}})
	r.TasksChanged(ctx, []string{"a"})

	deadline := time.Now().Add(2 * time.Second)
	for remote.pushCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
	if remote.pushCount() == 0 {
		t.Error("expected the trigger to run a cycle that pushes a")
	}
}

func TestTriggerNeverBlocks(t *testing.T) {
	r := New(&mockLogger{}, newTestStore(t), &fakeRemote{}, Config{})
	for i := 0; i < 10; i++ {
		r.Trigger()
	}
	if len(r.trigger) != 1 {
		t.Errorf("expected triggers to coalesce, got %d queued", len(r.trigger))
	}
}

func sameCheckpoint(a, b task.Checkpoint) bool {
	return a.ID == b.ID && a.UpdatedAt.Equal(b.UpdatedAt)
}
