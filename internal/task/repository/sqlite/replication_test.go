package sqlite

import (
	"context"
	"testing"
	"time"

	"vision/internal/task"
	repo "vision/internal/task/repository"
)

func remoteDoc(id, title string, updatedAt time.Time) task.Task {
	tk := newTask(id, 0)
	tk.Title = title
	tk.UpdatedAt = updatedAt
	tk.CreatedAt = updatedAt
	return tk
}

func TestApplyRemote(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts unknown documents as synced", func(t *testing.T) {
		r := newTestStore(t)
		res, err := r.ApplyRemote(ctx, repo.ApplyRemoteOptions{Documents: []task.Task{remoteDoc("x", "remote", baseTime)}})
		if err != nil {
			t.Fatalf("ApplyRemote: %v", err)
		}
		if len(res.Applied) != 1 {
			t.Fatalf("expected x applied, got %+v", res)
		}
		if n, _ := r.CountPending(ctx); n != 0 {
			t.Errorf("remote inserts must not be pending, got %d", n)
		}
	})

	t.Run("newer remote wins", func(t *testing.T) {
		r := newTestStore(t)
		r.CreateTask(ctx, repo.CreateTaskOptions{Task: newTask("a", 0)})

		res, err := r.ApplyRemote(ctx, repo.ApplyRemoteOptions{Documents: []task.Task{
			remoteDoc("a", "from server", baseTime.Add(time.Minute)),
		}})
		if err != nil {
			t.Fatalf("ApplyRemote: %v", err)
		}
		got, _ := r.GetOneTask(ctx, repo.GetOneTaskOptions{ID: "a"})
		if got.Title != "from server" || len(res.Applied) != 1 {
			t.Errorf("expected remote to win, got %+v", got)
		}
		if !got.CreatedAt.Equal(baseTime) {
			t.Errorf("created_at must be kept, got %v", got.CreatedAt)
		}
	})

	t.Run("newer local pending edit is kept", func(t *testing.T) {
		r := newTestStore(t)
		r.CreateTask(ctx, repo.CreateTaskOptions{Task: newTask("a", 0)})

		res, _ := r.ApplyRemote(ctx, repo.ApplyRemoteOptions{Documents: []task.Task{
			remoteDoc("a", "stale", baseTime.Add(-time.Minute)),
		}})
		got, _ := r.GetOneTask(ctx, repo.GetOneTaskOptions{ID: "a"})
		if got.Title != "task a" || len(res.Skipped) != 1 {
			t.Errorf("expected local to win, got %+v", got)
		}
		if n, _ := r.CountPending(ctx); n != 1 {
			t.Errorf("local edit must stay pending, got %d", n)
		}
	})

	t.Run("equal timestamp keeps pending local", func(t *testing.T) {
		r := newTestStore(t)
		r.CreateTask(ctx, repo.CreateTaskOptions{Task: newTask("a", 0)})

		res, _ := r.ApplyRemote(ctx, repo.ApplyRemoteOptions{Documents: []task.Task{remoteDoc("a", "tie", baseTime)}})
		if len(res.Skipped) != 1 {
			t.Errorf("expected tie to be skipped while pending, got %+v", res)
		}
	})

	t.Run("tombstone is sticky", func(t *testing.T) {
		r := newTestStore(t)
		r.CreateTask(ctx, repo.CreateTaskOptions{Task: newTask("a", 0)})
		r.UpdateTask(ctx, repo.UpdateTaskOptions{ID: "a", Mutate: func(tk *task.Task) error {
			tk.Deleted = true
			return nil
		}})

		newer := baseTime.Add(time.Hour)
		_, err := r.ApplyRemote(ctx, repo.ApplyRemoteOptions{Documents: []task.Task{remoteDoc("a", "revived?", newer)}})
		if err != nil {
			t.Fatalf("ApplyRemote: %v", err)
		}
		got, _ := r.GetOneTask(ctx, repo.GetOneTaskOptions{ID: "a"})
		if !got.Deleted {
			t.Fatal("remote document must not clear a local tombstone")
		}
		if !got.UpdatedAt.After(newer) {
			t.Errorf("tombstone should be re-stamped after the remote copy, got %v", got.UpdatedAt)
		}
		if n, _ := r.CountPending(ctx); n != 1 {
			t.Errorf("tombstone should be queued for push again, got %d pending", n)
		}
	})

	t.Run("force applies older master copy", func(t *testing.T) {
		r := newTestStore(t)
		r.CreateTask(ctx, repo.CreateTaskOptions{Task: newTask("a", 0)})

		_, err := r.ApplyRemote(ctx, repo.ApplyRemoteOptions{
			Documents: []task.Task{remoteDoc("a", "master", baseTime.Add(-time.Hour))},
			Force:     true,
		})
		if err != nil {
			t.Fatalf("ApplyRemote: %v", err)
		}
		got, _ := r.GetOneTask(ctx, repo.GetOneTaskOptions{ID: "a"})
		if got.Title != "master" {
			t.Errorf("expected master copy, got %q", got.Title)
		}
		if n, _ := r.CountPending(ctx); n != 0 {
			t.Errorf("master copy must clear pending, got %d", n)
		}
	})
}

func TestListPendingAndMarkPushed(t *testing.T) {
	r := newTestStore(t)
	ctx := context.Background()

	r.CreateTask(ctx, repo.CreateTaskOptions{Task: newTask("a", 0)})
	r.CreateTask(ctx, repo.CreateTaskOptions{Task: newTask("b", 1)})

	pending, err := r.ListPending(ctx, 0)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending, got %v", ids(pending))
	}

	// b is edited while the push is in flight; only a may be cleared.
	r.UpdateTask(ctx, repo.UpdateTaskOptions{ID: "b", Mutate: func(tk *task.Task) error {
		tk.Title = "edited mid-push"
		return nil
	}})
	if err := r.MarkPushed(ctx, pending); err != nil {
		t.Fatalf("MarkPushed: %v", err)
	}

	left, _ := r.ListPending(ctx, 0)
	if len(left) != 1 || left[0].ID != "b" {
		t.Errorf("expected only b pending, got %v", ids(left))
	}
}

func TestApplyRemoteForcedRespectsPushedVersion(t *testing.T) {
	r := newTestStore(t)
	ctx := context.Background()

	r.CreateTask(ctx, repo.CreateTaskOptions{Task: newTask("a", 0)})
	r.CreateTask(ctx, repo.CreateTaskOptions{Task: newTask("b", 1)})
	pending, _ := r.ListPending(ctx, 0)
	pushed := make(map[string]time.Time, len(pending))
	for _, p := range pending {
		pushed[p.ID] = p.UpdatedAt
	}

	r.UpdateTask(ctx, repo.UpdateTaskOptions{ID: "b", Mutate: func(tk *task.Task) error {
		tk.Title = "edited mid-push"
		return nil
	}})

	past := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	res, err := r.ApplyRemote(ctx, repo.ApplyRemoteOptions{
		Documents: []task.Task{remoteDoc("a", "master a", past), remoteDoc("b", "master b", past)},
		Force:     true,
		Pushed:    pushed,
	})
	if err != nil {
		t.Fatalf("ApplyRemote: %v", err)
	}
	if len(res.Applied) != 1 || res.Applied[0] != "a" || len(res.Skipped) != 1 || res.Skipped[0] != "b" {
		t.Fatalf("expected a applied and b skipped, got %+v", res)
	}

	a, _ := r.GetOneTask(ctx, repo.GetOneTaskOptions{ID: "a"})
	if a.Title != "master a" {
		t.Errorf("expected master to win on a, got %q", a.Title)
	}
	b, _ := r.GetOneTask(ctx, repo.GetOneTaskOptions{ID: "b"})
	if b.Title != "edited mid-push" {
		t.Errorf("expected local edit on b, got %q", b.Title)
	}
	left, _ := r.ListPending(ctx, 0)
	if len(left) != 1 || left[0].ID != "b" {
		t.Errorf("expected only b pending, got %v", ids(left))
	}
}

func TestCheckpointIsMonotonic(t *testing.T) {
	r := newTestStore(t)
	ctx := context.Background()
	const ident = "task-sync-v1"

	cp, err := r.GetCheckpoint(ctx, ident)
	if err != nil || !cp.IsZero() {
		t.Fatalf("expected zero checkpoint, got %+v err=%v", cp, err)
	}

	first := task.Checkpoint{ID: "b", UpdatedAt: baseTime}
	if got, _ := r.SaveCheckpoint(ctx, ident, first); got.ID != "b" {
		t.Fatalf("expected first checkpoint stored, got %+v", got)
	}

	older := task.Checkpoint{ID: "z", UpdatedAt: baseTime.Add(-time.Second)}
	got, err := r.SaveCheckpoint(ctx, ident, older)
	if err != nil {
		t.Fatalf("SaveCheckpoint: %v", err)
	}
	if got.ID != "b" || !got.UpdatedAt.Equal(baseTime) {
		t.Errorf("checkpoint moved backwards to %+v", got)
	}

	sameTimeLowerID := task.Checkpoint{ID: "a", UpdatedAt: baseTime}
	if got, _ := r.SaveCheckpoint(ctx, ident, sameTimeLowerID); got.ID != "b" {
		t.Errorf("tie with lower id must not replace cursor, got %+v", got)
	}

	newer := task.Checkpoint{ID: "c", UpdatedAt: baseTime.Add(time.Second)}
	r.SaveCheckpoint(ctx, ident, newer)
	stored, _ := r.GetCheckpoint(ctx, ident)
	if stored.ID != "c" || !stored.UpdatedAt.Equal(newer.UpdatedAt) {
		t.Errorf("expected newer checkpoint, got %+v", stored)
	}
}
