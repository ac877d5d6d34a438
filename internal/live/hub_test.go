package live

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"vision/internal/task"
	"vision/pkg/log"
)

type fakeLister struct {
	mu    sync.Mutex
	tasks []task.Task
	err   error
	calls int
	// afterRead runs once the list has been read, before it is returned.
	afterRead func(call int)
}

func (f *fakeLister) List(ctx context.Context, input task.ListInput) (task.ListOutput, error) {
	f.mu.Lock()
	f.calls++
	call, hook := f.calls, f.afterRead
	if f.err != nil {
		f.mu.Unlock()
		return task.ListOutput{}, f.err
	}
	out := task.ListOutput{Tasks: append([]task.Task(nil), f.tasks...), Total: len(f.tasks)}
	f.mu.Unlock()

	if hook != nil {
		hook(call)
	}
	return out, nil
}

func (f *fakeLister) set(tasks ...task.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = tasks
}

func receive(t *testing.T, ch <-chan Snapshot) Snapshot {
	t.Helper()
	select {
	case s, ok := <-ch:
		if !ok {
			t.Fatal("channel closed")
		}
		return s
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	return Snapshot{}
}

func TestHubSendsInitialAndChangedSnapshots(t *testing.T) {
	lister := &fakeLister{}
	lister.set(task.Task{ID: "a"})
	h := New(log.NewNop(), lister)
	ctx := context.Background()

	ch, unsubscribe := h.Subscribe(ctx)
	defer unsubscribe()

	first := receive(t, ch)
	if len(first.Tasks) != 1 || first.Changed != nil {
		t.Fatalf("unexpected initial snapshot: %+v", first)
	}

	lister.set(task.Task{ID: "a"}, task.Task{ID: "b"})
	h.TasksChanged(ctx, []string{"b"})

	second := receive(t, ch)
	if len(second.Tasks) != 2 || len(second.Changed) != 1 || second.Changed[0] != "b" {
		t.Fatalf("unexpected change snapshot: %+v", second)
	}
}

func TestHubKeepsOnlyLatestForSlowSubscriber(t *testing.T) {
	lister := &fakeLister{}
	h := New(log.NewNop(), lister)
	ctx := context.Background()

	ch, unsubscribe := h.Subscribe(ctx)
	defer unsubscribe()

	for _, id := range []string{"1", "2", "3"} {
		h.TasksChanged(ctx, []string{id})
	}

	got := receive(t, ch)
	if len(got.Changed) != 1 || got.Changed[0] != "3" {
		t.Fatalf("expected latest snapshot only, got %+v", got)
	}
	select {
	case extra := <-ch:
		t.Fatalf("unexpected queued snapshot: %+v", extra)
	default:
	}
}

func TestHubNeverDeliversAnOlderListLast(t *testing.T) {
	lister := &fakeLister{}
	lister.set(task.Task{ID: "a", Title: "v0"})
	h := New(log.NewNop(), lister)
	ctx := context.Background()

	ch, unsubscribe := h.Subscribe(ctx)
	defer unsubscribe()
	receive(t, ch)

	// The first change query reads v1 and stalls until released.
	readV1 := make(chan struct{})
	release := make(chan struct{})
	lister.mu.Lock()
	lister.afterRead = func(call int) {
		if call == 2 {
			close(readV1)
			<-release
		}
	}
	lister.mu.Unlock()

	lister.set(task.Task{ID: "a", Title: "v1"})
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		h.TasksChanged(ctx, []string{"a"})
	}()
	<-readV1

	lister.set(task.Task{ID: "a", Title: "v2"})
	go func() {
		defer wg.Done()
		h.TasksChanged(ctx, []string{"a"})
	}()
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	got := receive(t, ch)
	if len(got.Tasks) != 1 || got.Tasks[0].Title != "v2" {
		t.Fatalf("expected latest snapshot v2, got %+v", got.Tasks)
	}
}

func TestHubSkipsQueryWithoutSubscribers(t *testing.T) {
	lister := &fakeLister{}
	h := New(log.NewNop(), lister)

	h.TasksChanged(context.Background(), []string{"x"})
	if lister.calls != 0 {
		t.Fatalf("expected no list call, got %d", lister.calls)
	}
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	h := New(log.NewNop(), &fakeLister{err: errors.New("store down")})

	ch, unsubscribe := h.Subscribe(context.Background())
	if h.Subscribers() != 1 {
		t.Fatalf("expected 1 subscriber")
	}
	unsubscribe()
	unsubscribe()

	if _, ok := <-ch; ok {
		t.Fatal("expected closed channel")
	}
	if h.Subscribers() != 0 {
		t.Fatalf("expected 0 subscribers, got %d", h.Subscribers())
	}
	// Changes after unsubscribe must not panic on the closed channel.
	h.TasksChanged(context.Background(), []string{"x"})
}
