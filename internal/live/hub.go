package live

import (
	"context"
	"sync"
	"time"

	"vision/internal/task"
	"vision/pkg/log"
)

// Snapshot is the visible task list at one point in time.
type Snapshot struct {
	Tasks   []task.Task
	Changed []string
	At      time.Time
}

// Lister is the read side of the task use case the hub needs.
type Lister interface {
	List(ctx context.Context, input task.ListInput) (task.ListOutput, error)
}

type subscriber struct {
	ch chan Snapshot
}

// Hub re-runs the visible-task query after every change and fans the result out
// to subscribers. Slow subscribers only ever see the latest snapshot.
type Hub struct {
	l      log.Logger
	lister Lister
	now    func() time.Time

	// queryMu orders query and delivery so a newer list is never overtaken by an older one.
	queryMu sync.Mutex

	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

// New creates a Hub. Register it as a task.ChangeListener to keep it fed.
func New(l log.Logger, lister Lister) *Hub {
	return &Hub{
		l:      l,
		lister: lister,
		now:    time.Now,
		subs:   make(map[*subscriber]struct{}),
	}
}

// Subscribe returns a channel that receives the current list immediately and
// again after each change. The returned func unsubscribes and closes the channel.
func (h *Hub) Subscribe(ctx context.Context) (<-chan Snapshot, func()) {
	sub := &subscriber{ch: make(chan Snapshot, 1)}

	h.queryMu.Lock()
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	if snap, err := h.snapshot(ctx, nil); err == nil {
		offer(sub.ch, snap)
	} else {
		h.l.Warnf(ctx, "live.Subscribe: initial snapshot: %v", err)
	}
	h.queryMu.Unlock()

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, sub)
			close(sub.ch)
			h.mu.Unlock()
		})
	}
}

// TasksChanged implements task.ChangeListener.
func (h *Hub) TasksChanged(ctx context.Context, ids []string) {
	h.queryMu.Lock()
	defer h.queryMu.Unlock()

	h.mu.Lock()
	n := len(h.subs)
	h.mu.Unlock()
	if n == 0 {
		return
	}

	// Listing must not be tied to a request that may already be finished.
	snap, err := h.snapshot(context.WithoutCancel(ctx), ids)
	if err != nil {
		h.l.Warnf(ctx, "live.TasksChanged: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		offer(sub.ch, snap)
	}
}

// Subscribers returns the number of open subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) snapshot(ctx context.Context, changed []string) (Snapshot, error) {
	out, err := h.lister.List(ctx, task.ListInput{})
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Tasks: out.Tasks, Changed: changed, At: h.now()}, nil
}

// offer replaces any unread snapshot with snap. Callers hold h.mu or own ch.
func offer(ch chan Snapshot, snap Snapshot) {
	for {
		select {
		case ch <- snap:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
