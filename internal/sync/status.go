package sync

import (
	"context"
	"time"
)

// Status returns a copy of the current replication status with a fresh pending count.
func (r *implReplicator) Status(ctx context.Context) (Status, error) {
	if err := r.refreshPending(ctx); err != nil {
		return Status{}, err
	}
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	return r.status, nil
}

func (r *implReplicator) setStatus(fn func(s *Status)) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	fn(&r.status)
}

func (r *implReplicator) refreshPending(ctx context.Context) error {
	n, err := r.repo.CountPending(ctx)
	if err != nil {
		return err
	}
	pendingDocuments.Set(float64(n))
	r.setStatus(func(s *Status) { s.Pending = n })
	return nil
}

// newTicker exists so tests can swap the clock source if they need to.
var newTicker = func(d time.Duration) *time.Ticker { return time.NewTicker(d) }
