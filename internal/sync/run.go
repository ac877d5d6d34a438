package sync

import (
	"context"
	"errors"
	"net"
	"net/url"

	"vision/pkg/visionapi"
)

// RunOnce runs one push-then-pull cycle and records the outcome in Status.
func (r *implReplicator) RunOnce(ctx context.Context) (CycleResult, error) {
	r.cycleMu.Lock()
	defer r.cycleMu.Unlock()

	r.setStatus(func(s *Status) { s.State = StateSyncing })

	if r.creds != nil {
		if _, err := r.creds.Reload(ctx); err != nil {
			r.l.Warnf(ctx, "sync: reload credentials: %v", err)
		}
	}

	var res CycleResult
	var err error
	res.Push, err = r.push(ctx)
	if err == nil {
		res.Pull, err = r.pull(ctx)
	}

	state := classify(err)
	cycles.WithLabelValues(string(state)).Inc()
	r.setStatus(func(s *Status) {
		s.State = state
		s.LastError = ""
		if err != nil {
			s.LastError = err.Error()
		} else {
			s.LastSyncAt = r.now()
		}
	})
	r.refreshPending(ctx)
	return res, err
}

// Run loops until ctx is cancelled. Cycle errors are logged and retried on the next tick.
func (r *implReplicator) Run(ctx context.Context) error {
	r.l.Infof(ctx, "sync: replicating %q every %s", r.cfg.Identifier, r.cfg.Interval)
	r.cycle(ctx)

	ticker := newTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.l.Infof(ctx, "sync: stopped")
			return nil
		case <-ticker.C:
			r.cycle(ctx)
		case <-r.trigger:
			if err := r.limiter.Wait(ctx); err != nil {
				return nil
			}
			r.cycle(ctx)
		}
	}
}

// Trigger requests an early cycle; repeated triggers coalesce.
func (r *implReplicator) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

func (r *implReplicator) cycle(ctx context.Context) {
	cctx, cancel := context.WithTimeout(ctx, r.cfg.CycleTimeout)
	defer cancel()

	res, err := r.RunOnce(cctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		r.l.Warnf(ctx, "sync: cycle failed: %v", err)
		return
	}
	if res.Push.Pushed > 0 || res.Pull.Received > 0 {
		r.l.Infof(ctx, "sync: pushed %d (conflicts %d), pulled %d (applied %d)",
			res.Push.Pushed, len(res.Push.Conflicts), res.Pull.Received, len(res.Pull.Applied))
	}
}

// classify maps a cycle error onto a user-facing state.
func classify(err error) State {
	if err == nil {
		return StateIdle
	}
	if errors.Is(err, visionapi.ErrUnauthorized) {
		return StateUnauthorized
	}
	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) || errors.Is(err, context.DeadlineExceeded) {
		return StateOffline
	}
	return StateError
}
