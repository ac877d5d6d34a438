package sync

import (
	"context"
	"time"

	"vision/internal/task"
	"vision/internal/task/repository"
)

// Push sends every pending local change in one request. Documents the server
// rejects come back as master copies and overwrite the local ones, unless the
// local row was edited again while the request was in flight.
func (r *implReplicator) Push(ctx context.Context) (PushResult, error) {
	r.cycleMu.Lock()
	defer r.cycleMu.Unlock()
	return r.push(ctx)
}

func (r *implReplicator) push(ctx context.Context) (PushResult, error) {
	var res PushResult

	pending, err := r.repo.ListPending(ctx, 0)
	if err != nil {
		return res, err
	}
	if len(pending) == 0 {
		r.setStatus(func(s *Status) { s.LastPushAt = r.now() })
		return res, nil
	}

	conflictDocs, err := r.remote.PushTasks(ctx, toDocuments(pending))
	if err != nil {
		return res, err
	}
	res.Pushed = len(pending)
	documentsPushed.Add(float64(len(pending)))

	masters := toTasks(conflictDocs)
	conflicted := make(map[string]struct{}, len(masters))
	for _, m := range masters {
		conflicted[m.ID] = struct{}{}
		res.Conflicts = append(res.Conflicts, m.ID)
	}

	accepted := make([]task.Task, 0, len(pending))
	pushedAt := make(map[string]time.Time, len(masters))
	for _, p := range pending {
		if _, ok := conflicted[p.ID]; ok {
			pushedAt[p.ID] = p.UpdatedAt
			continue
		}
		accepted = append(accepted, p)
	}
	if err := r.repo.MarkPushed(ctx, accepted); err != nil {
		return res, err
	}

	if len(masters) > 0 {
		pushConflicts.Add(float64(len(masters)))
		r.l.Infof(ctx, "sync.push: %d conflicts, applying master copies", len(masters))
		applied, err := r.repo.ApplyRemote(ctx, repository.ApplyRemoteOptions{
			Documents: masters,
			Force:     true,
			Pushed:    pushedAt,
		})
		if err != nil {
			return res, err
		}
		if len(applied.Skipped) > 0 {
			r.l.Infof(ctx, "sync.push: kept %d rows edited during push", len(applied.Skipped))
		}
		r.notify(ctx, applied.Applied)
	}

	r.setStatus(func(s *Status) { s.LastPushAt = r.now() })
	return res, nil
}
