package sync

import (
	"context"

	"vision/internal/task"
	"vision/internal/task/repository"
	"vision/pkg/visionapi"
)

// Pull fetches remote changes since the stored checkpoint and applies them.
// It keeps paging while the server returns full batches and the cursor advances.
func (r *implReplicator) Pull(ctx context.Context) (PullResult, error) {
	r.cycleMu.Lock()
	defer r.cycleMu.Unlock()
	return r.pull(ctx)
}

func (r *implReplicator) pull(ctx context.Context) (PullResult, error) {
	var res PullResult

	cp, err := r.repo.GetCheckpoint(ctx, r.cfg.Identifier)
	if err != nil {
		return res, err
	}
	res.Checkpoint = cp

	for page := 0; page < r.cfg.MaxPullPages; page++ {
		resp, err := r.remote.PullTasks(ctx, visionapi.PullRequest{
			MinUpdatedAt: cp.UpdatedAt,
			Limit:        r.cfg.BatchSize,
		})
		if err != nil {
			return res, err
		}
		if len(resp.Documents) == 0 {
			break
		}

		docs := toTasks(resp.Documents)
		res.Received += len(resp.Documents)
		documentsPulled.Add(float64(len(resp.Documents)))

		applied, err := r.repo.ApplyRemote(ctx, repository.ApplyRemoteOptions{Documents: docs})
		if err != nil {
			return res, err
		}
		res.Applied = append(res.Applied, applied.Applied...)
		res.Skipped = append(res.Skipped, applied.Skipped...)
		r.notify(ctx, applied.Applied)

		next := lastCheckpoint(docs)
		if resp.Checkpoint != nil {
			next = task.Checkpoint{ID: resp.Checkpoint.ID, UpdatedAt: resp.Checkpoint.UpdatedAt.Time()}
		}
		saved, err := r.repo.SaveCheckpoint(ctx, r.cfg.Identifier, next)
		if err != nil {
			return res, err
		}
		advanced := saved.After(cp)
		cp = saved
		res.Checkpoint = saved

		if !advanced || len(resp.Documents) < r.cfg.BatchSize {
			break
		}
	}

	r.setStatus(func(s *Status) {
		s.LastPullAt = r.now()
		s.Checkpoint = cp
	})
	return res, nil
}
