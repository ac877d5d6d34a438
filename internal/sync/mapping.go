package sync

import (
	"vision/internal/task"
	"vision/pkg/visionapi"
)

func toDocument(t task.Task) visionapi.TaskDocument {
	return visionapi.TaskDocument{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Status:        string(t.Status),
		Source:        string(t.Source),
		EstimatedTime: t.EstimatedTime,
		PreparedItems: visionapi.StringList(t.PreparedItems),
		Position:      t.Position,
		Deleted:       t.Deleted,
		CreatedAt:     visionapi.Timestamp(t.CreatedAt),
		UpdatedAt:     visionapi.Timestamp(t.UpdatedAt),
	}
}

func toDocuments(tasks []task.Task) []visionapi.TaskDocument {
	out := make([]visionapi.TaskDocument, len(tasks))
	for i, t := range tasks {
		out[i] = toDocument(t)
	}
	return out
}

// toTask drops documents without an id; unknown enums fall back to defaults.
func toTasks(docs []visionapi.TaskDocument) []task.Task {
	out := make([]task.Task, 0, len(docs))
	for _, d := range docs {
		if d.ID == "" {
			continue
		}
		status := task.Status(d.Status)
		if !status.IsValid() {
			status = task.DefaultStatus
		}
		source := task.Source(d.Source)
		if !source.IsValid() {
			source = task.DefaultSource
		}
		out = append(out, task.Task{
			ID:            d.ID,
			Title:         d.Title,
			Description:   d.Description,
			Status:        status,
			Source:        source,
			EstimatedTime: d.EstimatedTime,
			PreparedItems: []string(d.PreparedItems),
			Position:      d.Position,
			Deleted:       d.Deleted,
			CreatedAt:     d.CreatedAt.Time(),
			UpdatedAt:     d.UpdatedAt.Time(),
		})
	}
	return out
}

// lastCheckpoint derives a cursor from the newest document in a batch.
func lastCheckpoint(tasks []task.Task) task.Checkpoint {
	var cp task.Checkpoint
	for _, t := range tasks {
		c := task.Checkpoint{ID: t.ID, UpdatedAt: t.UpdatedAt}
		if c.After(cp) {
			cp = c
		}
	}
	return cp
}
