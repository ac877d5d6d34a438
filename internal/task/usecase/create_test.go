package usecase

import (
	"context"
	"errors"
	"testing"

	"vision/internal/task"
)

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("applies defaults", func(t *testing.T) {
		uc, li := newTestUseCase(t)

		out, err := uc.Create(ctx, task.CreateInput{Title: "  Write report  "})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		got := out.Task
		if got.ID == "" || !out.Created {
			t.Fatalf("expected a new id, got %+v", out)
		}
		if got.Title != "Write report" {
			t.Errorf("expected trimmed title, got %q", got.Title)
		}
		if got.Status != task.StatusReady || got.Source != task.SourceManual || got.EstimatedTime != "15m" {
			t.Errorf("unexpected defaults: %+v", got)
		}
		if got.PreparedItems == nil || len(got.PreparedItems) != 0 {
			t.Errorf("expected empty prepared items, got %#v", got.PreparedItems)
		}
		if got.Deleted || got.Position != 0 {
			t.Errorf("expected visible task at position 0, got %+v", got)
		}
		if !got.CreatedAt.Equal(got.UpdatedAt) {
			t.Errorf("expected created_at == updated_at, got %v / %v", got.CreatedAt, got.UpdatedAt)
		}
		if li.count() != 1 {
			t.Errorf("expected one change notification, got %d", li.count())
		}
	})

	t.Run("appends after visible tasks", func(t *testing.T) {
		uc, _ := newTestUseCase(t)
		a, _ := uc.Create(ctx, task.CreateInput{Title: "a"})
		b, _ := uc.Create(ctx, task.CreateInput{Title: "b"})
		if b.Task.Position != 1 {
			t.Fatalf("expected position 1, got %d", b.Task.Position)
		}
		uc.Delete(ctx, b.Task.ID)
		c, _ := uc.Create(ctx, task.CreateInput{Title: "c"})
		if c.Task.Position != a.Task.Position+1 {
			t.Errorf("deleted tasks must not reserve positions, got %d", c.Task.Position)
		}
	})

	t.Run("explicit id is idempotent", func(t *testing.T) {
		uc, li := newTestUseCase(t)
		first, err := uc.Create(ctx, task.CreateInput{ID: "evt-1", Title: "Standup", Source: task.SourceCalendar})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		second, err := uc.Create(ctx, task.CreateInput{ID: "evt-1", Title: "Standup (moved)"})
		if err != nil {
			t.Fatalf("Create again: %v", err)
		}
		if second.Created || second.Task.Title != first.Task.Title {
			t.Errorf("expected existing task back, got %+v", second)
		}
		if li.count() != 1 {
			t.Errorf("expected a single notification, got %d", li.count())
		}
	})

	t.Run("validation", func(t *testing.T) {
		uc, _ := newTestUseCase(t)
		tests := []struct {
			name  string
			input task.CreateInput
			want  error
		}{
			{name: "empty title", input: task.CreateInput{Title: "   "}, want: task.ErrEmptyTitle},
			{name: "bad status", input: task.CreateInput{Title: "x", Status: "done"}, want: task.ErrInvalidStatus},
			{name: "bad source", input: task.CreateInput{Title: "x", Source: "jira"}, want: task.ErrInvalidSource},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := uc.Create(ctx, tt.input); !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
			})
		}
	})
}
