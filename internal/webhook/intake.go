package webhook

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"vision/internal/checklist"
	"vision/internal/task"
	pkgLog "vision/pkg/log"
)

// githubNamespace scopes task ids derived from repository/number pairs.
var githubNamespace = uuid.MustParse("5f2c9e0a-81d4-4b7a-b3c6-2e9d1a7f4c08")

const (
	maxDescriptionLen = 1000
	reviewEstimate    = "30m"
)

// Intake turns GitHub deliveries into tasks with source github.
type Intake struct {
	tasks task.UseCase
	l     pkgLog.Logger
}

func NewIntake(l pkgLog.Logger, tasks task.UseCase) *Intake {
	return &Intake{tasks: tasks, l: l}
}

// TaskID is the task id for an issue or pull request. Redelivery maps to the same task.
func TaskID(ev Event) string {
	name := fmt.Sprintf("github:%s:%s#%d", ev.Repository, ev.Kind, ev.Number)
	return uuid.NewSHA1(githubNamespace, []byte(name)).String()
}

// Apply creates, renames or completes the task behind ev.
func (in *Intake) Apply(ctx context.Context, ev Event) (ApplyOutput, error) {
	id := TaskID(ev)
	out := ApplyOutput{TaskID: id, Outcome: OutcomeIgnored}

	switch ev.Action {
	case "opened", "reopened", "assigned", "ready_for_review":
		res, err := in.tasks.Create(ctx, toCreateInput(id, ev))
		if err != nil {
			return out, err
		}
		out.Outcome = OutcomeCreated
		if !res.Created {
			out.Outcome = OutcomeExisted
			if ev.Action == "reopened" && res.Task.Status == task.StatusCompleted {
				status := task.StatusReady
				if _, err := in.tasks.Update(ctx, task.UpdateInput{ID: id, Status: &status}); err != nil {
					return out, ignoreGone(err)
				}
				out.Outcome = OutcomeUpdated
			}
		}

	case "edited":
		title := taskTitle(ev)
		if _, err := in.tasks.Update(ctx, task.UpdateInput{ID: id, Title: &title}); err != nil {
			return out, ignoreGone(err)
		}
		out.Outcome = OutcomeUpdated

	case "closed", "merged":
		if _, err := in.tasks.Complete(ctx, id); err != nil {
			return out, ignoreGone(err)
		}
		out.Outcome = OutcomeCompleted
	}

	in.l.Infof(ctx, "webhook.Apply: %s %s#%d %s -> %s", ev.Kind, ev.Repository, ev.Number, ev.Action, out.Outcome)
	return out, nil
}

// ignoreGone drops errors for tasks the user never imported or already deleted.
func ignoreGone(err error) error {
	if errors.Is(err, task.ErrTaskNotFound) || errors.Is(err, task.ErrTaskDeleted) {
		return nil
	}
	return err
}

func taskTitle(ev Event) string {
	prefix := "Issue"
	if ev.Kind == KindPullRequest {
		prefix = "Review"
	}
	return fmt.Sprintf("%s: %s (%s#%d)", prefix, ev.Title, ev.Repository, ev.Number)
}

func toCreateInput(id string, ev Event) task.CreateInput {
	desc := ev.Body
	if r := []rune(desc); len(r) > maxDescriptionLen {
		desc = string(r[:maxDescriptionLen]) + "…"
	}
	in := task.CreateInput{
		ID:          id,
		Title:       taskTitle(ev),
		Description: desc,
		Source:      task.SourceGitHub,
	}
	if ev.Kind == KindPullRequest {
		in.EstimatedTime = reviewEstimate
	}
	// The link first, then whatever is still unchecked in the body's task list.
	if ev.URL != "" {
		in.PreparedItems = append(in.PreparedItems, ev.URL)
	}
	in.PreparedItems = append(in.PreparedItems, checklist.Pending(ev.Body)...)
	return in
}
