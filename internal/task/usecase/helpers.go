package usecase

import (
	"errors"
	"strings"

	"vision/internal/task"
	repo "vision/internal/task/repository"
)

// coalesce returns newVal unless it is blank.
func coalesce(newVal, existing string) string {
	if strings.TrimSpace(newVal) != "" {
		return newVal
	}
	return existing
}

// cleanItems trims entries and drops empty ones. The result is never nil.
func cleanItems(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}

// mapRepoError turns storage sentinels into domain errors.
func mapRepoError(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return task.ErrTaskNotFound
	}
	return err
}
