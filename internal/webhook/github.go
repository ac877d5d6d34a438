package webhook

import (
	"encoding/json"
	"fmt"
)

// ParseGitHubEvent decodes an issues or pull_request delivery.
// eventType is the X-GitHub-Event header.
func ParseGitHubEvent(eventType string, payload []byte) (Event, error) {
	switch eventType {
	case "issues":
		return parseIssueEvent(payload)
	case "pull_request":
		return parsePullRequestEvent(payload)
	}
	return Event{}, fmt.Errorf("%w: %q", ErrUnsupportedEvent, eventType)
}

type githubRepo struct {
	FullName string `json:"full_name"`
}

type githubUser struct {
	Login string `json:"login"`
}

func parseIssueEvent(payload []byte) (Event, error) {
	var event struct {
		Action string `json:"action"`
		Issue  struct {
			Number  int        `json:"number"`
			Title   string     `json:"title"`
			Body    string     `json:"body"`
			HTMLURL string     `json:"html_url"`
			User    githubUser `json:"user"`
		} `json:"issue"`
		Repository githubRepo `json:"repository"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		return Event{}, fmt.Errorf("failed to parse issue event: %w", err)
	}

	return Event{
		Kind:       KindIssue,
		Action:     event.Action,
		Repository: event.Repository.FullName,
		Number:     event.Issue.Number,
		Title:      event.Issue.Title,
		Body:       event.Issue.Body,
		URL:        event.Issue.HTMLURL,
		Author:     event.Issue.User.Login,
	}, nil
}

func parsePullRequestEvent(payload []byte) (Event, error) {
	var event struct {
		Action      string `json:"action"`
		Number      int    `json:"number"`
		PullRequest struct {
			Title   string     `json:"title"`
			Body    string     `json:"body"`
			HTMLURL string     `json:"html_url"`
			User    githubUser `json:"user"`
			Merged  bool       `json:"merged"`
		} `json:"pull_request"`
		Repository githubRepo `json:"repository"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		return Event{}, fmt.Errorf("failed to parse pull request event: %w", err)
	}

	// merged takes precedence over closed
	action := event.Action
	if action == "closed" && event.PullRequest.Merged {
		action = "merged"
	}

	return Event{
		Kind:       KindPullRequest,
		Action:     action,
		Repository: event.Repository.FullName,
		Number:     event.Number,
		Title:      event.PullRequest.Title,
		Body:       event.PullRequest.Body,
		URL:        event.PullRequest.HTMLURL,
		Author:     event.PullRequest.User.Login,
	}, nil
}
