// Package checklist reads GitHub-flavoured markdown task lists.
package checklist

import (
	"regexp"
	"strings"
)

// Item is one "- [ ]" or "- [x]" line.
type Item struct {
	Checked bool
	Text    string
}

// Stats summarises a task list.
type Stats struct {
	Total     int
	Completed int
	Pending   int
}

var (
	// "  - [x] Task name" -> indent, state, text. "*" bullets are accepted as GitHub does.
	itemPattern = regexp.MustCompile(`(?m)^\s*[-*] \[([ xX])\] (.+)$`)
	fencedCode  = regexp.MustCompile("(?s)```.*?```")
	inlineCode  = regexp.MustCompile("`[^`]+`")
)

// sanitize drops code so example checkboxes inside code are not matched.
func sanitize(content string) string {
	return inlineCode.ReplaceAllString(fencedCode.ReplaceAllString(content, ""), "")
}

// Parse returns the checklist items of content in order.
func Parse(content string) []Item {
	matches := itemPattern.FindAllStringSubmatch(sanitize(content), -1)
	items := make([]Item, 0, len(matches))
	for _, m := range matches {
		text := strings.TrimSpace(m[2])
		if text == "" {
			continue
		}
		items = append(items, Item{Checked: strings.EqualFold(m[1], "x"), Text: text})
	}
	return items
}

// Pending returns the text of every unchecked item.
func Pending(content string) []string {
	var out []string
	for _, it := range Parse(content) {
		if !it.Checked {
			out = append(out, it.Text)
		}
	}
	return out
}

func GetStats(content string) Stats {
	var s Stats
	for _, it := range Parse(content) {
		s.Total++
		if it.Checked {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	return s
}
