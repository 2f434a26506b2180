package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/colonyops/nag/internal/core/deadline"
	"github.com/colonyops/nag/internal/core/task"
)

// parseEntry splits one input line into task text, priority, and due date.
// Inline tokens may appear anywhere: !low, !medium, !high set the priority;
// @YYYY-MM-DD, @today, @tomorrow set the due date. Everything else is text.
func parseEntry(raw string, now time.Time) (string, task.Priority, *time.Time, error) {
	var (
		words    []string
		priority task.Priority
		due      *time.Time
	)

	for _, word := range strings.Fields(raw) {
		switch {
		case strings.HasPrefix(word, "!"):
			p := task.Priority(strings.ToLower(word[1:]))
			if !p.IsValid() {
				return "", "", nil, fmt.Errorf("unknown priority %q", word)
			}
			priority = p
		case strings.HasPrefix(word, "@"):
			d, err := parseDueToken(word[1:], now)
			if err != nil {
				return "", "", nil, err
			}
			due = d
		default:
			words = append(words, word)
		}
	}

	return strings.Join(words, " "), priority, due, nil
}

func parseDueToken(raw string, now time.Time) (*time.Time, error) {
	switch strings.ToLower(raw) {
	case "today":
		d := deadline.Midnight(now)
		return &d, nil
	case "tomorrow":
		d := deadline.Midnight(now).AddDate(0, 0, 1)
		return &d, nil
	}

	parsed, err := time.ParseInLocation("2006-01-02", raw, now.Location())
	if err != nil {
		return nil, fmt.Errorf("bad due date %q (want YYYY-MM-DD, today, or tomorrow)", raw)
	}
	return &parsed, nil
}

// renderEntry is the inverse of parseEntry, used to prefill the input when
// editing a task.
func renderEntry(t task.Task) string {
	line := t.Text
	if t.Priority != "" && t.Priority != task.PriorityMedium {
		line += " !" + string(t.Priority)
	}
	if t.DueDate != nil {
		line += " @" + t.DueDate.Format("2006-01-02")
	}
	return line
}
