package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/colonyops/nag/internal/core/deadline"
	"github.com/colonyops/nag/internal/core/task"
)

// parsePriority validates a --priority flag value. Empty means "use the
// default".
func parsePriority(raw string) (task.Priority, error) {
	if raw == "" {
		return "", nil
	}

	p := task.Priority(strings.ToLower(raw))
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority %q (expected low, medium, or high)", raw)
	}
	return p, nil
}

// parseDue parses a --due flag value. Accepts YYYY-MM-DD plus the "today"
// and "tomorrow" shorthands. Empty means no due date.
func parseDue(raw string) (*time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return nil, nil
	case "today":
		d := deadline.Midnight(time.Now())
		return &d, nil
	case "tomorrow":
		d := deadline.Midnight(time.Now()).AddDate(0, 0, 1)
		return &d, nil
	}

	parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q (expected YYYY-MM-DD)", raw)
	}
	return &parsed, nil
}

// renderTask formats one task for terminal list output.
func renderTask(t task.Task, now time.Time) string {
	mark := " "
	if t.Completed {
		mark = "x"
	}

	line := fmt.Sprintf("[%s] %s  %-10s %s", mark, t.ID, t.Priority.Label(), t.Text)
	if t.DueDate != nil {
		line += fmt.Sprintf("  (%s)", deadline.FormatDue(t.DueDate, now))
		if !t.Completed && deadline.IsOverdue(t.DueDate, now) {
			line += " !"
		}
	}
	return line
}
