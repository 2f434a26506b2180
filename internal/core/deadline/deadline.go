// Package deadline classifies task due dates into urgency tiers and
// formats the user-facing reminder text for each tier.
package deadline

import (
	"fmt"
	"time"

	"github.com/colonyops/nag/internal/core/task"
)

// Tier is the urgency classification of a task's deadline at a point in time.
type Tier string

const (
	// TierNone marks tasks that are completed, have no due date, or whose
	// deadline passed more than the overdue grace window ago.
	TierNone Tier = ""
	// TierDueSoon marks tasks due within the warning window (24h).
	TierDueSoon Tier = "warning"
	// TierCritical marks tasks due within the hour or recently overdue.
	TierCritical Tier = "critical"
)

const (
	// criticalWindow is how close to the deadline a task becomes critical.
	criticalWindow = time.Hour
	// warnWindow is how far ahead the scheduler warns about a deadline.
	warnWindow = 24 * time.Hour
	// overdueGrace is how long past the deadline alerts keep firing.
	overdueGrace = 24 * time.Hour
)

// Classify assigns an urgency tier to t as of now. Completed tasks and
// tasks without a due date are never classified. Boundary values are
// inclusive: a task due exactly one hour from now is critical, and a task
// exactly 24 hours overdue is still critical.
func Classify(t task.Task, now time.Time) Tier {
	if t.Completed || t.DueDate == nil {
		return TierNone
	}

	until := t.DueDate.Sub(now)
	switch {
	case until > 0 && until <= criticalWindow:
		return TierCritical
	case until > criticalWindow && until <= warnWindow:
		return TierDueSoon
	case until <= 0 && until >= -overdueGrace:
		return TierCritical
	default:
		return TierNone
	}
}

// Message returns the alert body for t as of now, always ending with the
// task's priority. Overdue tasks report whole hours overdue (rounded up, so
// 30 minutes past due reads "Overdue by 1 hour").
func Message(t task.Task, now time.Time) string {
	if t.DueDate == nil {
		return fmt.Sprintf("Due %s. Priority: %s", FormatDue(t.DueDate, now), t.Priority.Label())
	}

	until := t.DueDate.Sub(now)
	switch {
	case until < 0:
		h := hoursOverdue(-until)
		return fmt.Sprintf("Overdue by %d %s! Priority: %s", h, plural(h, "hour"), t.Priority.Label())
	case until <= criticalWindow:
		return fmt.Sprintf("Due in less than 1 hour! Priority: %s", t.Priority.Label())
	case until <= warnWindow:
		h := hoursLeft(until)
		return fmt.Sprintf("Due in %d %s. Priority: %s", h, plural(h, "hour"), t.Priority.Label())
	default:
		return fmt.Sprintf("Due %s. Priority: %s", FormatDue(t.DueDate, now), t.Priority.Label())
	}
}

// TimeLeft returns the short form shown in the alerts panel, without the
// priority suffix.
func TimeLeft(t task.Task, now time.Time) string {
	if t.DueDate == nil {
		return FormatDue(nil, now)
	}

	until := t.DueDate.Sub(now)
	switch {
	case until < 0:
		h := hoursOverdue(-until)
		return fmt.Sprintf("%d %s overdue", h, plural(h, "hour"))
	case until <= criticalWindow:
		return "Due in less than 1 hour"
	default:
		h := hoursLeft(until)
		return fmt.Sprintf("Due in %d %s", h, plural(h, "hour"))
	}
}

// FormatDue renders a due date for list views: "No due date", "Today",
// "Tomorrow", or a short calendar date (with year only when it differs
// from the current one).
func FormatDue(due *time.Time, now time.Time) string {
	if due == nil {
		return "No due date"
	}

	day := midnight(*due)
	today := midnight(now)

	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(today.AddDate(0, 0, 1)):
		return "Tomorrow"
	case day.Year() != today.Year():
		return day.Format("Jan 2, 2006")
	default:
		return day.Format("Jan 2")
	}
}

// IsOverdue reports whether the due date's calendar day is before today.
func IsOverdue(due *time.Time, now time.Time) bool {
	if due == nil {
		return false
	}
	return midnight(*due).Before(midnight(now))
}

// IsDueSoon reports whether the deadline falls within the next 24 hours.
func IsDueSoon(due *time.Time, now time.Time) bool {
	if due == nil {
		return false
	}
	until := due.Sub(now)
	return until > 0 && until <= warnWindow
}

// Midnight returns the start of due's calendar day, the instant deadlines
// are measured against.
func Midnight(due time.Time) time.Time {
	return midnight(due)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func hoursLeft(until time.Duration) int {
	return int(until / time.Hour)
}

func hoursOverdue(past time.Duration) int {
	return int((past + time.Hour - time.Nanosecond) / time.Hour)
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
