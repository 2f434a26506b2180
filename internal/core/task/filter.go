package task

import (
	"sort"
	"strings"
)

// Status selects tasks by completion state.
type Status string

const (
	StatusAll       Status = "all"
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// IsValid reports whether s is a known status filter.
func (s Status) IsValid() bool {
	switch s {
	case StatusAll, StatusPending, StatusCompleted:
		return true
	}
	return false
}

// FilterOptions narrows a task list. Zero values match everything:
// empty Status and Priority behave like "all", empty Search matches all text.
type FilterOptions struct {
	Status   Status
	Priority Priority
	Search   string
}

// Filter returns the subset of tasks matching all three predicates,
// preserving input order. It never mutates its input.
func Filter(tasks []Task, opts FilterOptions) []Task {
	search := strings.ToLower(strings.TrimSpace(opts.Search))

	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !matchStatus(t, opts.Status) {
			continue
		}
		if opts.Priority != "" && opts.Priority != "all" && t.Priority != opts.Priority {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Text), search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchStatus(t Task, s Status) bool {
	switch s {
	case StatusPending:
		return !t.Completed
	case StatusCompleted:
		return t.Completed
	default:
		return true
	}
}

// focusLimit caps the focus list at the top few high-priority tasks.
const focusLimit = 3

// Focus returns up to three incomplete high-priority tasks ordered by due
// date, soonest first. Tasks without a due date sort last.
func Focus(tasks []Task) []Task {
	var high []Task
	for _, t := range tasks {
		if t.Priority == PriorityHigh && !t.Completed {
			high = append(high, t)
		}
	}

	sort.SliceStable(high, func(i, j int) bool {
		a, b := high[i].DueDate, high[j].DueDate
		switch {
		case a == nil && b == nil:
			return false
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})

	if len(high) > focusLimit {
		high = high[:focusLimit]
	}
	return high
}
