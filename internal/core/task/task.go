// Package task defines the task domain model for nag.
package task

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Priority classifies how urgent a task is, independent of its due date.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Label returns the user-facing form of the priority ("Low", "Medium", "High").
func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityLow:
		return "Low"
	default:
		return "Medium"
	}
}

// Validation and lookup errors returned by the task service.
var (
	ErrEmptyText     = errors.New("task text is empty")
	ErrDuplicateText = errors.New("task already exists")
	ErrNotFound      = errors.New("task not found")
)

// Task is the sole persisted entity: one item on the user's list.
type Task struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Priority  Priority   `json:"priority"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Completed bool       `json:"completed"`
	CreatedAt time.Time  `json:"created_at"`

	// LastNotifiedAt is written by the notification scheduler when an alert
	// for this task is delivered. Cleared whenever the task is edited.
	LastNotifiedAt *time.Time `json:"last_notified_at,omitempty"`
}

// Normalize returns the canonical form of task text used for the
// duplicate-text check: trimmed and case-folded.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Snapshot persists the full task list. Every save replaces the previous
// snapshot; Load returns tasks in the order they were saved.
type Snapshot interface {
	Save(ctx context.Context, tasks []Task) error
	Load(ctx context.Context) ([]Task, error)
}

// Stats summarizes completion progress across the whole list.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// Percent returns the completion percentage, rounded to the nearest integer.
// An empty list reports 0.
func (s Stats) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return int(float64(s.Completed)/float64(s.Total)*100 + 0.5)
}

// Summarize computes Stats over the given tasks.
func Summarize(tasks []Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	return s
}
