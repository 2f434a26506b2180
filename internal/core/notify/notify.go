// Package notify defines the alert types and the delivery capability
// interface the notification scheduler dispatches through.
package notify

import (
	"context"
	"time"
)

// Level represents the severity of an alert.
type Level string

const (
	LevelInfo     Level = "info"
	LevelWarning  Level = "warning"
	LevelCritical Level = "critical"
)

// Alert is a single deadline reminder for a task.
type Alert struct {
	ID        int64     `json:"id"`
	TaskID    string    `json:"task_id"`
	Level     Level     `json:"level"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Sink delivers alerts to the user. Dispatch reports whether the alert was
// actually delivered; false means the channel is unavailable right now and
// the caller may retry on a later tick.
type Sink interface {
	Dispatch(ctx context.Context, a Alert) bool
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, a Alert) bool

// Dispatch calls fn.
func (fn SinkFunc) Dispatch(ctx context.Context, a Alert) bool {
	return fn(ctx, a)
}

// Store persists dispatched alerts for the history log.
type Store interface {
	Save(ctx context.Context, a Alert) (int64, error)
	List(ctx context.Context) ([]Alert, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

// Multi fans an alert out to several sinks. The alert counts as delivered
// when at least one sink accepted it.
func Multi(sinks ...Sink) Sink {
	return SinkFunc(func(ctx context.Context, a Alert) bool {
		delivered := false
		for _, s := range sinks {
			if s == nil {
				continue
			}
			if s.Dispatch(ctx, a) {
				delivered = true
			}
		}
		return delivered
	})
}
