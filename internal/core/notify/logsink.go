package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSink writes alerts to a zerolog logger. Used by the headless watch
// command where no interactive surface exists.
type LogSink struct {
	log zerolog.Logger
}

var _ Sink = (*LogSink)(nil)

// NewLogSink creates a sink that logs every alert at warn level.
func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log.With().Str("component", "alert-sink").Logger()}
}

// Dispatch logs the alert. Logging never fails, so this always reports
// delivered.
func (s *LogSink) Dispatch(_ context.Context, a Alert) bool {
	s.log.Warn().
		Str("task_id", a.TaskID).
		Str("level", string(a.Level)).
		Str("title", a.Title).
		Msg(a.Body)
	return true
}
