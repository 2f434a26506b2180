package nag

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/nag/internal/core/config"
	"github.com/colonyops/nag/internal/core/deadline"
	"github.com/colonyops/nag/internal/core/notify"
	"github.com/colonyops/nag/internal/core/task"
)

// Active is one entry in the current set of active alerts: a task whose
// deadline classified into a non-empty tier on the last scan.
type Active struct {
	Task     task.Task
	Tier     deadline.Tier
	TimeLeft string
}

// Scheduler periodically scans the task list, classifies deadlines, and
// dispatches alerts to the sink. Repeat alerts for the same task are
// suppressed within the cooldown window; suppression governs dispatch only,
// the active set exposed for badges and panels is recomputed fresh on every
// scan.
type Scheduler struct {
	tasks   *TaskService
	sink    notify.Sink
	history notify.Store
	log     zerolog.Logger

	interval     time.Duration
	cooldown     time.Duration
	startupDelay time.Duration
	now          func() time.Time

	mu      sync.Mutex
	enabled bool
	active  []Active
	cancel  context.CancelFunc
	kick    chan struct{}
}

// NewScheduler creates a scheduler over the given task service. history may
// be nil when no alert log is wanted.
func NewScheduler(tasks *TaskService, sink notify.Sink, history notify.Store, cfg config.Notifications, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		tasks:        tasks,
		sink:         sink,
		history:      history,
		log:          log.With().Str("component", "scheduler").Logger(),
		interval:     cfg.Interval.Duration,
		cooldown:     cfg.Cooldown.Duration,
		startupDelay: cfg.StartupDelay.Duration,
		now:          time.Now,
		enabled:      cfg.EnabledOrDefault(),
		kick:         make(chan struct{}, 1),
	}
}

// Start launches the background scan loop: one scan shortly after startup,
// then one per interval, plus one whenever Kick signals a task mutation.
// Calling Start again cancels the previous loop first so scans never run
// doubled.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	go s.run(ctx)
}

// Stop cancels the background scan loop.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Kick requests an immediate re-scan, coalescing with any pending request.
// Wired to TaskService.OnChange so mutations that could change urgency are
// picked up without waiting for the next tick.
func (s *Scheduler) Kick() {
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

func (s *Scheduler) run(ctx context.Context) {
	startup := time.NewTimer(s.startupDelay)
	defer startup.Stop()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-startup.C:
			s.Scan(ctx)
		case <-ticker.C:
			s.Scan(ctx)
		case <-s.kick:
			s.Scan(ctx)
		}
	}
}

// Scan classifies every task as of now, refreshes the active set, and
// dispatches alerts that are not suppressed. Returns the fresh active set.
func (s *Scheduler) Scan(ctx context.Context) []Active {
	now := s.now()
	tasks := s.tasks.Tasks()

	active := make([]Active, 0)
	for _, t := range tasks {
		tier := deadline.Classify(t, now)
		if tier == deadline.TierNone {
			continue
		}

		active = append(active, Active{
			Task:     t,
			Tier:     tier,
			TimeLeft: deadline.TimeLeft(t, now),
		})

		s.dispatch(ctx, t, tier, now)
	}

	s.mu.Lock()
	s.active = active
	s.mu.Unlock()

	return append([]Active(nil), active...)
}

// dispatch sends one alert unless notifications are disabled or the task
// was alerted within the cooldown window. An undelivered alert leaves
// LastNotifiedAt unset so the next tick retries.
func (s *Scheduler) dispatch(ctx context.Context, t task.Task, tier deadline.Tier, now time.Time) {
	if !s.Enabled() {
		return
	}
	if t.LastNotifiedAt != nil && now.Sub(*t.LastNotifiedAt) < s.cooldown {
		return
	}

	alert := notify.Alert{
		TaskID:    t.ID,
		Level:     levelFor(tier),
		Title:     fmt.Sprintf("Task Deadline: %s", t.Text),
		Body:      deadline.Message(t, now),
		CreatedAt: now,
	}

	if !s.sinkRef().Dispatch(ctx, alert) {
		s.log.Debug().Str("task_id", t.ID).Msg("alert sink unavailable, will retry next scan")
		return
	}

	if s.history != nil {
		if _, err := s.history.Save(ctx, alert); err != nil {
			s.log.Error().Err(err).Str("task_id", t.ID).Msg("failed to record alert")
		}
	}

	s.tasks.MarkNotified(ctx, t.ID, now)
}

// Active returns the alert set from the most recent scan.
func (s *Scheduler) Active() []Active {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Active(nil), s.active...)
}

// Count returns the number of active alerts from the most recent scan.
func (s *Scheduler) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

// Enabled reports whether alert dispatch is on. Scanning and counting
// continue regardless.
func (s *Scheduler) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// SetEnabled toggles alert dispatch.
func (s *Scheduler) SetEnabled(v bool) {
	s.mu.Lock()
	s.enabled = v
	s.mu.Unlock()
}

// SetSink swaps the dispatch target. The TUI installs its toast sink here;
// headless commands keep the log sink wired at startup.
func (s *Scheduler) SetSink(sink notify.Sink) {
	s.mu.Lock()
	s.sink = sink
	s.mu.Unlock()
}

func (s *Scheduler) sinkRef() notify.Sink {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sink
}

// TestAlert pushes a synthetic alert through the sink so users can verify
// their notification setup. Reports whether the sink delivered it.
func (s *Scheduler) TestAlert(ctx context.Context) bool {
	now := s.now()
	return s.sinkRef().Dispatch(ctx, notify.Alert{
		TaskID:    "test",
		Level:     notify.LevelWarning,
		Title:     "Test Notification",
		Body:      "Deadline reminders are working. Priority: High",
		CreatedAt: now,
	})
}

func levelFor(tier deadline.Tier) notify.Level {
	if tier == deadline.TierCritical {
		return notify.LevelCritical
	}
	return notify.LevelWarning
}
