// Package nag contains the application service layer: the task list and
// the deadline notification scheduler.
package nag

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/nag/internal/core/deadline"
	"github.com/colonyops/nag/internal/core/task"
	"github.com/colonyops/nag/pkg/randid"
)

const idLength = 8

// ChangeListener is invoked after a user-facing mutation has been persisted.
type ChangeListener func()

// TaskService owns the authoritative in-memory task list. Every mutation
// writes the full snapshot through to the store before listeners run; the
// filter engine and scheduler only ever see derived copies.
type TaskService struct {
	snap task.Snapshot
	log  zerolog.Logger
	now  func() time.Time

	// mu guards list and listeners. The scheduler goroutine reads the list
	// and writes back notification timestamps while the UI loop mutates it.
	mu        sync.Mutex
	list      []task.Task
	listeners []ChangeListener
}

// NewTaskService creates a TaskService backed by the given snapshot store.
// Call Load before first use to rehydrate the previous session's list.
func NewTaskService(snap task.Snapshot, log zerolog.Logger) *TaskService {
	return &TaskService{
		snap: snap,
		log:  log.With().Str("component", "tasks").Logger(),
		now:  time.Now,
	}
}

// Load rehydrates the task list from the persisted snapshot.
func (s *TaskService) Load(ctx context.Context) error {
	tasks, err := s.snap.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.list = tasks
	s.mu.Unlock()
	return nil
}

// OnChange registers a listener invoked after every user-facing mutation.
// Listeners run after the snapshot write completes, outside the list lock.
func (s *TaskService) OnChange(fn ChangeListener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Create validates and adds a new task at the front of the list.
// Returns task.ErrEmptyText when the trimmed text is empty and
// task.ErrDuplicateText when an incomplete task already has the same
// case-insensitive text.
func (s *TaskService) Create(ctx context.Context, text string, priority task.Priority, due *time.Time) (task.Task, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return task.Task{}, task.ErrEmptyText
	}

	s.mu.Lock()

	normalized := task.Normalize(trimmed)
	for _, t := range s.list {
		if !t.Completed && task.Normalize(t.Text) == normalized {
			s.mu.Unlock()
			return task.Task{}, task.ErrDuplicateText
		}
	}

	if priority == "" {
		priority = task.PriorityMedium
	}

	t := task.Task{
		ID:        s.newID(),
		Text:      trimmed,
		Priority:  priority,
		DueDate:   normalizeDue(due),
		CreatedAt: s.now(),
	}

	s.list = append([]task.Task{t}, s.list...)
	s.persist(ctx)
	s.mu.Unlock()

	s.notifyChanged()
	return t, nil
}

// Update overwrites text, priority, and due date of an existing task and
// clears its notification timestamp so the scheduler treats it as fresh.
// Returns false when the id is unknown. The duplicate-text rule is not
// re-checked on update.
func (s *TaskService) Update(ctx context.Context, id, text string, priority task.Priority, due *time.Time) bool {
	s.mu.Lock()

	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}

	if priority == "" {
		priority = task.PriorityMedium
	}

	s.list[i].Text = strings.TrimSpace(text)
	s.list[i].Priority = priority
	s.list[i].DueDate = normalizeDue(due)
	s.list[i].LastNotifiedAt = nil

	s.persist(ctx)
	s.mu.Unlock()

	s.notifyChanged()
	return true
}

// Delete removes a task. Returns true iff something was removed; an unknown
// id is a silent no-op.
func (s *TaskService) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()

	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}

	s.list = append(s.list[:i], s.list[i+1:]...)
	s.persist(ctx)
	s.mu.Unlock()

	s.notifyChanged()
	return true
}

// ToggleCompletion flips a task's completed flag and returns the updated
// task for the caller to report.
func (s *TaskService) ToggleCompletion(ctx context.Context, id string) (task.Task, bool) {
	s.mu.Lock()

	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return task.Task{}, false
	}

	s.list[i].Completed = !s.list[i].Completed
	updated := s.list[i]
	s.persist(ctx)
	s.mu.Unlock()

	s.notifyChanged()
	return updated, true
}

// ClearCompleted removes all completed tasks in one batch with a single
// snapshot write. Returns the number removed; when nothing was completed
// no write occurs.
func (s *TaskService) ClearCompleted(ctx context.Context) int {
	s.mu.Lock()

	remaining := s.list[:0]
	removed := 0
	for _, t := range s.list {
		if t.Completed {
			removed++
			continue
		}
		remaining = append(remaining, t)
	}

	if removed == 0 {
		s.mu.Unlock()
		return 0
	}

	s.list = remaining
	s.persist(ctx)
	s.mu.Unlock()

	s.notifyChanged()
	return removed
}

// Import merges previously exported tasks into the list. Entries whose text
// duplicates an incomplete task (or is empty after trimming) are skipped;
// the rest keep their fields, get fresh IDs on collision, and land at the
// front in file order. One snapshot write covers the whole batch.
func (s *TaskService) Import(ctx context.Context, tasks []task.Task) int {
	s.mu.Lock()

	added := 0
	for i := len(tasks) - 1; i >= 0; i-- {
		t := tasks[i]
		t.Text = strings.TrimSpace(t.Text)
		if t.Text == "" {
			continue
		}

		normalized := task.Normalize(t.Text)
		dup := false
		for _, existing := range s.list {
			if !existing.Completed && task.Normalize(existing.Text) == normalized {
				dup = true
				break
			}
		}
		if dup {
			continue
		}

		if !t.Priority.IsValid() {
			t.Priority = task.PriorityMedium
		}
		if t.ID == "" || s.index(t.ID) >= 0 {
			t.ID = s.newID()
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = s.now()
		}
		t.DueDate = normalizeDue(t.DueDate)
		t.LastNotifiedAt = nil

		s.list = append([]task.Task{t}, s.list...)
		added++
	}

	if added == 0 {
		s.mu.Unlock()
		return 0
	}

	s.persist(ctx)
	s.mu.Unlock()

	s.notifyChanged()
	return added
}

// MarkNotified records that an alert was delivered for the task. This is
// the scheduler's only write-back; it persists but does not fire change
// listeners, which would re-trigger the scan that called it.
func (s *TaskService) MarkNotified(ctx context.Context, id string, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return false
	}

	s.list[i].LastNotifiedAt = &at
	s.persist(ctx)
	return true
}

// Get returns a task by id.
func (s *TaskService) Get(id string) (task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return task.Task{}, false
	}
	return s.list[i], true
}

// Tasks returns a copy of the ordered list, most recently created first.
func (s *TaskService) Tasks() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]task.Task, len(s.list))
	copy(out, s.list)
	return out
}

// Stats summarizes completion progress over the whole list.
func (s *TaskService) Stats() task.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return task.Summarize(s.list)
}

// index returns the position of id in the list, or -1. Caller holds mu.
func (s *TaskService) index(id string) int {
	for i, t := range s.list {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// newID generates an id not already present in the live list. Caller holds mu.
func (s *TaskService) newID() string {
	for {
		id := randid.Generate(idLength)
		if s.index(id) < 0 {
			return id
		}
	}
}

// persist writes the full snapshot through to the store. Failures are
// logged, not fatal: the in-memory list stays authoritative and the next
// mutation retries the write. Caller holds mu.
func (s *TaskService) persist(ctx context.Context) {
	if err := s.snap.Save(ctx, s.list); err != nil {
		s.log.Error().Err(err).Msg("failed to persist task snapshot")
	}
}

func (s *TaskService) notifyChanged() {
	s.mu.Lock()
	fns := append([]ChangeListener(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// normalizeDue pins a due date to the start of its calendar day, the
// instant deadlines are measured against.
func normalizeDue(due *time.Time) *time.Time {
	if due == nil {
		return nil
	}
	d := deadline.Midnight(*due)
	return &d
}
