package deadline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/nag/internal/core/task"
)

func taskDue(due time.Time) task.Task {
	return task.Task{ID: "t1", Text: "ship release", Priority: task.PriorityHigh, DueDate: &due}
}

func TestClassify(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		until time.Duration
		want  Tier
	}{
		{"due in 30 minutes", 30 * time.Minute, TierCritical},
		{"due in exactly 1 hour", time.Hour, TierCritical},
		{"due just over 1 hour", time.Hour + time.Minute, TierDueSoon},
		{"due in 12 hours", 12 * time.Hour, TierDueSoon},
		{"due in exactly 24 hours", 24 * time.Hour, TierDueSoon},
		{"due in 25 hours", 25 * time.Hour, TierNone},
		{"due exactly now", 0, TierCritical},
		{"overdue by 2 hours", -2 * time.Hour, TierCritical},
		{"overdue by exactly 24 hours", -24 * time.Hour, TierCritical},
		{"overdue by more than 24 hours", -25 * time.Hour, TierNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tk := taskDue(now.Add(tc.until))
			assert.Equal(t, tc.want, Classify(tk, now))
		})
	}

	t.Run("completed tasks are never classified", func(t *testing.T) {
		tk := taskDue(now.Add(30 * time.Minute))
		tk.Completed = true
		assert.Equal(t, TierNone, Classify(tk, now))
	})

	t.Run("tasks without a due date are never classified", func(t *testing.T) {
		tk := task.Task{ID: "t2", Text: "someday", Priority: task.PriorityLow}
		assert.Equal(t, TierNone, Classify(tk, now))
	})
}

func TestMessage(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		until time.Duration
		want  string
	}{
		{"within the hour", 30 * time.Minute, "Due in less than 1 hour! Priority: High"},
		{"exactly one hour", time.Hour, "Due in less than 1 hour! Priority: High"},
		{"ninety minutes rounds down", 90 * time.Minute, "Due in 1 hour. Priority: High"},
		{"five hours", 5 * time.Hour, "Due in 5 hours. Priority: High"},
		{"thirty minutes overdue rounds up", -30 * time.Minute, "Overdue by 1 hour! Priority: High"},
		{"exactly one hour overdue", -time.Hour, "Overdue by 1 hour! Priority: High"},
		{"just past one hour overdue", -(time.Hour + time.Minute), "Overdue by 2 hours! Priority: High"},
		{"three hours overdue", -3 * time.Hour, "Overdue by 3 hours! Priority: High"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Message(taskDue(now.Add(tc.until)), now))
		})
	}

	t.Run("priority label varies", func(t *testing.T) {
		tk := taskDue(now.Add(30 * time.Minute))
		tk.Priority = task.PriorityLow
		assert.Equal(t, "Due in less than 1 hour! Priority: Low", Message(tk, now))
	})
}

func TestTimeLeft(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Due in less than 1 hour", TimeLeft(taskDue(now.Add(45*time.Minute)), now))
	assert.Equal(t, "Due in 6 hours", TimeLeft(taskDue(now.Add(6*time.Hour)), now))
	assert.Equal(t, "2 hours overdue", TimeLeft(taskDue(now.Add(-2*time.Hour)), now))
	assert.Equal(t, "1 hour overdue", TimeLeft(taskDue(now.Add(-10*time.Minute)), now))
}

func TestFormatDue(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	t.Run("no due date", func(t *testing.T) {
		assert.Equal(t, "No due date", FormatDue(nil, now))
	})

	t.Run("today", func(t *testing.T) {
		due := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, "Today", FormatDue(&due, now))
	})

	t.Run("tomorrow", func(t *testing.T) {
		due := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, "Tomorrow", FormatDue(&due, now))
	})

	t.Run("same year", func(t *testing.T) {
		due := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, "Jul 4", FormatDue(&due, now))
	})

	t.Run("different year", func(t *testing.T) {
		due := time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, "Jan 2, 2027", FormatDue(&due, now))
	})
}

func TestDueHelpers(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	t.Run("overdue is a calendar comparison", func(t *testing.T) {
		earlier := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		assert.False(t, IsOverdue(&earlier, now), "earlier today is not overdue")

		yesterday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
		assert.True(t, IsOverdue(&yesterday, now))
		assert.False(t, IsOverdue(nil, now))
	})

	t.Run("due soon is a 24h window", func(t *testing.T) {
		in12h := now.Add(12 * time.Hour)
		assert.True(t, IsDueSoon(&in12h, now))

		in25h := now.Add(25 * time.Hour)
		assert.False(t, IsDueSoon(&in25h, now))

		past := now.Add(-time.Hour)
		assert.False(t, IsDueSoon(&past, now))
	})

	t.Run("midnight truncates to the day", func(t *testing.T) {
		at := time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)
		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), Midnight(at))
	})
}
