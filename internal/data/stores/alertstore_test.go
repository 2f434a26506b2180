package stores

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/nag/internal/core/notify"
)

func TestAlertStore(t *testing.T) {
	ctx := context.Background()

	t.Run("save and list newest first", func(t *testing.T) {
		store := NewAlertStore(openTestDB(t))

		base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

		first := notify.Alert{
			TaskID:    "task-1",
			Level:     notify.LevelWarning,
			Title:     "Task Deadline: ship release",
			Body:      "Due in 5 hours. Priority: High",
			CreatedAt: base,
		}
		second := notify.Alert{
			TaskID:    "task-2",
			Level:     notify.LevelCritical,
			Title:     "Task Deadline: file taxes",
			Body:      "Overdue by 1 hour! Priority: Medium",
			CreatedAt: base.Add(time.Minute),
		}

		id1, err := store.Save(ctx, first)
		require.NoError(t, err)
		assert.Positive(t, id1)

		id2, err := store.Save(ctx, second)
		require.NoError(t, err)
		assert.Greater(t, id2, id1)

		alerts, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, alerts, 2)

		assert.Equal(t, "task-2", alerts[0].TaskID)
		assert.Equal(t, notify.LevelCritical, alerts[0].Level)
		assert.Equal(t, "task-1", alerts[1].TaskID)
		assert.Equal(t, "Task Deadline: ship release", alerts[1].Title)
		assert.True(t, alerts[1].CreatedAt.Equal(base))
	})

	t.Run("same timestamp falls back to insert order", func(t *testing.T) {
		store := NewAlertStore(openTestDB(t))

		at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
		for _, taskID := range []string{"a", "b", "c"} {
			_, err := store.Save(ctx, notify.Alert{TaskID: taskID, Level: notify.LevelWarning, CreatedAt: at})
			require.NoError(t, err)
		}

		alerts, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, alerts, 3)
		assert.Equal(t, "c", alerts[0].TaskID)
		assert.Equal(t, "a", alerts[2].TaskID)
	})

	t.Run("count and clear", func(t *testing.T) {
		store := NewAlertStore(openTestDB(t))

		count, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)

		_, err = store.Save(ctx, notify.Alert{TaskID: "t", Level: notify.LevelWarning, CreatedAt: time.Now()})
		require.NoError(t, err)

		count, err = store.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)

		require.NoError(t, store.Clear(ctx))

		count, err = store.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
