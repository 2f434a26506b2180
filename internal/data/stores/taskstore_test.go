package stores

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/nag/internal/core/task"
	"github.com/colonyops/nag/internal/data/db"
)

func openTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	return database
}

func TestTaskStore(t *testing.T) {
	ctx := context.Background()

	t.Run("save and load round trip", func(t *testing.T) {
		store := NewTaskStore(openTestDB(t))

		due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		notified := time.Date(2026, 3, 31, 9, 15, 0, 0, time.UTC)
		created := time.Date(2026, 3, 30, 18, 0, 0, 0, time.UTC)

		tasks := []task.Task{
			{
				ID:             "abc123",
				Text:           "File quarterly report",
				Priority:       task.PriorityHigh,
				DueDate:        &due,
				CreatedAt:      created,
				LastNotifiedAt: &notified,
			},
			{
				ID:        "def456",
				Text:      "Water plants",
				Priority:  task.PriorityLow,
				Completed: true,
				CreatedAt: created.Add(-time.Hour),
			},
		}

		require.NoError(t, store.Save(ctx, tasks))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, "abc123", got[0].ID)
		assert.Equal(t, "File quarterly report", got[0].Text)
		assert.Equal(t, task.PriorityHigh, got[0].Priority)
		require.NotNil(t, got[0].DueDate)
		assert.True(t, got[0].DueDate.Equal(due))
		require.NotNil(t, got[0].LastNotifiedAt)
		assert.True(t, got[0].LastNotifiedAt.Equal(notified))
		assert.False(t, got[0].Completed)
		assert.True(t, got[0].CreatedAt.Equal(created))

		assert.Equal(t, "def456", got[1].ID)
		assert.True(t, got[1].Completed)
		assert.Nil(t, got[1].DueDate)
		assert.Nil(t, got[1].LastNotifiedAt)
	})

	t.Run("save replaces the previous snapshot", func(t *testing.T) {
		store := NewTaskStore(openTestDB(t))

		first := []task.Task{
			{ID: "a", Text: "one", Priority: task.PriorityMedium, CreatedAt: time.Now()},
			{ID: "b", Text: "two", Priority: task.PriorityMedium, CreatedAt: time.Now()},
		}
		require.NoError(t, store.Save(ctx, first))

		second := []task.Task{
			{ID: "c", Text: "three", Priority: task.PriorityMedium, CreatedAt: time.Now()},
		}
		require.NoError(t, store.Save(ctx, second))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "c", got[0].ID)
	})

	t.Run("load preserves saved order", func(t *testing.T) {
		store := NewTaskStore(openTestDB(t))

		tasks := []task.Task{
			{ID: "newest", Text: "newest", Priority: task.PriorityMedium, CreatedAt: time.Now()},
			{ID: "middle", Text: "middle", Priority: task.PriorityMedium, CreatedAt: time.Now()},
			{ID: "oldest", Text: "oldest", Priority: task.PriorityMedium, CreatedAt: time.Now()},
		}
		require.NoError(t, store.Save(ctx, tasks))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "newest", got[0].ID)
		assert.Equal(t, "middle", got[1].ID)
		assert.Equal(t, "oldest", got[2].ID)
	})

	t.Run("empty snapshot", func(t *testing.T) {
		store := NewTaskStore(openTestDB(t))

		require.NoError(t, store.Save(ctx, nil))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
