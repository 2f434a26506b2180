// Package stores contains the SQLite-backed persistence for nag.
package stores

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/colonyops/nag/internal/core/task"
	"github.com/colonyops/nag/internal/data/db"
)

// TaskStore persists the task list as a full snapshot: every save replaces
// the previous contents in one transaction, and loads return tasks in the
// order they were saved.
type TaskStore struct {
	db *db.DB
}

var _ task.Snapshot = (*TaskStore)(nil)

// NewTaskStore creates a new SQLite-backed snapshot store.
func NewTaskStore(db *db.DB) *TaskStore {
	return &TaskStore{db: db}
}

// Save replaces the stored snapshot with the given task list.
func (s *TaskStore) Save(ctx context.Context, tasks []task.Task) error {
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
			return fmt.Errorf("clear tasks: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO tasks (id, position, text, priority, due_date, completed, created_at, last_notified_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for i, t := range tasks {
			_, err := stmt.ExecContext(ctx,
				t.ID,
				i,
				t.Text,
				string(t.Priority),
				toNullTime(t.DueDate),
				boolToInt(t.Completed),
				t.CreatedAt.UnixNano(),
				toNullTime(t.LastNotifiedAt),
			)
			if err != nil {
				return fmt.Errorf("insert task %s: %w", t.ID, err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	return nil
}

// Load returns the stored snapshot in saved order.
func (s *TaskStore) Load(ctx context.Context) ([]task.Task, error) {
	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT id, text, priority, due_date, completed, created_at, last_notified_at
		FROM tasks
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]task.Task, 0)
	for rows.Next() {
		var (
			t            task.Task
			priority     string
			due          sql.NullInt64
			completed    int
			createdAt    int64
			lastNotified sql.NullInt64
		)

		if err := rows.Scan(&t.ID, &t.Text, &priority, &due, &completed, &createdAt, &lastNotified); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}

		t.Priority = task.Priority(priority)
		t.DueDate = fromNullTime(due)
		t.Completed = completed == 1
		t.CreatedAt = time.Unix(0, createdAt)
		t.LastNotifiedAt = fromNullTime(lastNotified)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	return tasks, nil
}

func toNullTime(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixNano(), Valid: true}
}

func fromNullTime(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(0, v.Int64)
	return &t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
