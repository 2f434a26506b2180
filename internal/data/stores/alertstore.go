package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/nag/internal/core/notify"
	"github.com/colonyops/nag/internal/data/db"
)

// AlertStore implements notify.Store using SQLite.
type AlertStore struct {
	db *db.DB
}

var _ notify.Store = (*AlertStore)(nil)

// NewAlertStore creates a new SQLite-backed alert history store.
func NewAlertStore(db *db.DB) *AlertStore {
	return &AlertStore{db: db}
}

// Save persists a dispatched alert and returns its auto-generated ID.
func (s *AlertStore) Save(ctx context.Context, a notify.Alert) (int64, error) {
	res, err := s.db.Conn().ExecContext(ctx, `
		INSERT INTO alerts (task_id, level, title, body, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, a.TaskID, string(a.Level), a.Title, a.Body, a.CreatedAt.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("insert alert: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert alert id: %w", err)
	}

	return id, nil
}

// List returns all alerts ordered by newest first.
func (s *AlertStore) List(ctx context.Context) ([]notify.Alert, error) {
	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT id, task_id, level, title, body, created_at
		FROM alerts
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	alerts := make([]notify.Alert, 0)
	for rows.Next() {
		var (
			a         notify.Alert
			level     string
			createdAt int64
		)
		if err := rows.Scan(&a.ID, &a.TaskID, &level, &a.Title, &a.Body, &createdAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		a.Level = notify.Level(level)
		a.CreatedAt = time.Unix(0, createdAt)
		alerts = append(alerts, a)
	}

	return alerts, rows.Err()
}

// Clear deletes all alerts.
func (s *AlertStore) Clear(ctx context.Context) error {
	if _, err := s.db.Conn().ExecContext(ctx, `DELETE FROM alerts`); err != nil {
		return fmt.Errorf("clear alerts: %w", err)
	}
	return nil
}

// Count returns the total number of stored alerts.
func (s *AlertStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.Conn().QueryRowContext(ctx, `SELECT COUNT(*) FROM alerts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count alerts: %w", err)
	}
	return count, nil
}
