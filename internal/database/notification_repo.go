package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/diegoclair/advice-rotation-bot/internal/domain/contract"
	"github.com/diegoclair/advice-rotation-bot/internal/domain/entity"
)

type notificationRepo struct {
	db     dbConn
	driver string
}

func newNotificationRepo(db dbConn, driver string) contract.NotificationRepo {
	return &notificationRepo{db: db, driver: driver}
}

const notificationColumns = `id, tag, title, body, item_id, scheduled_at, timezone, repeats, attempts, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNotification(row rowScanner) (*entity.NotificationJob, error) {
	job := &entity.NotificationJob{}
	var scheduledAt, createdAt int64

	err := row.Scan(
		&job.ID,
		&job.Tag,
		&job.Title,
		&job.Body,
		&job.ItemID,
		&scheduledAt,
		&job.Timezone,
		&job.Repeats,
		&job.Attempts,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	job.At = time.Unix(scheduledAt, 0).UTC()
	job.CreatedAt = time.Unix(createdAt, 0).UTC()
	return job, nil
}

// Upsert stores the job, replacing any pending job with the same id
func (r *notificationRepo) Upsert(ctx context.Context, job *entity.NotificationJob) error {
	query := `
		INSERT INTO pending_notifications (` + notificationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			tag = excluded.tag,
			title = excluded.title,
			body = excluded.body,
			item_id = excluded.item_id,
			scheduled_at = excluded.scheduled_at,
			timezone = excluded.timezone,
			repeats = excluded.repeats,
			attempts = 0
	`

	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, rebind(r.driver, query),
		job.ID,
		job.Tag,
		job.Title,
		job.Body,
		job.ItemID,
		job.At.Unix(),
		job.Timezone,
		job.Repeats,
		job.Attempts,
		job.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert notification %d: %w", job.ID, err)
	}

	return nil
}

func (r *notificationRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM pending_notifications WHERE id = ?`

	_, err := r.db.ExecContext(ctx, rebind(r.driver, query), id)
	if err != nil {
		return fmt.Errorf("failed to delete notification %d: %w", id, err)
	}

	return nil
}

func (r *notificationRepo) GetByID(ctx context.Context, id int64) (*entity.NotificationJob, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM pending_notifications
		WHERE id = ?
	`

	job, err := scanNotification(r.db.QueryRowContext(ctx, rebind(r.driver, query), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification %d: %w", id, err)
	}

	return job, nil
}

func (r *notificationRepo) List(ctx context.Context) ([]*entity.NotificationJob, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM pending_notifications
		ORDER BY scheduled_at, id
	`

	return r.list(ctx, query)
}

// ListDue returns the jobs scheduled at or before now
func (r *notificationRepo) ListDue(ctx context.Context, now time.Time) ([]*entity.NotificationJob, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM pending_notifications
		WHERE scheduled_at <= ?
		ORDER BY scheduled_at, id
	`

	return r.list(ctx, query, now.Unix())
}

func (r *notificationRepo) list(ctx context.Context, query string, args ...any) ([]*entity.NotificationJob, error) {
	rows, err := r.db.QueryContext(ctx, rebind(r.driver, query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var jobs []*entity.NotificationJob
	for rows.Next() {
		job, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}

	return jobs, nil
}

// Reschedule moves a job to a new instant and clears its attempt counter
func (r *notificationRepo) Reschedule(ctx context.Context, id int64, at time.Time) error {
	query := `
		UPDATE pending_notifications SET
			scheduled_at = ?,
			attempts = 0
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, rebind(r.driver, query), at.Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to reschedule notification %d: %w", id, err)
	}

	return nil
}

// IncrementAttempts bumps the delivery attempt counter and returns the new value
func (r *notificationRepo) IncrementAttempts(ctx context.Context, id int64) (int, error) {
	query := `UPDATE pending_notifications SET attempts = attempts + 1 WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, rebind(r.driver, query), id); err != nil {
		return 0, fmt.Errorf("failed to increment attempts for notification %d: %w", id, err)
	}

	var attempts int
	err := r.db.QueryRowContext(ctx, rebind(r.driver, `SELECT attempts FROM pending_notifications WHERE id = ?`), id).Scan(&attempts)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read attempts for notification %d: %w", id, err)
	}

	return attempts, nil
}
