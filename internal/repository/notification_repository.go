package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rokasce/medium-clone-sub000/internal/domain"
)

// PostgresNotificationRepository implements NotificationRepository using
// PostgreSQL.
type PostgresNotificationRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresNotificationRepository creates a new PostgresNotificationRepository.
func NewPostgresNotificationRepository(pool *pgxpool.Pool) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{pool: pool}
}

// Insert creates a notification row. The unique event_id index makes a
// redelivered event a silent no-op, so handlers stay idempotent under
// at-least-once delivery.
func (r *PostgresNotificationRepository) Insert(ctx context.Context, n *domain.Notification) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notifications
			(id, recipient_id, type, title, message, action_url, entity_id, actor_id, event_id, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (event_id) DO NOTHING
	`, n.ID, n.RecipientID, n.Type, n.Title, n.Message, n.ActionURL, n.EntityID,
		n.ActorID, n.EventID, n.Read, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListForRecipient returns the recipient's notifications, newest first.
func (r *PostgresNotificationRepository) ListForRecipient(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]domain.Notification, error) {
	query := `
		SELECT id, recipient_id, type, title, message, action_url, entity_id, actor_id,
		       event_id, read, created_at, read_at
		FROM notifications
		WHERE recipient_id = $1`
	if unreadOnly {
		query += ` AND NOT read`
	}
	query += ` ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, recipientID, limit)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Type, &n.Title, &n.Message,
			&n.ActionURL, &n.EntityID, &n.ActorID, &n.EventID, &n.Read,
			&n.CreatedAt, &n.ReadAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead flags one notification as read. Scoped to the recipient so a
// caller cannot mark someone else's notification.
func (r *PostgresNotificationRepository) MarkRead(ctx context.Context, recipientID, id string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE notifications
		SET read = true, read_at = now()
		WHERE id = $1 AND recipient_id = $2 AND NOT read
	`, id, recipientID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Already read or not owned; distinguish by existence.
		var exists bool
		if err := r.pool.QueryRow(ctx, `
			SELECT EXISTS (SELECT 1 FROM notifications WHERE id = $1 AND recipient_id = $2)
		`, id, recipientID).Scan(&exists); err != nil {
			return fmt.Errorf("check notification: %w", err)
		}
		if !exists {
			return domain.ErrNotificationNotFound
		}
	}
	return nil
}

// MarkAllRead flags every unread notification of the recipient and returns
// how many were affected.
func (r *PostgresNotificationRepository) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE notifications
		SET read = true, read_at = now()
		WHERE recipient_id = $1 AND NOT read
	`, recipientID)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	return tag.RowsAffected(), nil
}
