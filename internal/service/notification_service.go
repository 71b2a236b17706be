package service

import (
	"context"

	"github.com/rokasce/medium-clone-sub000/internal/domain"
	"github.com/rokasce/medium-clone-sub000/internal/repository"
)

// defaultNotificationLimit caps unbounded list requests.
const defaultNotificationLimit = 50

// NotificationService exposes the notification inbox. Rows are created
// only by event handlers; the service just reads and marks them.
type NotificationService struct {
	notifications repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notifications repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]domain.Notification, error) {
	if limit <= 0 || limit > defaultNotificationLimit {
		limit = defaultNotificationLimit
	}
	return s.notifications.ListForRecipient(ctx, userID, unreadOnly, limit)
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.notifications.MarkRead(ctx, userID, notificationID)
}

// MarkAllRead marks all of the user's notifications as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.notifications.MarkAllRead(ctx, userID)
}
