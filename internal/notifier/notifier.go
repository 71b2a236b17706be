// Package notifier holds the event handlers that turn committed domain
// events into notification rows. Handlers apply the business exclusions
// (no self-notification) and are idempotent by event id.
package notifier

import (
	"context"

	"github.com/rokasce/medium-clone-sub000/internal/domain"
	"github.com/rokasce/medium-clone-sub000/internal/metrics"
	"github.com/rokasce/medium-clone-sub000/internal/repository"
)

// Notice is the payload accepted by the notification sink.
type Notice struct {
	EventID        string
	RecipientID    string
	Type           string
	Title          string
	Message        string
	ActionURL      string
	EntityID       string
	ActorID        string
	ActorName      string
	ActorAvatarURL string
}

// Sink materializes notification rows. The only way handlers write.
type Sink interface {
	Create(ctx context.Context, n Notice) error
}

// ArticleSource resolves articles referenced by event payloads.
type ArticleSource interface {
	GetByID(ctx context.Context, id string) (*domain.Article, error)
}

// UserSource resolves actors and recipients.
type UserSource interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// RepositorySink writes notices through the notification repository.
type RepositorySink struct {
	notifications repository.NotificationRepository
}

// NewRepositorySink creates a RepositorySink.
func NewRepositorySink(notifications repository.NotificationRepository) *RepositorySink {
	return &RepositorySink{notifications: notifications}
}

// Create inserts the notification. Redelivered events hit the unique
// event_id index and insert nothing.
func (s *RepositorySink) Create(ctx context.Context, notice Notice) error {
	n := domain.NewNotification(notice.RecipientID, notice.Type, notice.Title, notice.Message, notice.EventID)
	if notice.ActionURL != "" {
		n.ActionURL = &notice.ActionURL
	}
	if notice.EntityID != "" {
		n.EntityID = &notice.EntityID
	}
	if notice.ActorID != "" {
		n.ActorID = &notice.ActorID
	}
	if err := s.notifications.Insert(ctx, n); err != nil {
		return err
	}
	metrics.NotificationsCreatedTotal.WithLabelValues(notice.Type).Inc()
	return nil
}
