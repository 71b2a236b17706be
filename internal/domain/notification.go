package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	NotificationClap      = "clap"
	NotificationComment   = "comment"
	NotificationReply     = "reply"
	NotificationPublished = "article_published"
)

// Notification is created only as a side effect of a dispatched event and
// never mutated afterwards except to mark it read. EventID ties it to the
// originating domain event; a unique index on it makes redelivery a no-op.
type Notification struct {
	ID          string     `json:"id"`
	RecipientID string     `json:"recipient_id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	ActionURL   *string    `json:"action_url,omitempty"`
	EntityID    *string    `json:"entity_id,omitempty"`
	ActorID     *string    `json:"actor_id,omitempty"`
	EventID     string     `json:"event_id"`
	Read        bool       `json:"read"`
	CreatedAt   time.Time  `json:"created_at"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
}

// NewNotification builds an unread notification.
func NewNotification(recipientID, notifType, title, message, eventID string) *Notification {
	return &Notification{
		ID:          uuid.New().String(),
		RecipientID: recipientID,
		Type:        notifType,
		Title:       title,
		Message:     message,
		EventID:     eventID,
		Read:        false,
		CreatedAt:   time.Now().UTC(),
	}
}

// MarkRead flags the notification as read. Idempotent.
func (n *Notification) MarkRead() {
	if n.Read {
		return
	}
	now := time.Now().UTC()
	n.Read = true
	n.ReadAt = &now
}
