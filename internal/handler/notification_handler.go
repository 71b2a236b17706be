package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rokasce/medium-clone-sub000/internal/domain"
	"github.com/rokasce/medium-clone-sub000/internal/service"
)

// NotificationHandler handles notification-related HTTP requests.
type NotificationHandler struct {
	notificationService service.NotificationServiceInterface
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService service.NotificationServiceInterface) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// NotificationResponse represents a notification in the API response.
type NotificationResponse struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	ActionURL *string `json:"action_url,omitempty"`
	EntityID  *string `json:"entity_id,omitempty"`
	ActorID   *string `json:"actor_id,omitempty"`
	Read      bool    `json:"read"`
	CreatedAt string  `json:"created_at"`
}

func toNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		ActionURL: n.ActionURL,
		EntityID:  n.EntityID,
		ActorID:   n.ActorID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt.Format(TimeFormat),
	}
}

// ListNotifications handles GET /api/v1/notifications
// Query params: unread=true to filter, limit to cap the page size.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	unreadOnly := c.Query("unread") == "true"

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	notifications, err := h.notificationService.ListForUser(c.Request.Context(), actor, unreadOnly, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]NotificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = toNotificationResponse(&notifications[i])
	}

	c.JSON(http.StatusOK, gin.H{"notifications": responses})
}

// MarkRead handles POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "read"})
}

// MarkAllRead handles POST /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	updated, err := h.notificationService.MarkAllRead(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
