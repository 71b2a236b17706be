package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rokasce/medium-clone-sub000/internal/domain"
)

func notificationRouter(svc *fakeNotificationService) *gin.Engine {
	h := NewNotificationHandler(svc)
	router := gin.New()
	router.GET("/api/v1/notifications", h.ListNotifications)
	router.POST("/api/v1/notifications/read-all", h.MarkAllRead)
	router.POST("/api/v1/notifications/:id/read", h.MarkRead)
	return router
}

func TestNotificationHandler_ListNotifications(t *testing.T) {
	t.Run("lists with filters", func(t *testing.T) {
		actor := uuid.New().String()
		svc := &fakeNotificationService{
			listForUser: func(_ context.Context, userID string, unreadOnly bool, limit int) ([]domain.Notification, error) {
				assert.Equal(t, actor, userID)
				assert.True(t, unreadOnly)
				assert.Equal(t, 10, limit)
				return []domain.Notification{{
					ID:          uuid.New().String(),
					RecipientID: userID,
					Type:        "clap",
					Title:       "Someone clapped",
					Message:     "Someone added claps to your article",
					EventID:     uuid.New().String(),
					CreatedAt:   time.Now().UTC(),
				}}, nil
			},
		}
		router := notificationRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications?unread=true&limit=10", nil)
		req.Header.Set("X-User-ID", actor)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Notifications []NotificationResponse `json:"notifications"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Notifications, 1)
		assert.Equal(t, "clap", response.Notifications[0].Type)
		assert.False(t, response.Notifications[0].Read)
	})

	t.Run("missing identity header is unauthorized", func(t *testing.T) {
		router := notificationRouter(&fakeNotificationService{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-numeric limit is a bad request", func(t *testing.T) {
		router := notificationRouter(&fakeNotificationService{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications?limit=lots", nil)
		req.Header.Set("X-User-ID", uuid.New().String())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("zero limit is a bad request", func(t *testing.T) {
		router := notificationRouter(&fakeNotificationService{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications?limit=0", nil)
		req.Header.Set("X-User-ID", uuid.New().String())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	t.Run("marks one read", func(t *testing.T) {
		actor := uuid.New().String()
		notificationID := uuid.New().String()
		svc := &fakeNotificationService{
			markRead: func(_ context.Context, userID, gotID string) error {
				assert.Equal(t, actor, userID)
				assert.Equal(t, notificationID, gotID)
				return nil
			},
		}
		router := notificationRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/"+notificationID+"/read", nil)
		req.Header.Set("X-User-ID", actor)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"read"`)
	})

	t.Run("someone else's notification is not found", func(t *testing.T) {
		svc := &fakeNotificationService{
			markRead: func(_ context.Context, _, _ string) error {
				return domain.ErrNotificationNotFound
			},
		}
		router := notificationRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/"+uuid.New().String()+"/read", nil)
		req.Header.Set("X-User-ID", uuid.New().String())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestNotificationHandler_MarkAllRead(t *testing.T) {
	actor := uuid.New().String()
	svc := &fakeNotificationService{
		markAllRead: func(_ context.Context, userID string) (int64, error) {
			assert.Equal(t, actor, userID)
			return 4, nil
		},
	}
	router := notificationRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/read-all", nil)
	req.Header.Set("X-User-ID", actor)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(4), response["updated"])
}
