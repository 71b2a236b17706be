package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rokasce/medium-clone-sub000/internal/domain"
)

func TestNotificationService_ListForUserClampsLimit(t *testing.T) {
	var gotLimit int
	var gotUnread bool
	repo := &fakeNotificationRepo{
		list: func(_ context.Context, recipientID string, unreadOnly bool, limit int) ([]domain.Notification, error) {
			gotLimit = limit
			gotUnread = unreadOnly
			return nil, nil
		},
	}
	svc := NewNotificationService(repo)

	_, err := svc.ListForUser(context.Background(), uuid.New().String(), true, 0)
	require.NoError(t, err)
	assert.Equal(t, 50, gotLimit, "zero limit falls back to the default")
	assert.True(t, gotUnread)

	_, err = svc.ListForUser(context.Background(), uuid.New().String(), false, 500)
	require.NoError(t, err)
	assert.Equal(t, 50, gotLimit, "oversized limit is clamped")

	_, err = svc.ListForUser(context.Background(), uuid.New().String(), false, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, gotLimit)
}

func TestNotificationService_MarkRead(t *testing.T) {
	userID := uuid.New().String()
	notificationID := uuid.New().String()
	var gotUser, gotID string
	repo := &fakeNotificationRepo{
		markRead: func(_ context.Context, recipientID, id string) error {
			gotUser, gotID = recipientID, id
			return nil
		},
	}
	svc := NewNotificationService(repo)

	require.NoError(t, svc.MarkRead(context.Background(), userID, notificationID))
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, notificationID, gotID)
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	repo := &fakeNotificationRepo{
		markAllRead: func(_ context.Context, recipientID string) (int64, error) {
			return 4, nil
		},
	}
	svc := NewNotificationService(repo)

	updated, err := svc.MarkAllRead(context.Background(), uuid.New().String())
	require.NoError(t, err)
	assert.Equal(t, int64(4), updated)
}
