package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationListAndRead(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := NewNotificationService(db)
	owner := testutil.CreateUser(t, db, "owner", false)
	fan := testutil.CreateUser(t, db, "fan", false)
	post := testutil.CreatePost(t, db, owner.ID)

	require.NoError(t, db.Create(&models.Notification{
		Type: models.NotificationLike, ActorID: fan.ID, RecipientID: owner.ID,
		ContentType: models.ContentPost, ContentID: &post.ID,
	}).Error)
	require.NoError(t, db.Create(&models.Notification{
		Type: models.NotificationFollow, ActorID: fan.ID, RecipientID: owner.ID,
	}).Error)

	views, total, err := svc.List(ctx, owner.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, views, 2)
	assert.Equal(t, "fan", views[0].Username)

	messages := []string{views[0].Message, views[1].Message}
	assert.ElementsMatch(t, []string{"liked your post", "started following you"}, messages)

	unread, err := svc.UnreadCount(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	// fan cannot touch the owner's notifications
	assert.ErrorIs(t, svc.MarkRead(ctx, fan.ID, views[0].ID), ErrNotificationNotFound)

	require.NoError(t, svc.MarkRead(ctx, owner.ID, views[0].ID))
	unread, err = svc.UnreadCount(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	require.NoError(t, svc.MarkAllRead(ctx, owner.ID))
	unread, err = svc.UnreadCount(ctx, owner.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestNotificationEmptyListIsNotNil(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "lonely", false)

	views, total, err := NewNotificationService(db).List(context.Background(), user.ID, 1, 20)
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
	assert.Zero(t, total)
}

func TestGroupedNotifications(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := NewNotificationService(db)
	now := time.Date(2024, 5, 20, 15, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	owner := testutil.CreateUser(t, db, "owner", false)
	fan := testutil.CreateUser(t, db, "fan", false)
	for _, at := range []time.Time{
		now.Add(-time.Hour),
		now.AddDate(0, 0, -1),
		now.AddDate(0, 0, -3),
		now.AddDate(0, 0, -30),
	} {
		require.NoError(t, db.Create(&models.Notification{
			Type: models.NotificationFollow, ActorID: fan.ID, RecipientID: owner.ID, CreatedAt: at,
		}).Error)
	}

	grouped, err := svc.Grouped(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, grouped.Today, 1)
	assert.Len(t, grouped.Yesterday, 1)
	assert.Len(t, grouped.ThisWeek, 1)
	assert.Len(t, grouped.Older, 1)
}
