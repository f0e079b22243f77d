package services

import (
	"context"
	"testing"

	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Each engagement writes its row and a notification together; a rejected
// notification insert must leave no trace of the first write.

func TestToggleLikeRollsBackWhenNotificationFails(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "owner", false)
	fan := testutil.CreateUser(t, db, "fan", false)
	post := testutil.CreatePost(t, db, owner.ID)
	reel := testutil.CreateReel(t, db, owner.ID)
	testutil.FailInserts(t, db, "notifications")

	svc := NewLikeService(db)
	_, err := svc.Toggle(context.Background(), fan.ID, models.ContentPost, post.ID)
	require.Error(t, err)
	_, err = svc.Toggle(context.Background(), fan.ID, models.ContentReel, reel.ID)
	require.Error(t, err)

	assert.Zero(t, testutil.Count(t, db, &models.Like{}, ""))
	assert.Zero(t, testutil.Count(t, db, &models.Notification{}, ""))
}

func TestRequestFollowRollsBackWhenNotificationFails(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", false)
	bob := testutil.CreateUser(t, db, "bob", false)
	carol := testutil.CreateUser(t, db, "carol", true)
	testutil.FailInserts(t, db, "notifications")

	svc := NewFollowService(db)
	_, err := svc.RequestFollow(context.Background(), alice.ID, bob.ID)
	require.Error(t, err)
	_, err = svc.RequestFollow(context.Background(), alice.ID, carol.ID)
	require.Error(t, err)

	assert.Zero(t, testutil.Count(t, db, &models.Follow{}, ""))
}

func TestAcceptRequestRollsBackWhenNotificationFails(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "owner", true)
	requester := testutil.CreateUser(t, db, "requester", false)
	testutil.Follow(t, db, requester.ID, owner.ID, models.FollowPending)
	testutil.FailInserts(t, db, "notifications")

	_, err := NewFollowService(db).RespondToRequest(ctx, owner.ID, requester.ID, "accept")
	require.Error(t, err)

	assert.Equal(t, int64(1), testutil.Count(t, db, &models.Follow{},
		"follower_id = ? AND following_id = ? AND status = ?", requester.ID, owner.ID, models.FollowPending))
	assert.Zero(t, testutil.Count(t, db, &models.Follow{}, "status = ?", models.FollowAccepted))
}

func TestAddCommentRollsBackWhenNotificationFails(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "owner", false)
	fan := testutil.CreateUser(t, db, "fan", false)
	post := testutil.CreatePost(t, db, owner.ID)
	testutil.FailInserts(t, db, "notifications")

	_, err := NewContentService(db, &memStore{}).AddComment(context.Background(), fan.ID, models.ContentPost, post.ID, "nice")
	require.Error(t, err)

	assert.Zero(t, testutil.Count(t, db, &models.Comment{}, ""))
}

func TestSendGiftRollsBackWhenNotificationFails(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	sender := testutil.CreateUser(t, db, "sender", false)
	receiver := testutil.CreateUser(t, db, "receiver", false)
	gift := &models.Gift{Name: "Rose", Icon: "rose", Price: 30}
	require.NoError(t, db.Create(gift).Error)
	giveCoins(t, db, sender.ID, 50)
	testutil.FailInserts(t, db, "notifications")

	svc := NewWalletService(db, nil, 10)
	_, err := svc.SendGift(ctx, sender.ID, receiver.ID, gift.ID)
	require.Error(t, err)

	balance, err := svc.Balance(ctx, sender.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), balance)
	assert.Zero(t, testutil.Count(t, db, &models.Message{}, ""))
	assert.Zero(t, testutil.Count(t, db, &models.WalletTransaction{}, ""))
}
