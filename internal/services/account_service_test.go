package services

import (
	"context"
	"errors"
	"testing"
	"time"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/anonto42/snapgram/backend/internal/auth"
	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAccountService(t *testing.T) (*AccountService, *gorm.DB, *auth.TokenManager) {
	t.Helper()
	db := testutil.NewDB(t)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAccountService(db, tokens, nil, &memStore{}), db, tokens
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _, tokens := newAccountService(t)

	user, err := svc.Register(ctx, models.RegisterRequest{
		Username: "  Alice ",
		Email:    "Alice@Example.com",
		Password: "secret123",
		FullName: "Alice A",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)

	_, err = svc.Register(ctx, models.RegisterRequest{Username: "ALICE", Email: "other@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	session, err := svc.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	claims, err := tokens.Parse(session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, auth.RoleUser, claims.Role)

	_, err = svc.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFirebaseLoginWithoutProvider(t *testing.T) {
	svc, _, _ := newAccountService(t)
	_, err := svc.FirebaseLogin(context.Background(), "token")
	assert.ErrorIs(t, err, ErrFederatedUnavailable)
}

type fakeVerifier struct {
	tokens map[string]*fbauth.Token
}

func (f fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*fbauth.Token, error) {
	token, ok := f.tokens[idToken]
	if !ok {
		return nil, errors.New("invalid id token")
	}
	return token, nil
}

func firebaseToken(uid, email string) *fbauth.Token {
	return &fbauth.Token{UID: uid, Claims: map[string]interface{}{"email": email, "name": "Fed User"}}
}

func TestFirebaseLogin(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	alice := testutil.CreateUser(t, db, "alice", false)
	bob := testutil.CreateUser(t, db, "bob", false)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", bob.ID).Update("is_active", false).Error)

	verifier := fakeVerifier{tokens: map[string]*fbauth.Token{
		"alice-token": firebaseToken("uid-alice", "Alice@Example.com"),
		"bob-token":   firebaseToken("uid-bob", "bob@example.com"),
		"new-token":   firebaseToken("uid-carol12345", "carol@example.com"),
	}}
	svc := NewAccountService(db, tokens, verifier, &memStore{})

	t.Run("links existing account by email", func(t *testing.T) {
		session, err := svc.FirebaseLogin(ctx, "alice-token")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, session.User.ID)

		var stored models.User
		require.NoError(t, db.First(&stored, alice.ID).Error)
		require.NotNil(t, stored.FirebaseUID)
		assert.Equal(t, "uid-alice", *stored.FirebaseUID)

		again, err := svc.FirebaseLogin(ctx, "alice-token")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, again.User.ID)
	})

	t.Run("creates a new account", func(t *testing.T) {
		session, err := svc.FirebaseLogin(ctx, "new-token")
		require.NoError(t, err)
		assert.Equal(t, "carol@example.com", session.User.Email)
		assert.Equal(t, "carol_uid-ca", session.User.Username)
		assert.True(t, session.User.IsActive)
		claims, err := tokens.Parse(session.Token)
		require.NoError(t, err)
		assert.Equal(t, session.User.ID, claims.UserID)
	})

	t.Run("rejects deactivated account", func(t *testing.T) {
		_, err := svc.FirebaseLogin(ctx, "bob-token")
		assert.ErrorIs(t, err, ErrUserNotFound)

		var stored models.User
		require.NoError(t, db.First(&stored, bob.ID).Error)
		assert.Nil(t, stored.FirebaseUID)
		assert.Equal(t, int64(1), testutil.Count(t, db, &models.User{}, "email = ?", "bob@example.com"))
	})

	t.Run("rejects unverifiable token", func(t *testing.T) {
		_, err := svc.FirebaseLogin(ctx, "forged")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestProfileCountsAndFollowStatus(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newAccountService(t)
	alice := testutil.CreateUser(t, db, "alice", false)
	bob := testutil.CreateUser(t, db, "bob", true)
	testutil.Follow(t, db, alice.ID, bob.ID, models.FollowPending)
	testutil.CreatePost(t, db, bob.ID)

	profile, err := svc.Profile(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), profile.PostsCount)
	assert.Zero(t, profile.FollowersCount)
	assert.Equal(t, models.RelationRequested, profile.FollowStatus)

	own, err := svc.Profile(ctx, bob.ID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, own.FollowStatus)

	_, err = svc.Profile(ctx, alice.ID, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfileOnlyTouchesGivenFields(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newAccountService(t)
	user := testutil.CreateUser(t, db, "alice", false)

	bio := "hi there"
	private := true
	updated, err := svc.UpdateProfile(ctx, user.ID, models.UpdateProfileRequest{Bio: &bio, IsPrivate: &private})
	require.NoError(t, err)
	assert.Equal(t, "hi there", updated.Bio)
	assert.True(t, updated.IsPrivate)
	assert.Equal(t, "alice", updated.FullName)
}

func TestSearchExcludesViewerAndInactive(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newAccountService(t)
	viewer := testutil.CreateUser(t, db, "sam", false)
	friend := testutil.CreateUser(t, db, "samantha", false)
	banned := testutil.CreateUser(t, db, "samuel", false)
	require.NoError(t, db.Model(banned).Update("is_active", false).Error)
	testutil.Follow(t, db, viewer.ID, friend.ID, models.FollowAccepted)

	results, err := svc.Search(ctx, viewer.ID, "SAM")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "samantha", results[0].Username)
	assert.Equal(t, models.RelationFollowing, results[0].FollowStatus)

	empty, err := svc.Search(ctx, viewer.ID, "   ")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newAccountService(t)
	viewer := testutil.CreateUser(t, db, "viewer", false)
	testutil.CreateUser(t, db, "sam_x", false)
	testutil.CreateUser(t, db, "samantha", false)

	results, err := svc.Search(ctx, viewer.ID, "_")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "sam_x", results[0].Username)

	results, err = svc.Search(ctx, viewer.ID, "%")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestUpdatePhoto(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newAccountService(t)
	user := testutil.CreateUser(t, db, "alice", false)

	url, err := svc.UpdatePhoto(ctx, user.ID, image())
	require.NoError(t, err)
	assert.Contains(t, url, "/profiles/")

	me, err := svc.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, url, me.ProfilePhoto)
}
