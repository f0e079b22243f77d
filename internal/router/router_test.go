package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anonto42/snapgram/backend/internal/auth"
	"github.com/anonto42/snapgram/backend/internal/handlers"
	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/testutil"
	"github.com/anonto42/snapgram/backend/internal/validators"
	"github.com/anonto42/snapgram/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	e      *echo.Echo
	db     *gorm.DB
	tokens *auth.TokenManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.NewDB(t)
	uploads := t.TempDir()
	media, err := storage.NewLocalStore(uploads, "http://media.test")
	require.NoError(t, err)
	tokens := auth.NewTokenManager("router-test-secret", time.Hour)

	e := echo.New()
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler
	SetupRoutes(e, Dependencies{
		DB:            db,
		Tokens:        tokens,
		Media:         media,
		CoinsPerRupee: 10,
		UploadDir:     uploads,
	})
	return &testServer{e: e, db: db, tokens: tokens}
}

func (s *testServer) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := s.tokens.Issue(user.ID, user.Username, auth.RoleUser)
	require.NoError(t, err)
	return token
}

// do sends body as JSON and decodes the JSON response
func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return s.send(t, req, token)
}

func (s *testServer) send(t *testing.T, req *http.Request, token string) (int, map[string]any) {
	t.Helper()
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodPost, "/api/v1/auth/register", "", echo.Map{
		"username": "alice", "email": "alice@example.com", "password": "secret123", "full_name": "Alice",
	})
	require.Equal(t, http.StatusCreated, code, body)

	code, body = s.do(t, http.MethodPost, "/api/v1/auth/register", "", echo.Map{
		"username": "alice", "email": "other@example.com", "password": "secret123", "full_name": "Alice",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Username or email already exists", body["message"])

	code, body = s.do(t, http.MethodPost, "/api/v1/auth/login", "", echo.Map{"email": "alice@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	code, body = s.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "alice", body["user"].(map[string]any)["username"])
}

func TestLoginFailures(t *testing.T) {
	s := newTestServer(t)
	testutil.CreateUser(t, s.db, "bob", false)

	tests := []struct {
		name    string
		email   string
		message string
	}{
		{"wrong password", "bob@example.com", "Invalid password"},
		{"unknown email", "nobody@example.com", "User not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := s.do(t, http.MethodPost, "/api/v1/auth/login", "", echo.Map{"email": tt.email, "password": "nope"})
			assert.Equal(t, http.StatusUnauthorized, code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.message, body["message"])
		})
	}
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodGet, "/api/v1/notifications", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Access denied", body["message"])

	code, body = s.do(t, http.MethodGet, "/api/v1/notifications", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid token", body["message"])
}

func TestAdminRoutesNeedAdminRole(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateUser(t, s.db, "alice", false)

	code, body := s.do(t, http.MethodGet, "/api/v1/admin/stats", s.tokenFor(t, user), nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, false, body["success"])

	adminToken, err := s.tokens.Issue(1, "root", auth.RoleAdmin)
	require.NoError(t, err)
	code, _ = s.do(t, http.MethodGet, "/api/v1/admin/stats", adminToken, nil)
	assert.Equal(t, http.StatusOK, code)

	// admin tokens are not user sessions
	code, _ = s.do(t, http.MethodGet, "/api/v1/feed", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestPrivateFollowFlow(t *testing.T) {
	s := newTestServer(t)
	alice := testutil.CreateUser(t, s.db, "alice", false)
	bob := testutil.CreateUser(t, s.db, "bob", true)
	aliceToken, bobToken := s.tokenFor(t, alice), s.tokenFor(t, bob)

	code, body := s.do(t, http.MethodPost, "/api/v1/follow", aliceToken, echo.Map{"user_id": bob.ID})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Follow request sent", body["message"])

	code, body = s.do(t, http.MethodGet, "/api/v1/notifications", bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	notifications := body["notifications"].([]any)
	require.Len(t, notifications, 1)
	assert.Equal(t, "requested to follow you", notifications[0].(map[string]any)["message"])

	code, body = s.do(t, http.MethodPost, "/api/v1/follow/respond", bobToken, echo.Map{"user_id": alice.ID, "action": "accept"})
	require.Equal(t, http.StatusOK, code, body)

	code, body = s.do(t, http.MethodPost, "/api/v1/follow/respond", bobToken, echo.Map{"user_id": alice.ID, "action": "accept"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Follow request not found", body["message"])

	code, body = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", bob.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.RelationFollowing, body["data"].(map[string]any)["follow_status"])

	code, body = s.do(t, http.MethodPost, "/api/v1/follow", aliceToken, echo.Map{"user_id": alice.ID})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Cannot follow yourself", body["message"])

	code, body = s.do(t, http.MethodPost, "/api/v1/follow", aliceToken, echo.Map{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Incomplete data", body["message"])
}

func TestLikeToggle(t *testing.T) {
	s := newTestServer(t)
	owner := testutil.CreateUser(t, s.db, "owner", false)
	fan := testutil.CreateUser(t, s.db, "fan", false)
	post := testutil.CreatePost(t, s.db, owner.ID)
	fanToken := s.tokenFor(t, fan)

	code, body := s.do(t, http.MethodPost, "/api/v1/likes", fanToken, echo.Map{"post_id": post.ID})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Post liked", body["message"])
	assert.Equal(t, float64(1), body["likes_count"])

	code, body = s.do(t, http.MethodGet, "/api/v1/notifications", s.tokenFor(t, owner), nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body["notifications"], 1)

	code, body = s.do(t, http.MethodPost, "/api/v1/posts/like", fanToken, echo.Map{"post_id": post.ID})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Post unliked", body["message"])
	assert.Equal(t, int64(0), testutil.Count(t, s.db, &models.Notification{}, ""))

	code, body = s.do(t, http.MethodPost, "/api/v1/likes", fanToken, echo.Map{"post_id": 999})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Post not found", body["message"])

	code, _ = s.do(t, http.MethodPost, "/api/v1/likes", fanToken, echo.Map{})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestKindSpecificLikeRoutesRejectOtherKind(t *testing.T) {
	s := newTestServer(t)
	owner := testutil.CreateUser(t, s.db, "owner", false)
	fan := testutil.CreateUser(t, s.db, "fan", false)
	post := testutil.CreatePost(t, s.db, owner.ID)
	reel := testutil.CreateReel(t, s.db, owner.ID)
	fanToken := s.tokenFor(t, fan)

	code, body := s.do(t, http.MethodPost, "/api/v1/posts/like", fanToken, echo.Map{"reel_id": reel.ID})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Post ID is required", body["message"])

	code, body = s.do(t, http.MethodPost, "/api/v1/reels/like", fanToken, echo.Map{"post_id": post.ID})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Reel ID is required", body["message"])
	assert.Zero(t, testutil.Count(t, s.db, &models.Like{}, ""))

	code, body = s.do(t, http.MethodPost, "/api/v1/reels/like", fanToken, echo.Map{"reel_id": reel.ID})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Reel liked", body["message"])
}

func TestCreatePostMultipart(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateUser(t, s.db, "alice", false)
	token := s.tokenFor(t, user)

	newRequest := func(withImage bool) *http.Request {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		require.NoError(t, w.WriteField("content", "sunset"))
		if withImage {
			part, err := w.CreateFormFile("image", "sunset.JPG")
			require.NoError(t, err)
			_, err = part.Write([]byte("jpeg bytes"))
			require.NoError(t, err)
		}
		require.NoError(t, w.Close())
		req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", &buf)
		req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
		return req
	}

	code, body := s.send(t, newRequest(false), token)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Image is required", body["message"])

	code, body = s.send(t, newRequest(true), token)
	require.Equal(t, http.StatusCreated, code, body)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(1), data["streak_count"])
	assert.Contains(t, data["media_url"], "http://media.test/uploads/posts/")

	code, body = s.do(t, http.MethodGet, "/api/v1/feed", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["posts"], 1)
}

func TestErrorEnvelopeForUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	code, body := s.do(t, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, body["success"])
}
