package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anonto42/snapgram/backend/internal/auth"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, mw []echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := func(c echo.Context) error {
		claims := c.Get(ContextKey).(*auth.Claims)
		return c.String(http.StatusOK, claims.Username)
	}
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return rec, h(c)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T", err)
	return he.Code
}

func TestJWTAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	token, err := tokens.Issue(7, "carol", auth.RoleUser)
	require.NoError(t, err)

	rec, err := run(t, []echo.MiddlewareFunc{JWTAuthMiddleware(tokens)}, "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, "carol", rec.Body.String())

	for _, header := range []string{"", "Token " + token, "Bearer garbage"} {
		_, err = run(t, []echo.MiddlewareFunc{JWTAuthMiddleware(tokens)}, header)
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err), "header %q", header)
	}
}

func TestRequireRole(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	userToken, err := tokens.Issue(1, "dave", auth.RoleUser)
	require.NoError(t, err)
	adminToken, err := tokens.Issue(1, "root", auth.RoleAdmin)
	require.NoError(t, err)

	chain := []echo.MiddlewareFunc{JWTAuthMiddleware(tokens), RequireRole(auth.RoleAdmin)}

	_, err = run(t, chain, "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	rec, err := run(t, chain, "Bearer "+adminToken)
	require.NoError(t, err)
	assert.Equal(t, "root", rec.Body.String())
}
