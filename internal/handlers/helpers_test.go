package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anonto42/snapgram/backend/internal/services"
	"github.com/anonto42/snapgram/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceError(t *testing.T) {
	tests := []struct {
		err     error
		code    int
		message string
	}{
		{services.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{services.ErrSelfFollow, http.StatusBadRequest, "Cannot follow yourself"},
		{fmt.Errorf("wrapped: %w", services.ErrNoPendingRequest), http.StatusNotFound, "Follow request not found"},
		{services.ErrInsufficientCoins, http.StatusBadRequest, "Insufficient coins"},
		{services.ErrNotAllowedToMessage, http.StatusForbidden, "You must follow this user to send a message"},
		{storage.ErrUnavailable, http.StatusServiceUnavailable, "Service temporarily unavailable"},
		{errors.New("deadlock detected"), http.StatusInternalServerError, "Unable to process like"},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			var he *echo.HTTPError
			require.ErrorAs(t, serviceError(tt.err, "Unable to process like"), &he)
			assert.Equal(t, tt.code, he.Code)
			assert.Equal(t, tt.message, he.Message)
		})
	}
}

func TestHTTPErrorHandlerHidesInternalErrors(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	HTTPErrorHandler(errors.New("pq: connection refused"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Internal server error"}`, rec.Body.String())
}

func TestPaginationDefaults(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?page=0&limit=500", nil), httptest.NewRecorder())

	page, limit := pagination(c)
	assert.Equal(t, 1, page)
	assert.Equal(t, defaultPageSize, limit)

	meta := paginationMeta(2, 20, 45)
	assert.Equal(t, 3, meta["totalPages"])
	assert.Equal(t, true, meta["hasNextPage"])
	assert.Equal(t, true, meta["hasPreviousPage"])
}
