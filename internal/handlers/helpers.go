package handlers

import (
	"errors"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/anonto42/snapgram/backend/internal/auth"
	"github.com/anonto42/snapgram/backend/internal/middleware"
	"github.com/anonto42/snapgram/backend/internal/repositories"
	"github.com/anonto42/snapgram/backend/internal/services"
	"github.com/anonto42/snapgram/backend/pkg/payment"
	"github.com/anonto42/snapgram/backend/pkg/storage"
	"github.com/labstack/echo/v4"
)

const (
	defaultPageSize = 20
	maxPageSize     = 50
)

// HTTPErrorHandler renders every error as {"success": false, "message": ...}
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	} else {
		log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, echo.Map{"success": false, "message": message})
	}
	if err != nil {
		log.Printf("Failed to write error response: %v", err)
	}
}

// serviceError maps a service error to an HTTP error. Anything unrecognised is
// logged and answered with fallback as a 500.
func serviceError(err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrSelfFollow):
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	case errors.Is(err, services.ErrNoPendingRequest):
		return echo.NewHTTPError(http.StatusNotFound, "Follow request not found")
	case errors.Is(err, services.ErrNotFollowing):
		return echo.NewHTTPError(http.StatusNotFound, "You are not following this user")
	case errors.Is(err, services.ErrContentNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Content not found")
	case errors.Is(err, services.ErrGiftNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Gift not found")
	case errors.Is(err, services.ErrInsufficientCoins):
		return echo.NewHTTPError(http.StatusBadRequest, "Insufficient coins")
	case errors.Is(err, services.ErrInvalidAmount):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid amount")
	case errors.Is(err, services.ErrPaymentVerification):
		return echo.NewHTTPError(http.StatusBadRequest, "Payment verification failed")
	case errors.Is(err, services.ErrAlreadyExists):
		return echo.NewHTTPError(http.StatusBadRequest, "Username or email already exists")
	case errors.Is(err, services.ErrPrivateAccount):
		return echo.NewHTTPError(http.StatusForbidden, "This account is private")
	case errors.Is(err, services.ErrInvalidAction):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid action")
	case errors.Is(err, services.ErrNotAllowedToMessage):
		return echo.NewHTTPError(http.StatusForbidden, "You must follow this user to send a message")
	case errors.Is(err, services.ErrNotificationNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
	case errors.Is(err, services.ErrMissingMedia):
		return echo.NewHTTPError(http.StatusBadRequest, "Media is required")
	case errors.Is(err, repositories.ErrStoryNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Story not found")
	case errors.Is(err, services.ErrFederatedUnavailable),
		errors.Is(err, storage.ErrUnavailable),
		errors.Is(err, payment.ErrUnavailable):
		log.Printf("%s: %v", fallback, err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Service temporarily unavailable")
	}
	log.Printf("%s: %v", fallback, err)
	return echo.NewHTTPError(http.StatusInternalServerError, fallback)
}

// getUserIDFromContext returns the authenticated user's ID, or 0
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get(middleware.ContextKey).(*auth.Claims)
	if !ok {
		return 0
	}
	return claims.UserID
}

// bindAndValidate binds the request body into req and runs the validator
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Incomplete data")
	}
	return nil
}

func parseIDParam(c echo.Context, name, message string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, message)
	}
	return uint(id), nil
}

func pagination(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}
	return page, limit
}

func paginationMeta(page, limit int, total int64) echo.Map {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return echo.Map{
		"currentPage":     page,
		"totalPages":      totalPages,
		"totalItems":      total,
		"itemsPerPage":    limit,
		"hasNextPage":     page < totalPages,
		"hasPreviousPage": page > 1,
	}
}

// formUpload opens the multipart file field as a service upload. ok is false
// when the field is absent.
func formUpload(c echo.Context, field string) (upload services.Upload, closer io.Closer, ok bool, err error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return services.Upload{}, nil, false, nil
		}
		return services.Upload{}, nil, false, echo.NewHTTPError(http.StatusBadRequest, "Invalid multipart form")
	}
	f, err := fh.Open()
	if err != nil {
		return services.Upload{}, nil, false, echo.NewHTTPError(http.StatusBadRequest, "Invalid upload")
	}
	return services.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Body:        f,
	}, f, true, nil
}
