package handlers

import (
	"net/http"

	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	accounts *services.AccountService
	follows  *services.FollowService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(accounts *services.AccountService, follows *services.FollowService) *UserHandler {
	return &UserHandler{accounts: accounts, follows: follows}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.POST("/profile/photo", h.UpdatePhoto)
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/:id", h.GetUser)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// GetProfile returns the caller's profile with counters
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID := getUserIDFromContext(c)
	profile, err := h.accounts.Profile(c.Request().Context(), userID, userID)
	if err != nil {
		return serviceError(err, "Unable to load profile")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": profile})
}

// GetUser returns another user's profile and the caller's relationship to them
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseIDParam(c, "id", "Invalid user ID")
	if err != nil {
		return err
	}
	profile, err := h.accounts.Profile(c.Request().Context(), getUserIDFromContext(c), id)
	if err != nil {
		return serviceError(err, "Unable to load profile")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": profile})
}

// UpdateProfile changes the fields present in the body
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.accounts.UpdateProfile(c.Request().Context(), getUserIDFromContext(c), req)
	if err != nil {
		return serviceError(err, "Unable to update profile")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Profile updated", "data": user})
}

// UpdatePhoto replaces the profile photo from the multipart field "photo"
func (h *UserHandler) UpdatePhoto(c echo.Context) error {
	photo, closer, ok, err := formUpload(c, "photo")
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Photo is required")
	}
	defer closer.Close()

	url, err := h.accounts.UpdatePhoto(c.Request().Context(), getUserIDFromContext(c), photo)
	if err != nil {
		return serviceError(err, "Unable to update photo")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"profile_photo": url}})
}

// SearchUsers finds users by username or full name
func (h *UserHandler) SearchUsers(c echo.Context) error {
	results, err := h.accounts.Search(c.Request().Context(), getUserIDFromContext(c), c.QueryParam("q"))
	if err != nil {
		return serviceError(err, "Search failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "users": results})
}

func (h *UserHandler) GetFollowers(c echo.Context) error {
	id, err := parseIDParam(c, "id", "Invalid user ID")
	if err != nil {
		return err
	}
	users, err := h.follows.Followers(c.Request().Context(), id)
	if err != nil {
		return serviceError(err, "Unable to load followers")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "users": users})
}

func (h *UserHandler) GetFollowing(c echo.Context) error {
	id, err := parseIDParam(c, "id", "Invalid user ID")
	if err != nil {
		return err
	}
	users, err := h.follows.Following(c.Request().Context(), id)
	if err != nil {
		return serviceError(err, "Unable to load following")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "users": users})
}
