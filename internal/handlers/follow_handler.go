package handlers

import (
	"net/http"

	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

const followFailure = "Unable to process request"

// FollowHandler handles follow requests and their responses
type FollowHandler struct {
	follows *services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(follows *services.FollowService) *FollowHandler {
	return &FollowHandler{follows: follows}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/follow", h.ToggleFollow)
	g.POST("/follow/respond", h.RespondToRequest)
	g.GET("/follow/requests", h.GetPendingRequests)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
	g.DELETE("/users/:id/follow-request", h.CancelRequest)
}

// ToggleFollow follows, requests to follow, or removes the existing edge
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	var req models.FollowRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.follows.RequestFollow(c.Request().Context(), getUserIDFromContext(c), req.UserID)
	if err != nil {
		return serviceError(err, followFailure)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"message":       result.Message,
		"follow_status": result.Status,
	})
}

// RespondToRequest accepts or declines a pending request addressed to the caller
func (h *FollowHandler) RespondToRequest(c echo.Context) error {
	var req models.RespondFollowRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	message, err := h.follows.RespondToRequest(c.Request().Context(), getUserIDFromContext(c), req.UserID, req.Action)
	if err != nil {
		return serviceError(err, followFailure)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": message})
}

// UnfollowUser removes an accepted edge
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	targetID, err := parseIDParam(c, "id", "Invalid user ID")
	if err != nil {
		return err
	}
	if err := h.follows.Unfollow(c.Request().Context(), getUserIDFromContext(c), targetID); err != nil {
		return serviceError(err, followFailure)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Unfollowed successfully"})
}

// CancelRequest withdraws a pending request
func (h *FollowHandler) CancelRequest(c echo.Context) error {
	targetID, err := parseIDParam(c, "id", "Invalid user ID")
	if err != nil {
		return err
	}
	if err := h.follows.CancelRequest(c.Request().Context(), getUserIDFromContext(c), targetID); err != nil {
		return serviceError(err, followFailure)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Follow request cancelled"})
}

// GetPendingRequests lists users waiting for the caller's approval
func (h *FollowHandler) GetPendingRequests(c echo.Context) error {
	users, err := h.follows.PendingRequests(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return serviceError(err, "Unable to load follow requests")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "requests": users})
}
