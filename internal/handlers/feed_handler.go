package handlers

import (
	"net/http"

	"github.com/anonto42/snapgram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the home feed, the reels tab and profile grids
type FeedHandler struct {
	content *services.ContentService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(content *services.ContentService) *FeedHandler {
	return &FeedHandler{content: content}
}

// RegisterFeedRoutes registers feed routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/reels", h.GetReels)
	g.GET("/users/:id/posts", h.GetUserPosts)
}

// GetFeed returns the caller's and accepted followees' posts, newest first
func (h *FeedHandler) GetFeed(c echo.Context) error {
	posts, err := h.content.Feed(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return serviceError(err, "Unable to load feed")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "posts": posts})
}

// GetReels returns reels in random order
func (h *FeedHandler) GetReels(c echo.Context) error {
	reels, err := h.content.Reels(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return serviceError(err, "Unable to load reels")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "reels": reels})
}

// GetUserPosts returns a user's posts if the caller may see them
func (h *FeedHandler) GetUserPosts(c echo.Context) error {
	ownerID, err := parseIDParam(c, "id", "Invalid user ID")
	if err != nil {
		return err
	}
	posts, err := h.content.UserPosts(c.Request().Context(), getUserIDFromContext(c), ownerID)
	if err != nil {
		return serviceError(err, "Unable to load posts")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "posts": posts})
}
