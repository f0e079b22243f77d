package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likes *services.LikeService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likes *services.LikeService) *LikeHandler {
	return &LikeHandler{likes: likes}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/likes", h.ToggleLike)
	g.POST("/posts/like", h.toggleKind(models.ContentPost))
	g.POST("/reels/like", h.toggleKind(models.ContentReel))
}

// ToggleLike likes the post or reel named in the body, or removes the like
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	var req models.LikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	kind, contentID, ok := req.Target()
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Post ID or Reel ID is required")
	}
	return h.toggle(c, kind, contentID)
}

// toggleKind only accepts the id field of kind
func (h *LikeHandler) toggleKind(kind models.ContentKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.LikeRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
		}
		target, contentID, ok := req.Target()
		if !ok || target != kind {
			return echo.NewHTTPError(http.StatusBadRequest, kind.Label()+" ID is required")
		}
		return h.toggle(c, kind, contentID)
	}
}

func (h *LikeHandler) toggle(c echo.Context, kind models.ContentKind, contentID uint) error {
	result, err := h.likes.Toggle(c.Request().Context(), getUserIDFromContext(c), kind, contentID)
	if err != nil {
		if errors.Is(err, services.ErrContentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, kind.Label()+" not found")
		}
		return serviceError(err, "Unable to process like")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"message":     result.Message,
		"liked":       result.Liked,
		"likes_count": result.LikesCount,
	})
}
