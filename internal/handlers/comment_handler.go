package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles comments on posts and reels
type CommentHandler struct {
	content *services.ContentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(content *services.ContentService) *CommentHandler {
	return &CommentHandler{content: content}
}

// RegisterCommentRoutes registers comment routes for both content kinds
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.createComment(models.ContentPost))
	g.GET("/posts/:id/comments", h.listComments(models.ContentPost))
	g.POST("/reels/:id/comments", h.createComment(models.ContentReel))
	g.GET("/reels/:id/comments", h.listComments(models.ContentReel))
}

func (h *CommentHandler) createComment(kind models.ContentKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		contentID, err := parseIDParam(c, "id", "Invalid "+kind.Label()+" ID")
		if err != nil {
			return err
		}
		var req models.CreateCommentRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		comment, err := h.content.AddComment(c.Request().Context(), getUserIDFromContext(c), kind, contentID, req.Comment)
		if err != nil {
			if errors.Is(err, services.ErrContentNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, kind.Label()+" not found")
			}
			return serviceError(err, "Unable to add comment")
		}
		return c.JSON(http.StatusCreated, echo.Map{
			"success": true,
			"message": "Comment added",
			"data":    comment,
		})
	}
}

func (h *CommentHandler) listComments(kind models.ContentKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		contentID, err := parseIDParam(c, "id", "Invalid "+kind.Label()+" ID")
		if err != nil {
			return err
		}
		comments, err := h.content.Comments(c.Request().Context(), kind, contentID)
		if err != nil {
			if errors.Is(err, services.ErrContentNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, kind.Label()+" not found")
			}
			return serviceError(err, "Unable to load comments")
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "comments": comments})
	}
}
