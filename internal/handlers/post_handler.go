package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/snapgram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles creation and lookup of posts and reels
type PostHandler struct {
	content *services.ContentService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(content *services.ContentService) *PostHandler {
	return &PostHandler{content: content}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.POST("/reels", h.CreateReel)
}

// CreatePost stores the multipart "image" and creates the post
func (h *PostHandler) CreatePost(c echo.Context) error {
	image, closer, ok, err := formUpload(c, "image")
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Image is required")
	}
	defer closer.Close()

	created, err := h.content.CreatePost(c.Request().Context(), getUserIDFromContext(c), c.FormValue("content"), image)
	if err != nil {
		return serviceError(err, "Unable to create post")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Post created successfully",
		"data":    created,
	})
}

// CreateReel stores the multipart "video" and creates the reel
func (h *PostHandler) CreateReel(c echo.Context) error {
	video, closer, ok, err := formUpload(c, "video")
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Video is required")
	}
	defer closer.Close()

	created, err := h.content.CreateReel(c.Request().Context(), getUserIDFromContext(c), c.FormValue("content"), video)
	if err != nil {
		return serviceError(err, "Unable to create reel")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Reel created successfully",
		"data":    created,
	})
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := parseIDParam(c, "id", "Invalid post ID")
	if err != nil {
		return err
	}

	post, err := h.content.GetPost(c.Request().Context(), getUserIDFromContext(c), postID)
	if err != nil {
		if errors.Is(err, services.ErrContentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return serviceError(err, "Unable to load post")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": post})
}
