package handlers

import (
	"io"
	"net/http"

	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// StoryHandler handles story-related HTTP requests
type StoryHandler struct {
	stories *services.StoryService
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(stories *services.StoryService) *StoryHandler {
	return &StoryHandler{stories: stories}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.GET("/stories", h.GetStories)
	g.GET("/stories/:id", h.GetStory)
	g.POST("/stories", h.CreateStory)
	g.POST("/stories/:id/seen", h.MarkAsSeen)
}

// GetStories returns the caller's story and those of accepted followees
func (h *StoryHandler) GetStories(c echo.Context) error {
	feed, err := h.stories.Feed(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return serviceError(err, "Unable to load stories")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": feed})
}

// GetStory returns a single story
func (h *StoryHandler) GetStory(c echo.Context) error {
	story, err := h.stories.GetStory(c.Request().Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		return serviceError(err, "Unable to load story")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"story": story}})
}

// CreateStory takes either a multipart "media" file or a media_url
func (h *StoryHandler) CreateStory(c echo.Context) error {
	var req models.CreateStoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	media, closer, ok, err := formUpload(c, "media")
	if err != nil {
		return err
	}
	var upload *services.Upload
	if ok {
		defer func(cl io.Closer) { _ = cl.Close() }(closer)
		upload = &media
	}

	story, err := h.stories.CreateStory(c.Request().Context(), getUserIDFromContext(c), req.Type, req.MediaURL, upload)
	if err != nil {
		return serviceError(err, "Unable to create story")
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"story": story}})
}

// MarkAsSeen records that the caller viewed the story
func (h *StoryHandler) MarkAsSeen(c echo.Context) error {
	if err := h.stories.MarkSeen(c.Request().Context(), getUserIDFromContext(c), c.Param("id")); err != nil {
		return serviceError(err, "Unable to mark story as seen")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Story marked as seen"})
}
