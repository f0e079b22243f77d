package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AdminHandler serves the admin console API
type AdminHandler struct {
	admins  *services.AdminService
	content *services.ContentService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(admins *services.AdminService, content *services.ContentService) *AdminHandler {
	return &AdminHandler{admins: admins, content: content}
}

// RegisterAdminAuthRoutes registers the unauthenticated admin login
func (h *AdminHandler) RegisterAdminAuthRoutes(g *echo.Group) {
	g.POST("/login", h.Login)
}

// RegisterAdminRoutes registers routes that need an admin token
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/stats", h.GetStats)
	g.GET("/users", h.GetUsers)
	g.PUT("/users/:id/toggle", h.ToggleUser)
	g.GET("/posts", h.GetPosts)
	g.DELETE("/posts/:id", h.DeletePost)
}

func (h *AdminHandler) Login(c echo.Context) error {
	var req models.AdminLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, admin, err := h.admins.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAdminNotFound):
			return echo.NewHTTPError(http.StatusUnauthorized, "Admin not found")
		case errors.Is(err, services.ErrInvalidCredentials):
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid password")
		}
		return serviceError(err, "Login failed")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "token": token, "admin": admin})
}

func (h *AdminHandler) GetStats(c echo.Context) error {
	stats, err := h.admins.Stats(c.Request().Context())
	if err != nil {
		return serviceError(err, "Unable to load stats")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": stats})
}

func (h *AdminHandler) GetUsers(c echo.Context) error {
	page, limit := pagination(c)
	users, total, err := h.admins.Users(c.Request().Context(), page, limit)
	if err != nil {
		return serviceError(err, "Unable to load users")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"users":   users,
		"meta":    paginationMeta(page, limit, total),
	})
}

// ToggleUser activates or deactivates an account
func (h *AdminHandler) ToggleUser(c echo.Context) error {
	id, err := parseIDParam(c, "id", "Invalid user ID")
	if err != nil {
		return err
	}
	active, err := h.admins.ToggleUser(c.Request().Context(), id)
	if err != nil {
		return serviceError(err, "Unable to update user")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "is_active": active})
}

func (h *AdminHandler) GetPosts(c echo.Context) error {
	page, limit := pagination(c)
	posts, total, err := h.content.AllPosts(c.Request().Context(), page, limit)
	if err != nil {
		return serviceError(err, "Unable to load posts")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"posts":   posts,
		"meta":    paginationMeta(page, limit, total),
	})
}

// DeletePost removes a post with its likes, comments and notifications
func (h *AdminHandler) DeletePost(c echo.Context) error {
	id, err := parseIDParam(c, "id", "Invalid post ID")
	if err != nil {
		return err
	}
	if err := h.content.DeletePost(c.Request().Context(), id); err != nil {
		if errors.Is(err, services.ErrContentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return serviceError(err, "Unable to delete post")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Post deleted"})
}
