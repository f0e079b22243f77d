package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/snapgram/backend/internal/auth"
	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	accounts *services.AccountService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(accounts *services.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// RegisterAuthRoutes registers the unauthenticated auth routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/firebase-login", h.FirebaseLogin)
}

// Register handles local user registration with email and password
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.accounts.Register(c.Request().Context(), req)
	if err != nil {
		return serviceError(err, "Registration failed")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Registration successful",
		"user":    user.ToCompact(),
	})
}

// Login authenticates with email and password and returns a bearer token
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.accounts.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
		case errors.Is(err, services.ErrInvalidCredentials):
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid password")
		}
		return serviceError(err, "Login failed")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Login successful",
		"token":   session.Token,
		"user":    session.User,
	})
}

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// FirebaseLogin verifies a Firebase ID token and issues a local JWT
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req FirebaseLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.accounts.FirebaseLogin(c.Request().Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, services.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Firebase ID token")
		}
		return serviceError(err, "Login failed")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"token":   session.Token,
		"user":    session.User,
	})
}

// Me returns the authenticated user
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.accounts.Me(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return serviceError(err, "Unable to load user")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user})
}
