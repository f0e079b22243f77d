package middleware

import (
	"net/http"

	"github.com/anonto42/snapgram/backend/internal/auth"
	"github.com/labstack/echo/v4"
)

// ContextKey under which verified claims are stored
const ContextKey = "user"

// JWTAuthMiddleware checks for a valid bearer token and stores its claims
func JWTAuthMiddleware(tokens *auth.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := auth.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				if err == auth.ErrMissingToken {
					return echo.NewHTTPError(http.StatusUnauthorized, "Access denied")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}

			claims, err := tokens.Parse(tokenString)
			if err != nil {
				if err == auth.ErrExpiredToken {
					return echo.NewHTTPError(http.StatusUnauthorized, "Token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set(ContextKey, claims)
			return next(c)
		}
	}
}

// RequireRole must run after JWTAuthMiddleware
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ContextKey).(*auth.Claims)
			if !ok || claims.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
			}
			return next(c)
		}
	}
}
