// Package middleware provides the middleware for the Echo instance
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/lostnlocal/lostnlocalapi/internal/models"
	"github.com/lostnlocal/lostnlocalapi/internal/service"
	"github.com/lostnlocal/lostnlocalapi/pkg/utils/response"
	"github.com/lostnlocal/lostnlocalapi/pkg/utils/zaplogger"
)

const (
	// ContextUserKey holds the authenticated *models.UserModel
	ContextUserKey = "user"
	// ContextTokenKey holds the raw bearer token
	ContextTokenKey = "token"
)

// BearerToken extracts the token from the Authorization header,
// empty when the header is missing or malformed
func BearerToken(c echo.Context) string {
	auth := c.Request().Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Authenticator resolves a bearer token to an active user
type Authenticator interface {
	Authenticate(token string) (*models.UserModel, error)
}

// AuthMiddleware rejects requests without a valid bearer token backed by
// an active session, and stashes the resolved user in the context
func AuthMiddleware(authService Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := BearerToken(c)
			if token == "" {
				return response.ErrorResponse(c, http.StatusUnauthorized, "Access token required")
			}

			user, err := authService.Authenticate(token)
			if err != nil {
				if err == service.ErrInvalidToken {
					return response.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
				}
				zaplogger.Error("authentication failure", zaplogger.Fields{"error": err.Error()})
				return response.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
			}

			c.Set(ContextUserKey, user)
			c.Set(ContextTokenKey, token)
			return next(c)
		}
	}
}

// OptionalAuthMiddleware resolves a bearer token when one is presented but
// never rejects the request, used by the contact endpoint
func OptionalAuthMiddleware(authService Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := BearerToken(c)
			if token != "" {
				if user, err := authService.Authenticate(token); err == nil {
					c.Set(ContextUserKey, user)
					c.Set(ContextTokenKey, token)
				}
			}
			return next(c)
		}
	}
}

// AdminMiddleware rejects authenticated users without the admin flag.
// Must run after AuthMiddleware.
func AdminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := UserFromContext(c)
			if user == nil {
				return response.ErrorResponse(c, http.StatusUnauthorized, "Access token required")
			}
			if !user.IsAdmin {
				return response.ErrorResponse(c, http.StatusForbidden, "Admin access required")
			}
			return next(c)
		}
	}
}

// UserFromContext returns the authenticated user, nil when absent
func UserFromContext(c echo.Context) *models.UserModel {
	user, ok := c.Get(ContextUserKey).(*models.UserModel)
	if !ok {
		return nil
	}
	return user
}

// TokenFromContext returns the raw bearer token, empty when absent
func TokenFromContext(c echo.Context) string {
	token, ok := c.Get(ContextTokenKey).(string)
	if !ok {
		return ""
	}
	return token
}
