package middleware

import (
	"net/http"
	"strings"

	"notesaas/internal/common"
	"notesaas/internal/repositories"
	"notesaas/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const loginPath = "/login"

// exemptPath reports whether authentication is skipped for the given path:
// the health check, the login endpoint and page, the token refresh endpoint,
// metrics, static assets and anything with a file extension.
func exemptPath(path string) bool {
	switch path {
	case "/api/health", "/api/auth/login", "/api/auth/refresh", loginPath, "/metrics":
		return true
	}
	if strings.HasPrefix(path, "/api/health/") {
		return true
	}
	if strings.HasPrefix(path, "/static/") || strings.HasPrefix(path, "/assets/") {
		return true
	}
	return strings.Contains(path, ".")
}

// Auth is the single authentication enforcement point. It verifies the bearer
// token, re-resolves the caller's profile on every request and attaches
// user id, tenant id, role and email to the request context. Handlers read
// only that context and never re-verify identity.
func Auth(authSvc services.AuthService, userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if exemptPath(path) {
				return next(c)
			}

			authHeader := c.Request().Header.Get("Authorization")
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if authHeader == "" || tokenString == authHeader {
				return rejectUnauthenticated(c, path)
			}

			claims, err := authSvc.ValidateToken(c.Request().Context(), tokenString)
			if err != nil {
				return rejectUnauthenticated(c, path)
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return rejectUnauthenticated(c, path)
			}

			user, err := userRepo.GetByID(c.Request().Context(), userID)
			if err != nil {
				// Verified credential without a profile row is a 404 on every
				// path kind, API or not.
				return common.SendError(c, http.StatusNotFound, "Profile not found")
			}

			ctx := common.WithAuthContext(c.Request().Context(), user.ID, user.TenantID, user.Role, user.Email)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// rejectUnauthenticated redirects frontend paths to the login page and
// returns 401 JSON for API paths.
func rejectUnauthenticated(c echo.Context, path string) error {
	if !strings.HasPrefix(path, "/api/") {
		return c.Redirect(http.StatusTemporaryRedirect, loginPath)
	}
	return common.SendUnauthorizedError(c)
}
