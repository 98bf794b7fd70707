package handlers

import (
	"errors"
	"net/http"
	"strings"

	"notesaas/internal/common"
	"notesaas/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	authService   services.AuthService
	tenantService services.TenantService
	log           *zap.Logger
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(authService services.AuthService, tenantService services.TenantService, log *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		authService:   authService,
		tenantService: tenantService,
		log:           log,
	}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TenantInfo is the tenant summary embedded in login/profile responses.
type TenantInfo struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Subscription string `json:"subscription"`
}

// UserInfo is the user payload embedded in the login response.
type UserInfo struct {
	ID       string     `json:"id"`
	Email    string     `json:"email"`
	TenantID string     `json:"tenant_id"`
	Role     string     `json:"role"`
	Tenant   TenantInfo `json:"tenant"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refresh_token"`
	User         UserInfo `json:"user"`
}

// Login handles user login with email and password
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	if req.Email == "" || req.Password == "" {
		return common.SendValidationError(c, "Email and password are required")
	}

	tokens, user, err := h.authService.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRateLimited):
			return common.SendError(c, http.StatusTooManyRequests, "Too many login attempts. Try again later.")
		case errors.Is(err, services.ErrInvalidCredentials):
			return common.SendError(c, http.StatusUnauthorized, "Invalid credentials")
		default:
			h.log.Error("login failed", zap.String("email", req.Email), zap.Error(err))
			return common.SendServerError(c, "Internal server error")
		}
	}

	tenant, err := h.tenantService.GetByID(ctx, user.TenantID)
	if err != nil {
		return common.SendError(c, http.StatusNotFound, "User profile not found")
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token:        tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User: UserInfo{
			ID:       user.ID.String(),
			Email:    user.Email,
			TenantID: user.TenantID.String(),
			Role:     user.Role,
			Tenant: TenantInfo{
				Name:         tenant.Name,
				Slug:         tenant.Slug,
				Subscription: tenant.Subscription,
			},
		},
	})
}

// RefreshRequest represents the token refresh request payload
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh rotates a refresh token into a new token pair
func (h *AuthHandlers) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	if req.RefreshToken == "" {
		return common.SendValidationError(c, "Refresh token is required")
	}

	tokens, err := h.authService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return common.SendError(c, http.StatusUnauthorized, "Invalid or expired refresh token")
		}
		h.log.Error("token refresh failed", zap.Error(err))
		return common.SendServerError(c, "Internal server error")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"token":         tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

// Logout revokes the presented access token
func (h *AuthHandlers) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := common.GetUserIDFromContext(ctx); !ok {
		return common.SendUnauthorizedError(c)
	}

	authHeader := c.Request().Header.Get("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if authHeader == "" || tokenString == authHeader {
		return common.SendValidationError(c, "Authorization header missing")
	}

	if err := h.authService.RevokeToken(ctx, tokenString); err != nil {
		h.log.Error("token revocation failed", zap.Error(err))
		return common.SendServerError(c, "Failed to revoke token")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Logged out successfully",
	})
}
