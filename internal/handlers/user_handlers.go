package handlers

import (
	"net/http"

	"notesaas/internal/common"
	"notesaas/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UserHandlers handles user profile HTTP requests
type UserHandlers struct {
	tenantService services.TenantService
	log           *zap.Logger
}

// NewUserHandlers creates a new user handlers instance
func NewUserHandlers(tenantService services.TenantService, log *zap.Logger) *UserHandlers {
	return &UserHandlers{
		tenantService: tenantService,
		log:           log,
	}
}

// Profile returns the authenticated caller's identity plus tenant summary.
// Everything but the tenant row comes straight from the request context the
// auth middleware populated.
func (h *UserHandlers) Profile(c echo.Context) error {
	ctx := c.Request().Context()

	userID, userOK := common.GetUserIDFromContext(ctx)
	tenantID, tenantOK := common.GetTenantIDFromContext(ctx)
	role, roleOK := common.GetUserRoleFromContext(ctx)
	email, emailOK := common.GetUserEmailFromContext(ctx)
	if !userOK || !tenantOK || !roleOK || !emailOK {
		return common.SendValidationError(c, "Missing user context")
	}

	tenant, err := h.tenantService.GetByID(ctx, tenantID)
	if err != nil {
		return common.SendError(c, http.StatusNotFound, "Tenant not found")
	}

	return c.JSON(http.StatusOK, UserInfo{
		ID:       userID.String(),
		Email:    email,
		TenantID: tenantID.String(),
		Role:     role,
		Tenant: TenantInfo{
			Name:         tenant.Name,
			Slug:         tenant.Slug,
			Subscription: tenant.Subscription,
		},
	})
}
