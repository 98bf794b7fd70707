package handlers

import (
	"errors"
	"net/http"

	"notesaas/internal/common"
	"notesaas/internal/models"
	"notesaas/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TenantHandlers handles tenant-related HTTP requests
type TenantHandlers struct {
	tenantService services.TenantService
	log           *zap.Logger
}

// NewTenantHandlers creates a new tenant handlers instance
func NewTenantHandlers(tenantService services.TenantService, log *zap.Logger) *TenantHandlers {
	return &TenantHandlers{
		tenantService: tenantService,
		log:           log,
	}
}

// Upgrade moves the caller's tenant from FREE to PRO. Admin only, and only
// for the tenant the caller belongs to.
func (h *TenantHandlers) Upgrade(c echo.Context) error {
	ctx := c.Request().Context()

	role, roleOK := common.GetUserRoleFromContext(ctx)
	tenantID, tenantOK := common.GetTenantIDFromContext(ctx)
	if !roleOK || !tenantOK {
		return common.SendValidationError(c, "Missing user context")
	}

	slug := c.Param("slug")
	if slug == "" {
		return common.SendValidationError(c, "Tenant slug is required")
	}

	_, err := h.tenantService.Upgrade(ctx, slug, tenantID, role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAdminRequired):
			return common.SendError(c, http.StatusForbidden, "Unauthorized. Admin role required.")
		case errors.Is(err, services.ErrTenantNotFound):
			return common.SendError(c, http.StatusNotFound, "Tenant not found")
		case errors.Is(err, services.ErrWrongTenant):
			return common.SendError(c, http.StatusForbidden, "Unauthorized. You can only upgrade your own tenant.")
		case errors.Is(err, services.ErrAlreadyUpgraded):
			return common.SendValidationError(c, "Tenant is already upgraded to PRO")
		default:
			h.log.Error("failed to upgrade tenant", zap.String("slug", slug), zap.Error(err))
			return common.SendServerError(c, "Failed to upgrade tenant")
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message":      "Tenant successfully upgraded to PRO",
		"subscription": models.SubscriptionPro,
	})
}
