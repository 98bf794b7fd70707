package services

import (
	"context"
	"errors"

	"notesaas/internal/models"
	"notesaas/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrAdminRequired   = errors.New("admin role required")
	ErrWrongTenant     = errors.New("tenant does not match caller")
	ErrAlreadyUpgraded = errors.New("tenant is already upgraded to PRO")
)

// TenantService handles tenant lookup and the role-gated subscription upgrade.
type TenantService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	Upgrade(ctx context.Context, slug string, callerTenantID uuid.UUID, callerRole string) (*models.Tenant, error)
}

type tenantService struct {
	tenantRepo repositories.TenantRepository
}

// NewTenantService creates a new TenantService instance
func NewTenantService(tenantRepo repositories.TenantRepository) TenantService {
	return &tenantService{tenantRepo: tenantRepo}
}

func (s *tenantService) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrTenantNotFound
	}
	return tenant, nil
}

// Upgrade moves a tenant from FREE to PRO. Checks run in a fixed order:
// caller role, slug resolution, tenant ownership, current tier. An admin of
// tenant A can never upgrade tenant B even with a correct slug.
func (s *tenantService) Upgrade(ctx context.Context, slug string, callerTenantID uuid.UUID, callerRole string) (*models.Tenant, error) {
	if callerRole != models.RoleAdmin {
		return nil, ErrAdminRequired
	}

	tenant, err := s.tenantRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, ErrTenantNotFound
	}

	if tenant.ID != callerTenantID {
		return nil, ErrWrongTenant
	}

	if tenant.Subscription == models.SubscriptionPro {
		return nil, ErrAlreadyUpgraded
	}

	if err := s.tenantRepo.UpdateSubscription(ctx, tenant.ID, models.SubscriptionPro); err != nil {
		return nil, err
	}

	tenant.Subscription = models.SubscriptionPro
	return tenant, nil
}
