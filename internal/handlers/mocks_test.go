package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"notesaas/internal/common"
	"notesaas/internal/models"
	"notesaas/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) List(ctx context.Context, tenantID uuid.UUID) ([]*models.Note, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Note), args.Error(1)
}

func (m *MockNoteService) Create(ctx context.Context, tenantID, authorID uuid.UUID, title, content string) (*models.Note, error) {
	args := m.Called(ctx, tenantID, authorID, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockNoteService) Delete(ctx context.Context, tenantID uuid.UUID, noteID int64) error {
	args := m.Called(ctx, tenantID, noteID)
	return args.Error(0)
}

type MockTenantService struct {
	mock.Mock
}

func (m *MockTenantService) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantService) Upgrade(ctx context.Context, slug string, callerTenantID uuid.UUID, callerRole string) (*models.Tenant, error) {
	args := m.Called(ctx, slug, callerTenantID, callerRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportTenantNotes(ctx context.Context, tenantID uuid.UUID, slug string) (*services.ExportResult, error) {
	args := m.Called(ctx, tenantID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ExportResult), args.Error(1)
}

type authCtx struct {
	userID   uuid.UUID
	tenantID uuid.UUID
	role     string
	email    string
}

// newRequestContext builds an echo.Context the way the auth middleware leaves
// it: authenticated values already attached to the request context. A nil
// auth simulates a request that bypassed the gate.
func newRequestContext(e *echo.Echo, method, target, body string, auth *authCtx) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	if auth != nil {
		ctx := common.WithAuthContext(req.Context(), auth.userID, auth.tenantID, auth.role, auth.email)
		req = req.WithContext(ctx)
	}

	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (*models.TokenResponse, *models.User, error) {
	args := m.Called(ctx, email, password)
	var tokens *models.TokenResponse
	var user *models.User
	if args.Get(0) != nil {
		tokens = args.Get(0).(*models.TokenResponse)
	}
	if args.Get(1) != nil {
		user = args.Get(1).(*models.User)
	}
	return tokens, user, args.Error(2)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (*services.TokenClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenClaims), args.Error(1)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenResponse), args.Error(1)
}

func (m *MockAuthService) RevokeToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
