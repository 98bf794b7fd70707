package handlers

import (
	"net/http"
	"testing"

	"notesaas/internal/models"
	"notesaas/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type NoteHandlersTestSuite struct {
	suite.Suite
	mockNotes  *MockNoteService
	mockExport *MockExportService
	mockTenant *MockTenantService
	handlers   *NoteHandlers
	e          *echo.Echo
	auth       *authCtx
}

func (suite *NoteHandlersTestSuite) SetupTest() {
	suite.mockNotes = &MockNoteService{}
	suite.mockExport = &MockExportService{}
	suite.mockTenant = &MockTenantService{}
	suite.handlers = NewNoteHandlers(suite.mockNotes, suite.mockExport, suite.mockTenant, testLogger())
	suite.e = echo.New()
	suite.auth = &authCtx{
		userID:   uuid.New(),
		tenantID: uuid.New(),
		role:     models.RoleMember,
		email:    "member@acme.test",
	}

	suite.mockNotes.Test(suite.T())
	suite.mockExport.Test(suite.T())
	suite.mockTenant.Test(suite.T())
}

func (suite *NoteHandlersTestSuite) TearDownTest() {
	suite.mockNotes.AssertExpectations(suite.T())
	suite.mockExport.AssertExpectations(suite.T())
	suite.mockTenant.AssertExpectations(suite.T())
}

func TestNoteHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(NoteHandlersTestSuite))
}

func (suite *NoteHandlersTestSuite) TestListNotes_MissingContext() {
	c, rec := newRequestContext(suite.e, http.MethodGet, "/api/notes", "", nil)

	err := suite.handlers.ListNotes(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "Missing tenant context")
}

func (suite *NoteHandlersTestSuite) TestListNotes_Success() {
	notes := []*models.Note{
		{ID: 2, Title: "B", TenantID: suite.auth.tenantID},
		{ID: 1, Title: "A", TenantID: suite.auth.tenantID},
	}
	suite.mockNotes.On("List", mock.Anything, suite.auth.tenantID).Return(notes, nil)

	c, rec := newRequestContext(suite.e, http.MethodGet, "/api/notes", "", suite.auth)

	err := suite.handlers.ListNotes(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), `"notes"`)
	assert.Contains(suite.T(), rec.Body.String(), `"B"`)
}

func (suite *NoteHandlersTestSuite) TestListNotes_EmptyTenantGetsEmptyArray() {
	suite.mockNotes.On("List", mock.Anything, suite.auth.tenantID).Return([]*models.Note(nil), nil)

	c, rec := newRequestContext(suite.e, http.MethodGet, "/api/notes", "", suite.auth)

	err := suite.handlers.ListNotes(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), `"notes":[]`)
}

func (suite *NoteHandlersTestSuite) TestCreateNote_Success() {
	note := &models.Note{ID: 10, Title: "x", TenantID: suite.auth.tenantID, AuthorID: suite.auth.userID}
	suite.mockNotes.On("Create", mock.Anything, suite.auth.tenantID, suite.auth.userID, "x", "").Return(note, nil)

	c, rec := newRequestContext(suite.e, http.MethodPost, "/api/notes", `{"title":"x"}`, suite.auth)

	err := suite.handlers.CreateNote(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), `"note"`)
}

func (suite *NoteHandlersTestSuite) TestCreateNote_MissingContext() {
	c, rec := newRequestContext(suite.e, http.MethodPost, "/api/notes", `{"title":"x"}`, nil)

	err := suite.handlers.CreateNote(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "Missing user or tenant context")
}

func (suite *NoteHandlersTestSuite) TestCreateNote_MissingTitle() {
	suite.mockNotes.On("Create", mock.Anything, suite.auth.tenantID, suite.auth.userID, "", "").Return(nil, services.ErrTitleRequired)

	c, rec := newRequestContext(suite.e, http.MethodPost, "/api/notes", `{}`, suite.auth)

	err := suite.handlers.CreateNote(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "Title is required")
}

func (suite *NoteHandlersTestSuite) TestCreateNote_QuotaExceeded() {
	suite.mockNotes.On("Create", mock.Anything, suite.auth.tenantID, suite.auth.userID, "y", "").Return(nil, services.ErrQuotaExceeded)

	c, rec := newRequestContext(suite.e, http.MethodPost, "/api/notes", `{"title":"y"}`, suite.auth)

	err := suite.handlers.CreateNote(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "Upgrade to Pro")
}

func (suite *NoteHandlersTestSuite) TestCreateNote_TenantNotFound() {
	suite.mockNotes.On("Create", mock.Anything, suite.auth.tenantID, suite.auth.userID, "z", "").Return(nil, services.ErrTenantNotFound)

	c, rec := newRequestContext(suite.e, http.MethodPost, "/api/notes", `{"title":"z"}`, suite.auth)

	err := suite.handlers.CreateNote(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func (suite *NoteHandlersTestSuite) TestDeleteNote_Success() {
	suite.mockNotes.On("Delete", mock.Anything, suite.auth.tenantID, int64(5)).Return(nil)

	c, rec := newRequestContext(suite.e, http.MethodDelete, "/api/notes/5", "", suite.auth)
	c.SetParamNames("id")
	c.SetParamValues("5")

	err := suite.handlers.DeleteNote(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "Note deleted successfully")
}

func (suite *NoteHandlersTestSuite) TestDeleteNote_BadID() {
	c, rec := newRequestContext(suite.e, http.MethodDelete, "/api/notes/abc", "", suite.auth)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := suite.handlers.DeleteNote(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *NoteHandlersTestSuite) TestExportNotes_MemberForbidden() {
	c, rec := newRequestContext(suite.e, http.MethodPost, "/api/notes/export", "", suite.auth)

	err := suite.handlers.ExportNotes(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
}

func (suite *NoteHandlersTestSuite) TestExportNotes_AdminSuccess() {
	admin := &authCtx{
		userID:   suite.auth.userID,
		tenantID: suite.auth.tenantID,
		role:     models.RoleAdmin,
		email:    "admin@acme.test",
	}
	tenant := &models.Tenant{ID: admin.tenantID, Name: "Acme", Slug: "acme", Subscription: models.SubscriptionPro}
	result := &services.ExportResult{Object: "acme/notes-20260901T020000Z.json", URL: "https://minio/presigned", NoteCount: 4}

	suite.mockTenant.On("GetByID", mock.Anything, admin.tenantID).Return(tenant, nil)
	suite.mockExport.On("ExportTenantNotes", mock.Anything, admin.tenantID, "acme").Return(result, nil)

	c, rec := newRequestContext(suite.e, http.MethodPost, "/api/notes/export", "", admin)

	err := suite.handlers.ExportNotes(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "presigned")
}
