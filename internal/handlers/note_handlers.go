package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"notesaas/internal/common"
	"notesaas/internal/models"
	"notesaas/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// NoteHandlers handles note-related HTTP requests
type NoteHandlers struct {
	noteService   services.NoteService
	exportService services.ExportService
	tenantService services.TenantService
	log           *zap.Logger
}

// NewNoteHandlers creates a new note handlers instance
func NewNoteHandlers(noteService services.NoteService, exportService services.ExportService, tenantService services.TenantService, log *zap.Logger) *NoteHandlers {
	return &NoteHandlers{
		noteService:   noteService,
		exportService: exportService,
		tenantService: tenantService,
		log:           log,
	}
}

// ListNotes returns every note of the caller's tenant, newest first.
func (h *NoteHandlers) ListNotes(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendValidationError(c, "Missing tenant context")
	}

	notes, err := h.noteService.List(ctx, tenantID)
	if err != nil {
		h.log.Error("failed to fetch notes", zap.String("tenant_id", tenantID.String()), zap.Error(err))
		return common.SendServerError(c, "Failed to fetch notes")
	}
	if notes == nil {
		notes = []*models.Note{}
	}

	return c.JSON(http.StatusOK, map[string]any{"notes": notes})
}

// CreateNoteRequest represents the note creation request payload
type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreateNote creates a note for the caller's tenant, subject to the
// FREE-tier quota. Author and tenant come from the authenticated context,
// never from the request body.
func (h *NoteHandlers) CreateNote(c echo.Context) error {
	ctx := c.Request().Context()

	userID, userOK := common.GetUserIDFromContext(ctx)
	tenantID, tenantOK := common.GetTenantIDFromContext(ctx)
	if !userOK || !tenantOK {
		return common.SendValidationError(c, "Missing user or tenant context")
	}

	var req CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	note, err := h.noteService.Create(ctx, tenantID, userID, req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTitleRequired):
			return common.SendValidationError(c, "Title is required")
		case errors.Is(err, services.ErrTenantNotFound):
			return common.SendError(c, http.StatusNotFound, "Tenant not found")
		case errors.Is(err, services.ErrQuotaExceeded):
			return common.SendError(c, http.StatusForbidden, "Note limit reached. Upgrade to Pro to create more notes.")
		default:
			h.log.Error("failed to create note", zap.String("tenant_id", tenantID.String()), zap.Error(err))
			return common.SendServerError(c, "Failed to create note")
		}
	}

	return c.JSON(http.StatusCreated, map[string]any{"note": note})
}

// DeleteNote removes a note by id within the caller's tenant. Ids belonging
// to another tenant match nothing and still report success.
func (h *NoteHandlers) DeleteNote(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendValidationError(c, "Missing tenant context")
	}

	idParam := c.Param("id")
	if idParam == "" {
		return common.SendValidationError(c, "Note ID is required")
	}
	noteID, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		return common.SendValidationError(c, "Note ID is required")
	}

	if err := h.noteService.Delete(ctx, tenantID, noteID); err != nil {
		h.log.Error("failed to delete note", zap.Int64("note_id", noteID), zap.String("tenant_id", tenantID.String()), zap.Error(err))
		return common.SendServerError(c, "Failed to delete note")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Note deleted successfully",
	})
}

// ExportNotes uploads a JSON snapshot of the tenant's notes to object
// storage and returns a short-lived download URL. Admin only.
func (h *NoteHandlers) ExportNotes(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendValidationError(c, "Missing tenant context")
	}
	role, ok := common.GetUserRoleFromContext(ctx)
	if !ok || role != models.RoleAdmin {
		return common.SendError(c, http.StatusForbidden, "Unauthorized. Admin role required.")
	}

	tenant, err := h.tenantService.GetByID(ctx, tenantID)
	if err != nil {
		return common.SendError(c, http.StatusNotFound, "Tenant not found")
	}

	result, err := h.exportService.ExportTenantNotes(ctx, tenant.ID, tenant.Slug)
	if err != nil {
		h.log.Error("failed to export notes", zap.String("tenant_id", tenantID.String()), zap.Error(err))
		return common.SendServerError(c, "Failed to export notes")
	}

	return c.JSON(http.StatusOK, result)
}
