package services

import (
	"context"
	"errors"
	"strings"

	"notesaas/internal/models"
	"notesaas/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrTitleRequired  = errors.New("title is required")
	ErrTenantNotFound = errors.New("tenant not found")
	ErrQuotaExceeded  = errors.New("note limit reached")
)

// NoteService handles tenant-scoped note operations and quota enforcement.
type NoteService interface {
	List(ctx context.Context, tenantID uuid.UUID) ([]*models.Note, error)
	Create(ctx context.Context, tenantID, authorID uuid.UUID, title, content string) (*models.Note, error)
	Delete(ctx context.Context, tenantID uuid.UUID, noteID int64) error
}

type noteService struct {
	noteRepo      repositories.NoteRepository
	tenantRepo    repositories.TenantRepository
	freeNoteLimit int
}

// NewNoteService creates a new NoteService instance
func NewNoteService(noteRepo repositories.NoteRepository, tenantRepo repositories.TenantRepository, freeNoteLimit int) NoteService {
	return &noteService{
		noteRepo:      noteRepo,
		tenantRepo:    tenantRepo,
		freeNoteLimit: freeNoteLimit,
	}
}

func (s *noteService) List(ctx context.Context, tenantID uuid.UUID) ([]*models.Note, error) {
	return s.noteRepo.ListByTenant(ctx, tenantID)
}

// Create inserts a note after the quota check. The tier fetch, the count and
// the insert are three separate round trips with no transaction between them,
// so concurrent creations by one FREE tenant can race past the limit.
func (s *noteService) Create(ctx context.Context, tenantID, authorID uuid.UUID, title, content string) (*models.Note, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, ErrTenantNotFound
	}

	if tenant.Subscription == models.SubscriptionFree {
		count, err := s.noteRepo.CountByTenant(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		if count >= s.freeNoteLimit {
			return nil, ErrQuotaExceeded
		}
	}

	note := &models.Note{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
		TenantID: tenantID,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Delete is tenant-scoped; deleting another tenant's note matches nothing
// and still succeeds.
func (s *noteService) Delete(ctx context.Context, tenantID uuid.UUID, noteID int64) error {
	return s.noteRepo.Delete(ctx, tenantID, noteID)
}
