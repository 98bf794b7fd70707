package repositories

import (
	"context"

	"notesaas/internal/models"

	"github.com/google/uuid"
)

type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Note, error)
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error)
	Delete(ctx context.Context, tenantID uuid.UUID, id int64) error
}

type noteRepo struct {
	db Database
}

func NewNoteRepo(db Database) NoteRepository {
	return &noteRepo{db: db}
}

func (r *noteRepo) Create(ctx context.Context, note *models.Note) error {
	query := `
		INSERT INTO notes (title, content, author_id, tenant_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, note.Title, note.Content, note.AuthorID, note.TenantID).
		Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
}

func (r *noteRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Note, error) {
	query := `
		SELECT id, title, content, author_id, tenant_id, created_at, updated_at
		FROM notes
		WHERE tenant_id = $1
		ORDER BY id DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(&note.ID, &note.Title, &note.Content, &note.AuthorID, &note.TenantID, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func (r *noteRepo) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notes WHERE tenant_id = $1`
	err := r.db.QueryRow(ctx, query, tenantID).Scan(&count)
	return count, err
}

// Delete filters by id and tenant together. A delete for a note owned by a
// different tenant matches zero rows and is still reported as success; this
// is the tenant-isolation mechanism, not an error case.
func (r *noteRepo) Delete(ctx context.Context, tenantID uuid.UUID, id int64) error {
	query := `DELETE FROM notes WHERE id = $1 AND tenant_id = $2`
	_, err := r.db.Exec(ctx, query, id, tenantID)
	return err
}
