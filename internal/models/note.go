package models

import (
	"time"

	"github.com/google/uuid"
)

// Note is tenant-owned. Every read and write must filter by TenantID;
// a note is never visible outside its tenant.
//
// IDs come from a bigserial sequence, so listing by id descending is
// most-recently-created-first.
type Note struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	AuthorID  uuid.UUID `json:"author_id" db:"author_id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
