package models

import (
	"time"

	"github.com/google/uuid"
)

// Roles within a tenant. Only ADMIN may upgrade the subscription.
const (
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
)

// User is a row of the profiles table: the identity record the Access Gate
// resolves a verified token against.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	TenantID     uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize in JSON
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
