package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription tiers. Transitions only go FREE -> PRO.
const (
	SubscriptionFree = "FREE"
	SubscriptionPro  = "PRO"
)

type Tenant struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Slug         string    `json:"slug" db:"slug"`
	Subscription string    `json:"subscription" db:"subscription"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
