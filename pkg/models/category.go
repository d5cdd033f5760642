package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups menu items for one organization.
type Category struct {
	ID             uuid.UUID `db:"id"              json:"id"`
	OrganizationID uuid.UUID `db:"organization_id" json:"organization_id"`
	Name           string    `db:"name"            json:"name"`
	Description    *string   `db:"description"     json:"description,omitempty"`
	OrderIndex     int       `db:"order_index"     json:"order_index"`
	IsActive       bool      `db:"is_active"       json:"is_active"`
	CreatedAt      time.Time `db:"created_at"      json:"created_at"`
}
