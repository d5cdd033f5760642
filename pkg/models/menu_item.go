package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItem is a dish or drink on an organization's menu. CategoryID is nil for
// uncategorized items, including items whose category was deleted.
type MenuItem struct {
	ID             uuid.UUID       `db:"id"              json:"id"`
	OrganizationID uuid.UUID       `db:"organization_id" json:"organization_id"`
	CategoryID     *uuid.UUID      `db:"category_id"     json:"category_id"`
	CategoryName   *string         `db:"-"               json:"category_name,omitempty"`
	Name           string          `db:"name"            json:"name"`
	Description    *string         `db:"description"     json:"description,omitempty"`
	Price          decimal.Decimal `db:"price"           json:"price"`
	ImagePath      *string         `db:"image_path"      json:"image_path,omitempty"`
	OrderIndex     int             `db:"order_index"     json:"order_index"`
	IsActive       bool            `db:"is_active"       json:"is_active"`
	CreatedAt      time.Time       `db:"created_at"      json:"created_at"`
}
