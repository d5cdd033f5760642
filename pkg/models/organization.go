// Package models contains shared data models used across the Cardapio codebase.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization is one restaurant tenant. Every category, item and API key belongs
// to exactly one organization; ExternalID ties it to a single caller identity.
type Organization struct {
	ID            uuid.UUID `db:"id"             json:"id"`
	ExternalID    string    `db:"external_id"    json:"-"`
	Name          string    `db:"name"           json:"name"`
	Slug          string    `db:"slug"           json:"slug"`
	MenuTemplate  string    `db:"menu_template"  json:"menu_template"`
	AdminTemplate string    `db:"admin_template" json:"admin_template"`
	LogoURL       *string   `db:"logo_url"       json:"logo_url,omitempty"`
	FaviconURL    *string   `db:"favicon_url"    json:"favicon_url,omitempty"`
	CreatedAt     time.Time `db:"created_at"     json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"     json:"updated_at"`
}
