package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/cardapio/pkg/models"
)

var ErrNotFound = errors.New("resource not found")
var ErrDuplicateKey = errors.New("duplicate key violation")

// ErrDuplicateSlug is returned instead of ErrDuplicateKey when the violated
// constraint is the organization slug, so callers can pick a new slug.
var ErrDuplicateSlug = errors.New("duplicate organization slug")

// Store is the data access interface. All database operations go through here.
// Every content query is scoped by organization id.
type Store interface {
	Ping(ctx context.Context) error

	GetOrganization(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	GetOrganizationByExternalID(ctx context.Context, externalID string) (*models.Organization, error)
	GetOrganizationBySlug(ctx context.Context, slug string) (*models.Organization, error)
	CreateOrganization(ctx context.Context, org *models.Organization) error
	UpdateOrganization(ctx context.Context, org *models.Organization) error
	DeleteOrganization(ctx context.Context, id uuid.UUID) error

	ListCategories(ctx context.Context, filter ContentFilter) ([]*models.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID, orgID uuid.UUID) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID, orgID uuid.UUID) error
	SetCategoryActive(ctx context.Context, id uuid.UUID, orgID uuid.UUID, active bool) error

	ListMenuItems(ctx context.Context, filter ContentFilter) ([]*models.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *models.MenuItem) error
	UpdateMenuItem(ctx context.Context, item *models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id uuid.UUID, orgID uuid.UUID) error
	SetMenuItemActive(ctx context.Context, id uuid.UUID, orgID uuid.UUID, active bool) error

	GetAPIKeyByPrefix(ctx context.Context, prefix string) ([]*models.APIKey, error)
	UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error
	CreateAPIKey(ctx context.Context, key *models.APIKey) error
	ListAPIKeys(ctx context.Context, orgID uuid.UUID) ([]*models.APIKey, error)
	RevokeAPIKey(ctx context.Context, id uuid.UUID, orgID uuid.UUID) error
}

// ContentFilter scopes category and item listings.
type ContentFilter struct {
	OrganizationID uuid.UUID
	ActiveOnly     bool
}
