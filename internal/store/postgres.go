package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kiranshivaraju/cardapio/pkg/models"
	"github.com/shopspring/decimal"
)

const slugConstraint = "organizations_slug_key"

// PostgresStore implements the Store interface using pgx/v5.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// --- Organizations ---

const orgColumns = `id, external_id, name, slug, menu_template, admin_template, logo_url, favicon_url, created_at, updated_at`

func scanOrganization(row pgx.Row) (*models.Organization, error) {
	var o models.Organization
	err := row.Scan(&o.ID, &o.ExternalID, &o.Name, &o.Slug, &o.MenuTemplate, &o.AdminTemplate,
		&o.LogoURL, &o.FaviconURL, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *PostgresStore) GetOrganization(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	o, err := scanOrganization(s.pool.QueryRow(ctx,
		`SELECT `+orgColumns+` FROM organizations WHERE id = $1`, id))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return o, err
}

func (s *PostgresStore) GetOrganizationByExternalID(ctx context.Context, externalID string) (*models.Organization, error) {
	o, err := scanOrganization(s.pool.QueryRow(ctx,
		`SELECT `+orgColumns+` FROM organizations WHERE external_id = $1`, externalID))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get organization by external id: %w", err)
	}
	return o, err
}

func (s *PostgresStore) GetOrganizationBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	o, err := scanOrganization(s.pool.QueryRow(ctx,
		`SELECT `+orgColumns+` FROM organizations WHERE slug = $1`, slug))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get organization by slug: %w", err)
	}
	return o, err
}

func (s *PostgresStore) CreateOrganization(ctx context.Context, org *models.Organization) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO organizations (id, external_id, name, slug, menu_template, admin_template, logo_url, favicon_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		org.ID, org.ExternalID, org.Name, org.Slug, org.MenuTemplate, org.AdminTemplate,
		org.LogoURL, org.FaviconURL, org.CreatedAt, org.UpdatedAt)
	if err != nil {
		if dup := duplicateKeyError(err); dup != nil {
			return dup
		}
		return fmt.Errorf("create organization: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateOrganization(ctx context.Context, org *models.Organization) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE organizations SET name = $2, menu_template = $3, admin_template = $4,
		   logo_url = $5, favicon_url = $6, updated_at = NOW()
		 WHERE id = $1`,
		org.ID, org.Name, org.MenuTemplate, org.AdminTemplate, org.LogoURL, org.FaviconURL)
	if err != nil {
		return fmt.Errorf("update organization: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteOrganization(ctx context.Context, id uuid.UUID) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}
	return nil
}

// --- Categories ---

func (s *PostgresStore) ListCategories(ctx context.Context, filter ContentFilter) ([]*models.Category, error) {
	query := `SELECT id, organization_id, name, description, order_index, is_active, created_at
		 FROM categories WHERE organization_id = $1`
	if filter.ActiveOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY order_index ASC, created_at ASC, id ASC`

	rows, err := s.pool.Query(ctx, query, filter.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.OrganizationID, &c.Name, &c.Description,
			&c.OrderIndex, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

func (s *PostgresStore) GetCategory(ctx context.Context, id uuid.UUID, orgID uuid.UUID) (*models.Category, error) {
	var c models.Category
	err := s.pool.QueryRow(ctx,
		`SELECT id, organization_id, name, description, order_index, is_active, created_at
		 FROM categories WHERE id = $1 AND organization_id = $2`, id, orgID,
	).Scan(&c.ID, &c.OrganizationID, &c.Name, &c.Description, &c.OrderIndex, &c.IsActive, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) CreateCategory(ctx context.Context, category *models.Category) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO categories (id, organization_id, name, description, order_index, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		category.ID, category.OrganizationID, category.Name, category.Description,
		category.OrderIndex, category.IsActive, category.CreatedAt)
	if err != nil {
		if dup := duplicateKeyError(err); dup != nil {
			return dup
		}
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// DeleteCategory is a no-op when the category does not exist or belongs to
// another organization. Items pointing at it become uncategorized.
func (s *PostgresStore) DeleteCategory(ctx context.Context, id uuid.UUID, orgID uuid.UUID) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM categories WHERE id = $1 AND organization_id = $2`, id, orgID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (s *PostgresStore) SetCategoryActive(ctx context.Context, id uuid.UUID, orgID uuid.UUID, active bool) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE categories SET is_active = $3 WHERE id = $1 AND organization_id = $2`, id, orgID, active)
	if err != nil {
		return fmt.Errorf("set category active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Menu Items ---

func (s *PostgresStore) ListMenuItems(ctx context.Context, filter ContentFilter) ([]*models.MenuItem, error) {
	query := `SELECT i.id, i.organization_id, i.category_id, c.name, i.name, i.description,
		   i.price::text, i.image_path, i.order_index, i.is_active, i.created_at
		 FROM menu_items i
		 LEFT JOIN categories c ON c.id = i.category_id
		 WHERE i.organization_id = $1`
	if filter.ActiveOnly {
		query += ` AND i.is_active`
	}
	query += ` ORDER BY i.order_index ASC, i.created_at ASC, i.id ASC`

	rows, err := s.pool.Query(ctx, query, filter.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	items := []*models.MenuItem{}
	for rows.Next() {
		var (
			it    models.MenuItem
			price string
		)
		if err := rows.Scan(&it.ID, &it.OrganizationID, &it.CategoryID, &it.CategoryName, &it.Name,
			&it.Description, &price, &it.ImagePath, &it.OrderIndex, &it.IsActive, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		if it.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse menu item price %q: %w", price, err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

func (s *PostgresStore) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO menu_items (id, organization_id, category_id, name, description, price, image_path, order_index, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, $9, $10)`,
		item.ID, item.OrganizationID, item.CategoryID, item.Name, item.Description,
		item.Price.StringFixed(2), item.ImagePath, item.OrderIndex, item.IsActive, item.CreatedAt)
	if err != nil {
		if dup := duplicateKeyError(err); dup != nil {
			return dup
		}
		return fmt.Errorf("create menu item: %w", err)
	}
	return nil
}

// UpdateMenuItem overwrites name, price, image and category of an item owned
// by item.OrganizationID.
func (s *PostgresStore) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE menu_items SET name = $3, price = $4::numeric, image_path = $5, category_id = $6
		 WHERE id = $1 AND organization_id = $2`,
		item.ID, item.OrganizationID, item.Name, item.Price.StringFixed(2), item.ImagePath, item.CategoryID)
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteMenuItem(ctx context.Context, id uuid.UUID, orgID uuid.UUID) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM menu_items WHERE id = $1 AND organization_id = $2`, id, orgID)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	return nil
}

func (s *PostgresStore) SetMenuItemActive(ctx context.Context, id uuid.UUID, orgID uuid.UUID, active bool) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE menu_items SET is_active = $3 WHERE id = $1 AND organization_id = $2`, id, orgID, active)
	if err != nil {
		return fmt.Errorf("set menu item active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- API Keys ---

func (s *PostgresStore) GetAPIKeyByPrefix(ctx context.Context, prefix string) ([]*models.APIKey, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, organization_id, name, key_hash, key_prefix, last_used_at, deleted_at, created_at, updated_at
		 FROM api_keys WHERE key_prefix = $1 AND deleted_at IS NULL`, prefix)
	if err != nil {
		return nil, fmt.Errorf("get api key by prefix: %w", err)
	}
	defer rows.Close()
	return scanAPIKeys(rows)
}

func (s *PostgresStore) UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE api_keys SET last_used_at = NOW(), updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("update api key last used: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateAPIKey(ctx context.Context, key *models.APIKey) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO api_keys (id, organization_id, name, key_hash, key_prefix, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		key.ID, key.OrganizationID, key.Name, key.KeyHash, key.KeyPrefix, key.CreatedAt, key.UpdatedAt)
	if err != nil {
		if dup := duplicateKeyError(err); dup != nil {
			return dup
		}
		return fmt.Errorf("create api key: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListAPIKeys(ctx context.Context, orgID uuid.UUID) ([]*models.APIKey, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, organization_id, name, key_hash, key_prefix, last_used_at, deleted_at, created_at, updated_at
		 FROM api_keys WHERE organization_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	defer rows.Close()
	return scanAPIKeys(rows)
}

func (s *PostgresStore) RevokeAPIKey(ctx context.Context, id uuid.UUID, orgID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE api_keys SET deleted_at = NOW(), updated_at = NOW()
		 WHERE id = $1 AND organization_id = $2 AND deleted_at IS NULL`, id, orgID)
	if err != nil {
		return fmt.Errorf("revoke api key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAPIKeys(rows pgx.Rows) ([]*models.APIKey, error) {
	keys := []*models.APIKey{}
	for rows.Next() {
		var k models.APIKey
		if err := rows.Scan(&k.ID, &k.OrganizationID, &k.Name, &k.KeyHash, &k.KeyPrefix,
			&k.LastUsedAt, &k.DeletedAt, &k.CreatedAt, &k.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}
		keys = append(keys, &k)
	}
	return keys, rows.Err()
}

// duplicateKeyError maps a unique constraint violation to ErrDuplicateSlug or
// ErrDuplicateKey. It returns nil for any other error.
func duplicateKeyError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" { // unique_violation
		return nil
	}
	if pgErr.ConstraintName == slugConstraint {
		return ErrDuplicateSlug
	}
	return ErrDuplicateKey
}
