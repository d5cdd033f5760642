package store_test

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kiranshivaraju/cardapio/internal/config"
	"github.com/kiranshivaraju/cardapio/internal/store"
	"github.com/kiranshivaraju/cardapio/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// migrationsDir returns the absolute path to the migrations directory.
func migrationsDir() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..", "migrations")
}

// setupTestDB spins up a Postgres container, runs migrations, and returns a pool + cleanup.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("cardapio_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Run migrations
	err = store.RunMigrations(connStr, migrationsDir())
	require.NoError(t, err)

	pool, err := store.Connect(ctx, config.DatabaseConfig{URL: connStr, MaxOpenConns: 5})
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	return pool
}

func newOrg(externalID, slug string) *models.Organization {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.Organization{
		ID:            uuid.New(),
		ExternalID:    externalID,
		Name:          "Meu Restaurante",
		Slug:          slug,
		MenuTemplate:  "neo-brutal",
		AdminTemplate: "sunset",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func mustCreateOrg(t *testing.T, s store.Store, externalID, slug string) *models.Organization {
	t.Helper()
	org := newOrg(externalID, slug)
	require.NoError(t, s.CreateOrganization(context.Background(), org))
	return org
}

func mustCreateCategory(t *testing.T, s store.Store, orgID uuid.UUID, name string, order int) *models.Category {
	t.Helper()
	c := &models.Category{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Name:           name,
		OrderIndex:     order,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, s.CreateCategory(context.Background(), c))
	return c
}

func mustCreateItem(t *testing.T, s store.Store, orgID uuid.UUID, categoryID *uuid.UUID, name, price string) *models.MenuItem {
	t.Helper()
	it := &models.MenuItem{
		ID:             uuid.New(),
		OrganizationID: orgID,
		CategoryID:     categoryID,
		Name:           name,
		Price:          decimal.RequireFromString(price),
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, s.CreateMenuItem(context.Background(), it))
	return it
}

// --- Organization Tests ---

func TestOrganization_CreateAndLookup(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	s := store.NewPostgresStore(setupTestDB(t))
	ctx := context.Background()

	org := mustCreateOrg(t, s, "user_1", "menu-1-ser1")

	byExternal, err := s.GetOrganizationByExternalID(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, org.ID, byExternal.ID)
	assert.Equal(t, "menu-1-ser1", byExternal.Slug)

	bySlug, err := s.GetOrganizationBySlug(ctx, "menu-1-ser1")
	require.NoError(t, err)
	assert.Equal(t, org.ID, bySlug.ID)

	_, err = s.GetOrganizationByExternalID(ctx, "user_unknown")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestOrganization_DuplicateClassification(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	s := store.NewPostgresStore(setupTestDB(t))
	ctx := context.Background()

	mustCreateOrg(t, s, "user_1", "menu-1-ser1")

	err := s.CreateOrganization(ctx, newOrg("user_2", "menu-1-ser1"))
	assert.ErrorIs(t, err, store.ErrDuplicateSlug)

	err = s.CreateOrganization(ctx, newOrg("user_1", "menu-2-ser1"))
	assert.ErrorIs(t, err, store.ErrDuplicateKey)
	assert.NotErrorIs(t, err, store.ErrDuplicateSlug)
}

func TestOrganization_Update(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	s := store.NewPostgresStore(setupTestDB(t))
	ctx := context.Background()

	org := mustCreateOrg(t, s, "user_1", "menu-1-ser1")
	logo := "https://cdn.test/logo.png"
	org.Name = "Cantina"
	org.MenuTemplate = "rustic"
	org.LogoURL = &logo
	require.NoError(t, s.UpdateOrganization(ctx, org))

	got, err := s.GetOrganization(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cantina", got.Name)
	assert.Equal(t, "rustic", got.MenuTemplate)
	require.NotNil(t, got.LogoURL)
	assert.Equal(t, logo, *got.LogoURL)

	missing := newOrg("user_x", "menu-x")
	assert.ErrorIs(t, s.UpdateOrganization(ctx, missing), store.ErrNotFound)
}

// --- Content Tests ---

func TestCategories_ScopedAndOrdered(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	s := store.NewPostgresStore(setupTestDB(t))
	ctx := context.Background()

	a := mustCreateOrg(t, s, "user_a", "menu-a")
	b := mustCreateOrg(t, s, "user_b", "menu-b")

	mustCreateCategory(t, s, a.ID, "Sobremesas", 2)
	first := mustCreateCategory(t, s, a.ID, "Entradas", 0)
	second := mustCreateCategory(t, s, a.ID, "Pratos", 0)
	mustCreateCategory(t, s, b.ID, "Sushi", 0)

	list, err := s.ListCategories(ctx, store.ContentFilter{OrganizationID: a.ID})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.Equal(t, "Sobremesas", list[2].Name)

	_, err = s.GetCategory(ctx, first.ID, b.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, s.SetCategoryActive(ctx, first.ID, b.ID, false), store.ErrNotFound)
	require.NoError(t, s.SetCategoryActive(ctx, first.ID, a.ID, false))

	active, err := s.ListCategories(ctx, store.ContentFilter{OrganizationID: a.ID, ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	// Foreign delete is a no-op.
	require.NoError(t, s.DeleteCategory(ctx, second.ID, b.ID))
	list, err = s.ListCategories(ctx, store.ContentFilter{OrganizationID: a.ID})
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestMenuItems_PriceAndCategoryName(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	s := store.NewPostgresStore(setupTestDB(t))
	ctx := context.Background()

	org := mustCreateOrg(t, s, "user_a", "menu-a")
	cat := mustCreateCategory(t, s, org.ID, "Bebidas", 0)
	mustCreateItem(t, s, org.ID, &cat.ID, "Suco", "12.5")
	mustCreateItem(t, s, org.ID, nil, "Pão", "3")

	items, err := s.ListMenuItems(ctx, store.ContentFilter{OrganizationID: org.ID})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Suco", items[0].Name)
	assert.Equal(t, "12.50", items[0].Price.StringFixed(2))
	require.NotNil(t, items[0].CategoryName)
	assert.Equal(t, "Bebidas", *items[0].CategoryName)

	assert.Nil(t, items[1].CategoryID)
	assert.Nil(t, items[1].CategoryName)
}

func TestMenuItems_CategoryDeleteSetsNull(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	s := store.NewPostgresStore(setupTestDB(t))
	ctx := context.Background()

	org := mustCreateOrg(t, s, "user_a", "menu-a")
	cat := mustCreateCategory(t, s, org.ID, "Bebidas", 0)
	item := mustCreateItem(t, s, org.ID, &cat.ID, "Suco", "8")

	require.NoError(t, s.DeleteCategory(ctx, cat.ID, org.ID))

	items, err := s.ListMenuItems(ctx, store.ContentFilter{OrganizationID: org.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)
	assert.Nil(t, items[0].CategoryID)
}

func TestMenuItems_UpdateScoped(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	s := store.NewPostgresStore(setupTestDB(t))
	ctx := context.Background()

	a := mustCreateOrg(t, s, "user_a", "menu-a")
	b := mustCreateOrg(t, s, "user_b", "menu-b")
	item := mustCreateItem(t, s, a.ID, nil, "Suco", "8")

	hijack := *item
	hijack.OrganizationID = b.ID
	hijack.Name = "Hijacked"
	assert.ErrorIs(t, s.UpdateMenuItem(ctx, &hijack), store.ErrNotFound)
	assert.ErrorIs(t, s.SetMenuItemActive(ctx, item.ID, b.ID, false), store.ErrNotFound)

	item.Name = "Suco de uva"
	item.Price = decimal.RequireFromString("9.9")
	require.NoError(t, s.UpdateMenuItem(ctx, item))
	require.NoError(t, s.SetMenuItemActive(ctx, item.ID, a.ID, false))

	items, err := s.ListMenuItems(ctx, store.ContentFilter{OrganizationID: a.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Suco de uva", items[0].Name)
	assert.Equal(t, "9.90", items[0].Price.StringFixed(2))
	assert.False(t, items[0].IsActive)

	active, err := s.ListMenuItems(ctx, store.ContentFilter{OrganizationID: a.ID, ActiveOnly: true})
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, s.DeleteMenuItem(ctx, item.ID, b.ID))
	items, err = s.ListMenuItems(ctx, store.ContentFilter{OrganizationID: a.ID})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestOrganization_DeleteCascades(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	s := store.NewPostgresStore(setupTestDB(t))
	ctx := context.Background()

	org := mustCreateOrg(t, s, "user_a", "menu-a")
	cat := mustCreateCategory(t, s, org.ID, "Bebidas", 0)
	mustCreateItem(t, s, org.ID, &cat.ID, "Suco", "8")

	require.NoError(t, s.DeleteOrganization(ctx, org.ID))

	cats, err := s.ListCategories(ctx, store.ContentFilter{OrganizationID: org.ID})
	require.NoError(t, err)
	assert.Empty(t, cats)
	items, err := s.ListMenuItems(ctx, store.ContentFilter{OrganizationID: org.ID})
	require.NoError(t, err)
	assert.Empty(t, items)
}

// --- API Key Tests ---

func TestAPIKeys_Lifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	s := store.NewPostgresStore(setupTestDB(t))
	ctx := context.Background()

	a := mustCreateOrg(t, s, "user_a", "menu-a")
	b := mustCreateOrg(t, s, "user_b", "menu-b")

	now := time.Now().UTC()
	key := &models.APIKey{
		ID:             uuid.New(),
		OrganizationID: a.ID,
		Name:           "pos-sync",
		KeyHash:        "$2a$04$hash",
		KeyPrefix:      "mn_abcde",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, s.CreateAPIKey(ctx, key))

	found, err := s.GetAPIKeyByPrefix(ctx, "mn_abcde")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, key.ID, found[0].ID)

	require.NoError(t, s.UpdateAPIKeyLastUsed(ctx, key.ID))
	list, err := s.ListAPIKeys(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotNil(t, list[0].LastUsedAt)

	assert.ErrorIs(t, s.RevokeAPIKey(ctx, key.ID, b.ID), store.ErrNotFound)
	require.NoError(t, s.RevokeAPIKey(ctx, key.ID, a.ID))
	assert.ErrorIs(t, s.RevokeAPIKey(ctx, key.ID, a.ID), store.ErrNotFound)

	found, err = s.GetAPIKeyByPrefix(ctx, "mn_abcde")
	require.NoError(t, err)
	assert.Empty(t, found)
}
