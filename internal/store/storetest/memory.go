// Package storetest provides an in-memory store.Store for unit tests. It keeps
// the same unique, cascade and set-null rules as the Postgres schema.
package storetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/cardapio/internal/store"
	"github.com/kiranshivaraju/cardapio/pkg/models"
)

// Memory is a goroutine-safe store.Store.
type Memory struct {
	mu sync.Mutex

	// Err, when set, is returned by every call.
	Err error
	// BeforeCreateOrganization runs before the uniqueness checks of
	// CreateOrganization, outside the lock, so tests can simulate a
	// concurrent insert.
	BeforeCreateOrganization func(org *models.Organization)

	seq        int64
	orgs       map[uuid.UUID]*models.Organization
	categories map[uuid.UUID]*categoryRow
	items      map[uuid.UUID]*itemRow
	keys       map[uuid.UUID]*models.APIKey
}

type categoryRow struct {
	seq int64
	models.Category
}

type itemRow struct {
	seq int64
	models.MenuItem
}

var _ store.Store = (*Memory)(nil)

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		orgs:       make(map[uuid.UUID]*models.Organization),
		categories: make(map[uuid.UUID]*categoryRow),
		items:      make(map[uuid.UUID]*itemRow),
		keys:       make(map[uuid.UUID]*models.APIKey),
	}
}

func (m *Memory) Ping(_ context.Context) error { return m.Err }

// --- Organizations ---

func (m *Memory) GetOrganization(_ context.Context, id uuid.UUID) (*models.Organization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	o, ok := m.orgs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *Memory) GetOrganizationByExternalID(_ context.Context, externalID string) (*models.Organization, error) {
	return m.findOrg(func(o *models.Organization) bool { return o.ExternalID == externalID })
}

func (m *Memory) GetOrganizationBySlug(_ context.Context, slug string) (*models.Organization, error) {
	return m.findOrg(func(o *models.Organization) bool { return o.Slug == slug })
}

func (m *Memory) findOrg(match func(*models.Organization) bool) (*models.Organization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, o := range m.orgs {
		if match(o) {
			cp := *o
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *Memory) CreateOrganization(_ context.Context, org *models.Organization) error {
	if m.BeforeCreateOrganization != nil {
		m.BeforeCreateOrganization(org)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.orgs[org.ID]; ok {
		return store.ErrDuplicateKey
	}
	for _, o := range m.orgs {
		if o.ExternalID == org.ExternalID {
			return store.ErrDuplicateKey
		}
		if o.Slug == org.Slug {
			return store.ErrDuplicateSlug
		}
	}
	cp := *org
	m.orgs[org.ID] = &cp
	return nil
}

// PutOrganization inserts org without running the hook. It is meant for
// seeding and for hooks that simulate a competing writer.
func (m *Memory) PutOrganization(org *models.Organization) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *org
	m.orgs[org.ID] = &cp
}

func (m *Memory) UpdateOrganization(_ context.Context, org *models.Organization) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	o, ok := m.orgs[org.ID]
	if !ok {
		return store.ErrNotFound
	}
	o.Name = org.Name
	o.MenuTemplate = org.MenuTemplate
	o.AdminTemplate = org.AdminTemplate
	o.LogoURL = org.LogoURL
	o.FaviconURL = org.FaviconURL
	o.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *Memory) DeleteOrganization(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.orgs, id)
	for cid, c := range m.categories {
		if c.OrganizationID == id {
			delete(m.categories, cid)
		}
	}
	for iid, it := range m.items {
		if it.OrganizationID == id {
			delete(m.items, iid)
		}
	}
	for kid, k := range m.keys {
		if k.OrganizationID == id {
			delete(m.keys, kid)
		}
	}
	return nil
}

// OrganizationCount reports how many organizations exist.
func (m *Memory) OrganizationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orgs)
}

// --- Categories ---

func (m *Memory) ListCategories(_ context.Context, filter store.ContentFilter) ([]*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	rows := make([]*categoryRow, 0)
	for _, c := range m.categories {
		if c.OrganizationID != filter.OrganizationID || (filter.ActiveOnly && !c.IsActive) {
			continue
		}
		rows = append(rows, c)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].OrderIndex != rows[j].OrderIndex {
			return rows[i].OrderIndex < rows[j].OrderIndex
		}
		return rows[i].seq < rows[j].seq
	})
	out := make([]*models.Category, len(rows))
	for i, r := range rows {
		cp := r.Category
		out[i] = &cp
	}
	return out, nil
}

func (m *Memory) GetCategory(_ context.Context, id uuid.UUID, orgID uuid.UUID) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	c, ok := m.categories[id]
	if !ok || c.OrganizationID != orgID {
		return nil, store.ErrNotFound
	}
	cp := c.Category
	return &cp, nil
}

func (m *Memory) CreateCategory(_ context.Context, category *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.orgs[category.OrganizationID]; !ok {
		return store.ErrNotFound
	}
	if _, ok := m.categories[category.ID]; ok {
		return store.ErrDuplicateKey
	}
	m.seq++
	m.categories[category.ID] = &categoryRow{seq: m.seq, Category: *category}
	return nil
}

func (m *Memory) DeleteCategory(_ context.Context, id uuid.UUID, orgID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	c, ok := m.categories[id]
	if !ok || c.OrganizationID != orgID {
		return nil
	}
	delete(m.categories, id)
	for _, it := range m.items {
		if it.CategoryID != nil && *it.CategoryID == id {
			it.CategoryID = nil
		}
	}
	return nil
}

func (m *Memory) SetCategoryActive(_ context.Context, id uuid.UUID, orgID uuid.UUID, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	c, ok := m.categories[id]
	if !ok || c.OrganizationID != orgID {
		return store.ErrNotFound
	}
	c.IsActive = active
	return nil
}

// --- Menu Items ---

func (m *Memory) ListMenuItems(_ context.Context, filter store.ContentFilter) ([]*models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	rows := make([]*itemRow, 0)
	for _, it := range m.items {
		if it.OrganizationID != filter.OrganizationID || (filter.ActiveOnly && !it.IsActive) {
			continue
		}
		rows = append(rows, it)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].OrderIndex != rows[j].OrderIndex {
			return rows[i].OrderIndex < rows[j].OrderIndex
		}
		return rows[i].seq < rows[j].seq
	})
	out := make([]*models.MenuItem, len(rows))
	for i, r := range rows {
		cp := r.MenuItem
		cp.CategoryName = nil
		if cp.CategoryID != nil {
			if c, ok := m.categories[*cp.CategoryID]; ok {
				name := c.Name
				cp.CategoryName = &name
			}
		}
		out[i] = &cp
	}
	return out, nil
}

func (m *Memory) CreateMenuItem(_ context.Context, item *models.MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.orgs[item.OrganizationID]; !ok {
		return store.ErrNotFound
	}
	if _, ok := m.items[item.ID]; ok {
		return store.ErrDuplicateKey
	}
	m.seq++
	cp := *item
	cp.Price = cp.Price.Round(2)
	m.items[item.ID] = &itemRow{seq: m.seq, MenuItem: cp}
	return nil
}

func (m *Memory) UpdateMenuItem(_ context.Context, item *models.MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	it, ok := m.items[item.ID]
	if !ok || it.OrganizationID != item.OrganizationID {
		return store.ErrNotFound
	}
	it.Name = item.Name
	it.Price = item.Price.Round(2)
	it.ImagePath = item.ImagePath
	it.CategoryID = item.CategoryID
	return nil
}

func (m *Memory) DeleteMenuItem(_ context.Context, id uuid.UUID, orgID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if it, ok := m.items[id]; ok && it.OrganizationID == orgID {
		delete(m.items, id)
	}
	return nil
}

func (m *Memory) SetMenuItemActive(_ context.Context, id uuid.UUID, orgID uuid.UUID, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	it, ok := m.items[id]
	if !ok || it.OrganizationID != orgID {
		return store.ErrNotFound
	}
	it.IsActive = active
	return nil
}

// --- API Keys ---

func (m *Memory) GetAPIKeyByPrefix(_ context.Context, prefix string) ([]*models.APIKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	keys := []*models.APIKey{}
	for _, k := range m.keys {
		if k.KeyPrefix == prefix && k.DeletedAt == nil {
			cp := *k
			keys = append(keys, &cp)
		}
	}
	return keys, nil
}

func (m *Memory) UpdateAPIKeyLastUsed(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if k, ok := m.keys[id]; ok {
		now := time.Now().UTC()
		k.LastUsedAt = &now
	}
	return nil
}

func (m *Memory) CreateAPIKey(_ context.Context, key *models.APIKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.keys[key.ID]; ok {
		return store.ErrDuplicateKey
	}
	cp := *key
	m.keys[key.ID] = &cp
	return nil
}

func (m *Memory) ListAPIKeys(_ context.Context, orgID uuid.UUID) ([]*models.APIKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	keys := []*models.APIKey{}
	for _, k := range m.keys {
		if k.OrganizationID == orgID && k.DeletedAt == nil {
			cp := *k
			keys = append(keys, &cp)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].CreatedAt.After(keys[j].CreatedAt) })
	return keys, nil
}

func (m *Memory) RevokeAPIKey(_ context.Context, id uuid.UUID, orgID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	k, ok := m.keys[id]
	if !ok || k.OrganizationID != orgID || k.DeletedAt != nil {
		return store.ErrNotFound
	}
	now := time.Now().UTC()
	k.DeletedAt = &now
	return nil
}
