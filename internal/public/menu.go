// Package public serves the unauthenticated, slug-addressed menu view.
package public

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/cardapio/internal/apperr"
	"github.com/kiranshivaraju/cardapio/internal/cache"
	"github.com/kiranshivaraju/cardapio/internal/metrics"
	"github.com/kiranshivaraju/cardapio/internal/store"
	"github.com/kiranshivaraju/cardapio/internal/theme"
	"github.com/kiranshivaraju/cardapio/pkg/models"
)

// Organization is the public subset of an organization record.
type Organization struct {
	Name       string  `json:"name"`
	Slug       string  `json:"slug"`
	LogoURL    *string `json:"logo_url,omitempty"`
	FaviconURL *string `json:"favicon_url,omitempty"`
}

// Section is one category heading with its items. The trailing section of
// uncategorized items has a nil Category.
type Section struct {
	Category *models.Category   `json:"category"`
	Items    []*models.MenuItem `json:"items"`
}

// Menu is everything the public menu page renders.
type Menu struct {
	Organization Organization       `json:"organization"`
	Template     theme.MenuTemplate `json:"template"`
	CSS          string             `json:"css"`
	Categories   []*models.Category `json:"categories"`
	Items        []*models.MenuItem `json:"items"`
	Sections     []Section          `json:"sections"`
}

// Resolver reads public menus, cache-aside through Redis.
type Resolver struct {
	store   store.Store
	cache   cache.Cache
	ttl     time.Duration
	metrics *metrics.Metrics
}

// NewResolver creates a Resolver. ca and m may be nil; a zero ttl disables
// caching.
func NewResolver(st store.Store, ca cache.Cache, ttl time.Duration, m *metrics.Metrics) *Resolver {
	return &Resolver{store: st, cache: ca, ttl: ttl, metrics: m}
}

// GetPublicMenu returns the active menu of the organization with slug, or
// apperr.ErrNotFound.
func (r *Resolver) GetPublicMenu(ctx context.Context, slug string) (*Menu, error) {
	if slug == "" {
		return nil, apperr.ErrNotFound
	}

	if menu, ok := r.fromCache(ctx, slug); ok {
		return menu, nil
	}

	org, err := r.store.GetOrganizationBySlug(ctx, slug)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("menu %q: %w", slug, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, apperr.Store("loading organization", err)
	}

	filter := store.ContentFilter{OrganizationID: org.ID, ActiveOnly: true}
	categories, err := r.store.ListCategories(ctx, filter)
	if err != nil {
		return nil, apperr.Store("listing categories", err)
	}
	items, err := r.store.ListMenuItems(ctx, filter)
	if err != nil {
		return nil, apperr.Store("listing menu items", err)
	}

	menu := build(org, categories, items)
	r.toCache(ctx, slug, menu)
	return menu, nil
}

// build drops items whose category is inactive and groups the rest by
// category, in category order, followed by uncategorized items.
func build(org *models.Organization, categories []*models.Category, items []*models.MenuItem) *Menu {
	tmpl := theme.Menu(org.MenuTemplate)
	menu := &Menu{
		Organization: Organization{
			Name:       org.Name,
			Slug:       org.Slug,
			LogoURL:    org.LogoURL,
			FaviconURL: org.FaviconURL,
		},
		Template:   tmpl,
		CSS:        theme.CSSVariables(tmpl),
		Categories: categories,
		Items:      make([]*models.MenuItem, 0, len(items)),
		Sections:   make([]Section, 0, len(categories)+1),
	}

	byCategory := make(map[uuid.UUID][]*models.MenuItem, len(categories))
	for _, c := range categories {
		byCategory[c.ID] = nil
	}
	var uncategorized []*models.MenuItem
	for _, it := range items {
		if it.CategoryID == nil {
			uncategorized = append(uncategorized, it)
			menu.Items = append(menu.Items, it)
			continue
		}
		if _, ok := byCategory[*it.CategoryID]; !ok {
			continue
		}
		byCategory[*it.CategoryID] = append(byCategory[*it.CategoryID], it)
		menu.Items = append(menu.Items, it)
	}

	for _, c := range categories {
		if len(byCategory[c.ID]) == 0 {
			continue
		}
		menu.Sections = append(menu.Sections, Section{Category: c, Items: byCategory[c.ID]})
	}
	if len(uncategorized) > 0 {
		menu.Sections = append(menu.Sections, Section{Items: uncategorized})
	}
	return menu
}

func (r *Resolver) fromCache(ctx context.Context, slug string) (*Menu, bool) {
	if r.cache == nil || r.ttl <= 0 {
		return nil, false
	}
	data, ok, err := r.cache.Get(ctx, cache.PublicMenuKey(slug))
	if err != nil {
		slog.Warn("public menu cache read failed", "slug", slug, "error", err)
		r.metrics.MenuLookup("error")
		return nil, false
	}
	if !ok {
		r.metrics.MenuLookup("miss")
		return nil, false
	}
	var menu Menu
	if err := json.Unmarshal(data, &menu); err != nil {
		slog.Warn("public menu cache entry unreadable", "slug", slug, "error", err)
		r.metrics.MenuLookup("error")
		return nil, false
	}
	r.metrics.MenuLookup("hit")
	return &menu, true
}

func (r *Resolver) toCache(ctx context.Context, slug string, menu *Menu) {
	if r.cache == nil || r.ttl <= 0 {
		return
	}
	data, err := json.Marshal(menu)
	if err != nil {
		slog.Warn("public menu encode failed", "slug", slug, "error", err)
		return
	}
	if err := r.cache.Set(ctx, cache.PublicMenuKey(slug), data, r.ttl); err != nil {
		slog.Warn("public menu cache write failed", "slug", slug, "error", err)
	}
}
