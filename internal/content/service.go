// Package content manages a tenant's categories, menu items and
// organization settings. Every operation is scoped to the organization
// owned by the caller's identity.
package content

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/kiranshivaraju/cardapio/internal/apperr"
	"github.com/kiranshivaraju/cardapio/internal/cache"
	"github.com/kiranshivaraju/cardapio/internal/store"
	"github.com/kiranshivaraju/cardapio/pkg/models"
)

// Tenants resolves and provisions organizations. *tenant.Resolver satisfies it.
type Tenants interface {
	Resolve(ctx context.Context, identity string) (*models.Organization, error)
	EnsureOrganization(ctx context.Context, identity string) (*models.Organization, error)
}

// Service implements the content operations.
type Service struct {
	tenants Tenants
	store   store.Store
	cache   cache.Cache
	now     func() time.Time
}

// NewService creates a Service. ca may be nil, in which case public menu
// cache entries are not invalidated.
func NewService(tenants Tenants, st store.Store, ca cache.Cache) *Service {
	return &Service{
		tenants: tenants,
		store:   st,
		cache:   ca,
		now:     time.Now,
	}
}

// lookup returns the caller's organization, or nil when none exists yet.
func (s *Service) lookup(ctx context.Context, identity string) (*models.Organization, error) {
	org, err := s.tenants.Resolve(ctx, identity)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return org, nil
}

// invalidate drops the cached public menu. Failures are logged only; the
// entry expires on its own.
func (s *Service) invalidate(ctx context.Context, org *models.Organization) {
	if s.cache == nil || org == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.PublicMenuKey(org.Slug)); err != nil {
		slog.Warn("public menu cache invalidation failed", "slug", org.Slug, "error", err)
	}
}

func storeErr(op string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.ErrNotFound
	}
	return apperr.Store(op, err)
}
