// Package tenant maps a caller identity to its organization and provisions
// a default organization the first time one is needed.
package tenant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/cardapio/internal/apperr"
	"github.com/kiranshivaraju/cardapio/internal/metrics"
	"github.com/kiranshivaraju/cardapio/internal/store"
	"github.com/kiranshivaraju/cardapio/internal/theme"
	"github.com/kiranshivaraju/cardapio/pkg/models"
)

// DefaultOrganizationName is given to auto-provisioned organizations.
const DefaultOrganizationName = "Meu Restaurante"

// maxSlugAttempts bounds slug regeneration on unique violations.
const maxSlugAttempts = 5

// Resolver implements Resolve and GetOrCreate over a store.Store.
type Resolver struct {
	store   store.Store
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewResolver creates a Resolver. m may be nil.
func NewResolver(st store.Store, m *metrics.Metrics) *Resolver {
	return &Resolver{
		store:   st,
		metrics: m,
		now:     time.Now,
	}
}

// Resolve returns the organization owned by identity, or apperr.ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, identity string) (*models.Organization, error) {
	if identity == "" {
		return nil, apperr.ErrUnauthorized
	}

	org, err := r.store.GetOrganizationByExternalID(ctx, identity)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("organization for identity: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, apperr.Store("resolving organization", err)
	}
	return org, nil
}

// GetOrCreate returns the caller's organization, creating a default one if
// none exists. Safe to call repeatedly and concurrently for one identity.
func (r *Resolver) GetOrCreate(ctx context.Context, identity string) (*models.Organization, error) {
	org, err := r.Resolve(ctx, identity)
	if err == nil {
		return org, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	now := r.now().UTC()
	org = &models.Organization{
		ID:            uuid.New(),
		ExternalID:    identity,
		Name:          DefaultOrganizationName,
		MenuTemplate:  theme.DefaultMenuTemplate,
		AdminTemplate: theme.DefaultAdminTemplate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var lastErr error
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		org.Slug = generateSlug(identity, now, attempt)

		lastErr = r.store.CreateOrganization(ctx, org)
		switch {
		case lastErr == nil:
			r.metrics.OrganizationProvisioned()
			slog.Info("organization provisioned", "organization_id", org.ID, "slug", org.Slug)
			return org, nil
		case errors.Is(lastErr, store.ErrDuplicateSlug):
			slog.Warn("organization slug taken, regenerating", "slug", org.Slug, "attempt", attempt+1)
			continue
		case errors.Is(lastErr, store.ErrDuplicateKey):
			// Another request provisioned this identity first.
			existing, err := r.Resolve(ctx, identity)
			if err != nil {
				return nil, err
			}
			return existing, nil
		default:
			return nil, apperr.Store("creating organization", lastErr)
		}
	}

	return nil, apperr.Store("creating organization",
		fmt.Errorf("no free slug after %d attempts: %w", maxSlugAttempts, lastErr))
}

// EnsureOrganization is the explicit provisioning step tenant-scoped writes
// run before touching content.
func (r *Resolver) EnsureOrganization(ctx context.Context, identity string) (*models.Organization, error) {
	return r.GetOrCreate(ctx, identity)
}

// generateSlug builds "menu-<unix millis>-<identity suffix>". Retries append
// a random component.
func generateSlug(identity string, now time.Time, attempt int) string {
	slug := fmt.Sprintf("menu-%d-%s", now.UnixMilli(), identitySuffix(identity))
	if attempt > 0 {
		slug += "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	}
	return slug
}

// identitySuffix keeps the lowercase alphanumerics of the last six
// characters of identity.
func identitySuffix(identity string) string {
	tail := identity
	if len(tail) > 6 {
		tail = tail[len(tail)-6:]
	}
	var b strings.Builder
	for _, c := range strings.ToLower(tail) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
		}
	}
	if b.Len() == 0 {
		return "org"
	}
	return b.String()
}
