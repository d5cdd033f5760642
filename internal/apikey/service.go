// Package apikey issues and checks organization API keys. A key acts on
// behalf of the organization owner, so it authenticates as the owner's
// identity.
package apikey

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/cardapio/internal/apperr"
	"github.com/kiranshivaraju/cardapio/internal/store"
	"github.com/kiranshivaraju/cardapio/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	// Prefix marks raw keys so they can be told apart from session tokens.
	Prefix = "mn_"
	// PrefixLen is how many leading characters are stored for lookup.
	PrefixLen = 8
)

// Tenants provisions the caller's organization.
type Tenants interface {
	EnsureOrganization(ctx context.Context, identity string) (*models.Organization, error)
}

// Service manages API keys.
type Service struct {
	tenants Tenants
	store   store.Store
	cost    int
}

func NewService(tenants Tenants, st store.Store) *Service {
	return &Service{tenants: tenants, store: st, cost: bcrypt.DefaultCost}
}

// WithCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func (s *Service) WithCost(cost int) *Service {
	s.cost = cost
	return s
}

// IsKey reports whether token looks like an API key rather than a JWT.
func IsKey(token string) bool {
	return strings.HasPrefix(token, Prefix)
}

// Create issues a new key. The raw key is returned once and never stored.
func (s *Service) Create(ctx context.Context, identity, name string) (*models.APIKey, string, error) {
	if identity == "" {
		return nil, "", apperr.ErrUnauthorized
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, "", apperr.Invalid("name", "is required")
	}

	org, err := s.tenants.EnsureOrganization(ctx, identity)
	if err != nil {
		return nil, "", err
	}

	raw, err := generateRawKey()
	if err != nil {
		return nil, "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), s.cost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing api key: %w", err)
	}

	now := time.Now().UTC()
	key := &models.APIKey{
		ID:             uuid.New(),
		OrganizationID: org.ID,
		Name:           name,
		KeyHash:        string(hash),
		KeyPrefix:      raw[:PrefixLen],
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.CreateAPIKey(ctx, key); err != nil {
		return nil, "", apperr.Store("creating api key", err)
	}
	return key, raw, nil
}

// List returns the caller's active keys.
func (s *Service) List(ctx context.Context, identity string) ([]*models.APIKey, error) {
	org, err := s.tenants.EnsureOrganization(ctx, identity)
	if err != nil {
		return nil, err
	}
	keys, err := s.store.ListAPIKeys(ctx, org.ID)
	if err != nil {
		return nil, apperr.Store("listing api keys", err)
	}
	return keys, nil
}

// Revoke soft-deletes a key owned by the caller.
func (s *Service) Revoke(ctx context.Context, identity string, id uuid.UUID) error {
	org, err := s.tenants.EnsureOrganization(ctx, identity)
	if err != nil {
		return err
	}
	err = s.store.RevokeAPIKey(ctx, id, org.ID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.ErrNotFound
	}
	if err != nil {
		return apperr.Store("revoking api key", err)
	}
	return nil
}

// Authenticate resolves a raw key to the identity of the organization that
// owns it.
func (s *Service) Authenticate(ctx context.Context, raw string) (string, error) {
	if !IsKey(raw) || len(raw) < PrefixLen {
		return "", apperr.ErrUnauthorized
	}

	keys, err := s.store.GetAPIKeyByPrefix(ctx, raw[:PrefixLen])
	if err != nil {
		return "", apperr.Store("looking up api key", err)
	}

	for _, key := range keys {
		if bcrypt.CompareHashAndPassword([]byte(key.KeyHash), []byte(raw)) != nil {
			continue
		}
		org, err := s.store.GetOrganization(ctx, key.OrganizationID)
		if errors.Is(err, store.ErrNotFound) {
			return "", apperr.ErrUnauthorized
		}
		if err != nil {
			return "", apperr.Store("loading key organization", err)
		}

		go func(id uuid.UUID) {
			if err := s.store.UpdateAPIKeyLastUsed(context.Background(), id); err != nil {
				slog.Warn("api key last_used update failed", "key_id", id, "error", err)
			}
		}(key.ID)

		return org.ExternalID, nil
	}
	return "", apperr.ErrUnauthorized
}

func generateRawKey() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating api key: %w", err)
	}
	return Prefix + hex.EncodeToString(b), nil
}
