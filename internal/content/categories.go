package content

import (
	"context"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/cardapio/internal/apperr"
	"github.com/kiranshivaraju/cardapio/internal/store"
	"github.com/kiranshivaraju/cardapio/pkg/models"
)

// CategoryInput holds the fields accepted when creating a category.
type CategoryInput struct {
	Name        string
	Description *string
}

// ListCategories returns the caller's categories ordered by order index.
// A caller without an organization gets an empty list.
func (s *Service) ListCategories(ctx context.Context, identity string) ([]*models.Category, error) {
	org, err := s.lookup(ctx, identity)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return []*models.Category{}, nil
	}

	categories, err := s.store.ListCategories(ctx, store.ContentFilter{OrganizationID: org.ID})
	if err != nil {
		return nil, storeErr("listing categories", err)
	}
	return categories, nil
}

// CreateCategory provisions the caller's organization if needed and adds an
// active category at order index 0.
func (s *Service) CreateCategory(ctx context.Context, identity string, in CategoryInput) (*models.Category, error) {
	if identity == "" {
		return nil, apperr.ErrUnauthorized
	}
	name, err := requireName("name", in.Name)
	if err != nil {
		return nil, err
	}

	org, err := s.tenants.EnsureOrganization(ctx, identity)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		ID:             uuid.New(),
		OrganizationID: org.ID,
		Name:           name,
		Description:    optionalText(in.Description),
		OrderIndex:     0,
		IsActive:       true,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, storeErr("creating category", err)
	}

	s.invalidate(ctx, org)
	return category, nil
}

// DeleteCategory removes a category owned by the caller. Deleting an id the
// caller does not own is a no-op. Items in the category become uncategorized.
func (s *Service) DeleteCategory(ctx context.Context, identity string, id uuid.UUID) error {
	org, err := s.tenants.EnsureOrganization(ctx, identity)
	if err != nil {
		return err
	}
	if err := s.store.DeleteCategory(ctx, id, org.ID); err != nil {
		return storeErr("deleting category", err)
	}
	s.invalidate(ctx, org)
	return nil
}

// SetCategoryActive toggles whether a category shows on the public menu.
func (s *Service) SetCategoryActive(ctx context.Context, identity string, id uuid.UUID, active bool) error {
	org, err := s.tenants.EnsureOrganization(ctx, identity)
	if err != nil {
		return err
	}
	if err := s.store.SetCategoryActive(ctx, id, org.ID, active); err != nil {
		return storeErr("updating category", err)
	}
	s.invalidate(ctx, org)
	return nil
}
