package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/cardapio/internal/apperr"
	"github.com/kiranshivaraju/cardapio/internal/store"
	"github.com/kiranshivaraju/cardapio/pkg/models"
	"github.com/shopspring/decimal"
)

// ItemInput holds the fields accepted when creating a menu item. Price is a
// decimal string.
type ItemInput struct {
	Name        string
	Price       string
	Description *string
	CategoryID  *uuid.UUID
	ImagePath   *string
}

// ItemUpdate overwrites the four mutable fields of a menu item. Nil
// CategoryID or ImagePath clears the stored value.
type ItemUpdate struct {
	Name       string
	Price      string
	ImagePath  *string
	CategoryID *uuid.UUID
}

// ListItems returns the caller's menu items ordered by order index, each
// with its category name. A caller without an organization gets an empty list.
func (s *Service) ListItems(ctx context.Context, identity string) ([]*models.MenuItem, error) {
	org, err := s.lookup(ctx, identity)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return []*models.MenuItem{}, nil
	}

	items, err := s.store.ListMenuItems(ctx, store.ContentFilter{OrganizationID: org.ID})
	if err != nil {
		return nil, storeErr("listing menu items", err)
	}
	return items, nil
}

// CreateItem adds a menu item. It does not provision an organization: a
// caller without one gets apperr.ErrPrecondition.
func (s *Service) CreateItem(ctx context.Context, identity string, in ItemInput) (*models.MenuItem, error) {
	if identity == "" {
		return nil, apperr.ErrUnauthorized
	}
	name, price, err := validateItem(in.Name, in.Price)
	if err != nil {
		return nil, err
	}

	org, err := s.tenants.Resolve(ctx, identity)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("organization not found: %w", apperr.ErrPrecondition)
	}
	if err != nil {
		return nil, err
	}

	if err := s.checkCategory(ctx, org.ID, in.CategoryID); err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		ID:             uuid.New(),
		OrganizationID: org.ID,
		CategoryID:     in.CategoryID,
		Name:           name,
		Description:    optionalText(in.Description),
		Price:          price,
		ImagePath:      optionalText(in.ImagePath),
		OrderIndex:     0,
		IsActive:       true,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.store.CreateMenuItem(ctx, item); err != nil {
		return nil, storeErr("creating menu item", err)
	}

	s.invalidate(ctx, org)
	return item, nil
}

// UpdateItem overwrites name, price, image and category of an item owned by
// the caller. Items of other organizations report apperr.ErrNotFound.
func (s *Service) UpdateItem(ctx context.Context, identity string, id uuid.UUID, in ItemUpdate) error {
	if identity == "" {
		return apperr.ErrUnauthorized
	}
	name, price, err := validateItem(in.Name, in.Price)
	if err != nil {
		return err
	}

	org, err := s.tenants.EnsureOrganization(ctx, identity)
	if err != nil {
		return err
	}
	if err := s.checkCategory(ctx, org.ID, in.CategoryID); err != nil {
		return err
	}

	item := &models.MenuItem{
		ID:             id,
		OrganizationID: org.ID,
		CategoryID:     in.CategoryID,
		Name:           name,
		Price:          price,
		ImagePath:      optionalText(in.ImagePath),
	}
	if err := s.store.UpdateMenuItem(ctx, item); err != nil {
		return storeErr("updating menu item", err)
	}

	s.invalidate(ctx, org)
	return nil
}

// DeleteItem removes an item owned by the caller. Unknown or foreign ids are
// a no-op.
func (s *Service) DeleteItem(ctx context.Context, identity string, id uuid.UUID) error {
	org, err := s.tenants.EnsureOrganization(ctx, identity)
	if err != nil {
		return err
	}
	if err := s.store.DeleteMenuItem(ctx, id, org.ID); err != nil {
		return storeErr("deleting menu item", err)
	}
	s.invalidate(ctx, org)
	return nil
}

// SetItemActive toggles whether an item shows on the public menu.
func (s *Service) SetItemActive(ctx context.Context, identity string, id uuid.UUID, active bool) error {
	org, err := s.tenants.EnsureOrganization(ctx, identity)
	if err != nil {
		return err
	}
	if err := s.store.SetMenuItemActive(ctx, id, org.ID, active); err != nil {
		return storeErr("updating menu item", err)
	}
	s.invalidate(ctx, org)
	return nil
}

func validateItem(name, price string) (string, decimal.Decimal, error) {
	n, err := requireName("name", name)
	if err != nil {
		return "", decimal.Zero, err
	}
	p, err := ParsePrice(price)
	if err != nil {
		return "", decimal.Zero, err
	}
	return n, p, nil
}

// checkCategory rejects category ids that are not owned by orgID.
func (s *Service) checkCategory(ctx context.Context, orgID uuid.UUID, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	_, err := s.store.GetCategory(ctx, *categoryID, orgID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.Invalid("category_id", "unknown category")
	}
	if err != nil {
		return apperr.Store("looking up category", err)
	}
	return nil
}
