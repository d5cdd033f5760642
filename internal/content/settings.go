package content

import (
	"context"
	"net/url"

	"github.com/kiranshivaraju/cardapio/internal/apperr"
	"github.com/kiranshivaraju/cardapio/internal/store"
	"github.com/kiranshivaraju/cardapio/internal/theme"
	"github.com/kiranshivaraju/cardapio/pkg/models"
)

// OrganizationInfo holds the editable identity fields of an organization.
// Nil LogoURL or FaviconURL clears the stored value.
type OrganizationInfo struct {
	Name       string
	LogoURL    *string
	FaviconURL *string
}

// Dashboard summarizes the caller's menu for the admin home page.
type Dashboard struct {
	OrganizationName string              `json:"organization_name"`
	Slug             string              `json:"slug"`
	CategoryCount    int                 `json:"category_count"`
	ItemCount        int                 `json:"item_count"`
	ActiveItemCount  int                 `json:"active_item_count"`
	AdminTemplate    theme.AdminTemplate `json:"admin_template"`
}

// Settings returns the caller's organization, or nil if none exists yet.
func (s *Service) Settings(ctx context.Context, identity string) (*models.Organization, error) {
	return s.lookup(ctx, identity)
}

// UpdateMenuTemplate selects the public menu template. The id must exist in
// the menu catalog.
func (s *Service) UpdateMenuTemplate(ctx context.Context, identity, templateID string) (*models.Organization, error) {
	if identity == "" {
		return nil, apperr.ErrUnauthorized
	}
	if !theme.IsMenuTemplate(templateID) {
		return nil, apperr.Invalid("template_id", "unknown menu template")
	}
	return s.updateOrganization(ctx, identity, func(org *models.Organization) {
		org.MenuTemplate = templateID
	})
}

// UpdateAdminTemplate selects the admin panel template. The id must exist in
// the admin catalog.
func (s *Service) UpdateAdminTemplate(ctx context.Context, identity, templateID string) (*models.Organization, error) {
	if identity == "" {
		return nil, apperr.ErrUnauthorized
	}
	if !theme.IsAdminTemplate(templateID) {
		return nil, apperr.Invalid("template_id", "unknown admin template")
	}
	return s.updateOrganization(ctx, identity, func(org *models.Organization) {
		org.AdminTemplate = templateID
	})
}

// UpdateOrganizationInfo sets name, logo and favicon.
func (s *Service) UpdateOrganizationInfo(ctx context.Context, identity string, in OrganizationInfo) (*models.Organization, error) {
	if identity == "" {
		return nil, apperr.ErrUnauthorized
	}
	name, err := requireName("name", in.Name)
	if err != nil {
		return nil, err
	}
	logo, err := optionalURL("logo_url", in.LogoURL)
	if err != nil {
		return nil, err
	}
	favicon, err := optionalURL("favicon_url", in.FaviconURL)
	if err != nil {
		return nil, err
	}
	return s.updateOrganization(ctx, identity, func(org *models.Organization) {
		org.Name = name
		org.LogoURL = logo
		org.FaviconURL = favicon
	})
}

func (s *Service) updateOrganization(ctx context.Context, identity string, apply func(*models.Organization)) (*models.Organization, error) {
	org, err := s.tenants.EnsureOrganization(ctx, identity)
	if err != nil {
		return nil, err
	}
	apply(org)
	if err := s.store.UpdateOrganization(ctx, org); err != nil {
		return nil, storeErr("updating organization", err)
	}
	org.UpdatedAt = s.now().UTC()
	s.invalidate(ctx, org)
	return org, nil
}

// Dashboard counts the caller's categories and items. A caller without an
// organization gets zero counts and the default admin template.
func (s *Service) Dashboard(ctx context.Context, identity string) (*Dashboard, error) {
	org, err := s.lookup(ctx, identity)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return &Dashboard{AdminTemplate: theme.Admin("")}, nil
	}

	filter := store.ContentFilter{OrganizationID: org.ID}
	categories, err := s.store.ListCategories(ctx, filter)
	if err != nil {
		return nil, storeErr("listing categories", err)
	}
	items, err := s.store.ListMenuItems(ctx, filter)
	if err != nil {
		return nil, storeErr("listing menu items", err)
	}

	active := 0
	for _, it := range items {
		if it.IsActive {
			active++
		}
	}
	return &Dashboard{
		OrganizationName: org.Name,
		Slug:             org.Slug,
		CategoryCount:    len(categories),
		ItemCount:        len(items),
		ActiveItemCount:  active,
		AdminTemplate:    theme.Admin(org.AdminTemplate),
	}, nil
}

func optionalURL(field string, raw *string) (*string, error) {
	v := optionalText(raw)
	if v == nil {
		return nil, nil
	}
	u, err := url.Parse(*v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, apperr.Invalid(field, "must be an http or https URL")
	}
	return v, nil
}
