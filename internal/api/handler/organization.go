package handler

import (
	"context"
	"net/http"

	"github.com/kiranshivaraju/cardapio/internal/api/response"
	"github.com/kiranshivaraju/cardapio/internal/content"
	"github.com/kiranshivaraju/cardapio/pkg/models"
)

// OrganizationService is the subset of content.Service used by the
// organization settings and dashboard handlers.
type OrganizationService interface {
	Settings(ctx context.Context, identity string) (*models.Organization, error)
	UpdateOrganizationInfo(ctx context.Context, identity string, in content.OrganizationInfo) (*models.Organization, error)
	UpdateMenuTemplate(ctx context.Context, identity, templateID string) (*models.Organization, error)
	UpdateAdminTemplate(ctx context.Context, identity, templateID string) (*models.Organization, error)
	Dashboard(ctx context.Context, identity string) (*content.Dashboard, error)
}

// NewGetSettingsHandler returns an http.HandlerFunc for GET /api/v1/admin/organization.
// A caller without an organization gets "data": null.
func NewGetSettingsHandler(svc OrganizationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		org, err := svc.Settings(r.Context(), identity)
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.JSON(w, org)
	}
}

// NewUpdateInfoHandler returns an http.HandlerFunc for PUT /api/v1/admin/organization/info.
func NewUpdateInfoHandler(svc OrganizationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		var req struct {
			Name       string  `json:"name"`
			LogoURL    *string `json:"logo_url"`
			FaviconURL *string `json:"favicon_url"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}

		org, err := svc.UpdateOrganizationInfo(r.Context(), identity, content.OrganizationInfo{
			Name:       req.Name,
			LogoURL:    req.LogoURL,
			FaviconURL: req.FaviconURL,
		})
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.JSON(w, org)
	}
}

type templateRequest struct {
	TemplateID string `json:"template_id"`
}

// NewUpdateMenuTemplateHandler returns an http.HandlerFunc for PUT /api/v1/admin/organization/menu-template.
func NewUpdateMenuTemplateHandler(svc OrganizationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		var req templateRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		org, err := svc.UpdateMenuTemplate(r.Context(), identity, req.TemplateID)
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.JSON(w, org)
	}
}

// NewUpdateAdminTemplateHandler returns an http.HandlerFunc for PUT /api/v1/admin/organization/admin-template.
func NewUpdateAdminTemplateHandler(svc OrganizationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		var req templateRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		org, err := svc.UpdateAdminTemplate(r.Context(), identity, req.TemplateID)
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.JSON(w, org)
	}
}

// NewDashboardHandler returns an http.HandlerFunc for GET /api/v1/admin/dashboard.
func NewDashboardHandler(svc OrganizationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		dash, err := svc.Dashboard(r.Context(), identity)
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.JSON(w, dash)
	}
}
