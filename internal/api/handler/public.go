package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kiranshivaraju/cardapio/internal/api/response"
	"github.com/kiranshivaraju/cardapio/internal/public"
	"github.com/kiranshivaraju/cardapio/internal/theme"
)

// MenuResolver reads a published menu by slug.
type MenuResolver interface {
	GetPublicMenu(ctx context.Context, slug string) (*public.Menu, error)
}

// NewPublicMenuHandler returns an http.HandlerFunc for GET /api/v1/menus/{slug}.
func NewPublicMenuHandler(svc MenuResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		menu, err := svc.GetPublicMenu(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=60")
		response.JSON(w, menu)
	}
}

// NewMenuTemplatesHandler returns an http.HandlerFunc for GET /api/v1/templates/menu.
func NewMenuTemplatesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, theme.MenuTemplates())
	}
}

// NewAdminTemplatesHandler returns an http.HandlerFunc for GET /api/v1/templates/admin.
func NewAdminTemplatesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, theme.AdminTemplates())
	}
}
