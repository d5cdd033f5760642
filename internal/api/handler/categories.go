package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/cardapio/internal/api/response"
	"github.com/kiranshivaraju/cardapio/internal/content"
	"github.com/kiranshivaraju/cardapio/pkg/models"
)

// CategoryService is the subset of content.Service used by category handlers.
type CategoryService interface {
	ListCategories(ctx context.Context, identity string) ([]*models.Category, error)
	CreateCategory(ctx context.Context, identity string, in content.CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, identity string, id uuid.UUID) error
	SetCategoryActive(ctx context.Context, identity string, id uuid.UUID, active bool) error
}

// NewListCategoriesHandler returns an http.HandlerFunc for GET /api/v1/admin/categories.
func NewListCategoriesHandler(svc CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		categories, err := svc.ListCategories(r.Context(), identity)
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.JSON(w, categories)
	}
}

// NewCreateCategoryHandler returns an http.HandlerFunc for POST /api/v1/admin/categories.
// The first category created by a caller provisions their organization.
func NewCreateCategoryHandler(svc CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		var req struct {
			Name        string  `json:"name"`
			Description *string `json:"description"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}

		category, err := svc.CreateCategory(r.Context(), identity, content.CategoryInput{
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.Created(w, category)
	}
}

// NewDeleteCategoryHandler returns an http.HandlerFunc for DELETE /api/v1/admin/categories/{id}.
func NewDeleteCategoryHandler(svc CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := svc.DeleteCategory(r.Context(), identity, id); err != nil {
			response.FromError(w, r, err)
			return
		}
		response.NoContent(w)
	}
}

// NewSetCategoryActiveHandler returns an http.HandlerFunc for PUT /api/v1/admin/categories/{id}/active.
func NewSetCategoryActiveHandler(svc CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		active, ok := decodeActive(w, r)
		if !ok {
			return
		}
		if err := svc.SetCategoryActive(r.Context(), identity, id, active); err != nil {
			response.FromError(w, r, err)
			return
		}
		response.JSON(w, map[string]any{"id": id, "is_active": active})
	}
}
