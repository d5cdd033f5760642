package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/cardapio/internal/api/response"
	"github.com/kiranshivaraju/cardapio/internal/content"
	"github.com/kiranshivaraju/cardapio/pkg/models"
)

// ItemService is the subset of content.Service used by menu item handlers.
type ItemService interface {
	ListItems(ctx context.Context, identity string) ([]*models.MenuItem, error)
	CreateItem(ctx context.Context, identity string, in content.ItemInput) (*models.MenuItem, error)
	UpdateItem(ctx context.Context, identity string, id uuid.UUID, in content.ItemUpdate) error
	DeleteItem(ctx context.Context, identity string, id uuid.UUID) error
	SetItemActive(ctx context.Context, identity string, id uuid.UUID, active bool) error
}

type itemRequest struct {
	Name        string      `json:"name"`
	Price       decimalText `json:"price"`
	Description *string     `json:"description"`
	CategoryID  *string     `json:"category_id"`
	ImagePath   *string     `json:"image_path"`
}

// NewListItemsHandler returns an http.HandlerFunc for GET /api/v1/admin/items.
func NewListItemsHandler(svc ItemService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		items, err := svc.ListItems(r.Context(), identity)
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.JSON(w, items)
	}
}

// NewCreateItemHandler returns an http.HandlerFunc for POST /api/v1/admin/items.
func NewCreateItemHandler(svc ItemService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		var req itemRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		categoryID, err := optionalUUID("category_id", req.CategoryID)
		if err != nil {
			response.FromError(w, r, err)
			return
		}

		item, err := svc.CreateItem(r.Context(), identity, content.ItemInput{
			Name:        req.Name,
			Price:       string(req.Price),
			Description: req.Description,
			CategoryID:  categoryID,
			ImagePath:   req.ImagePath,
		})
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.Created(w, item)
	}
}

// NewUpdateItemHandler returns an http.HandlerFunc for PUT /api/v1/admin/items/{id}.
// The body replaces name, price, image_path and category_id; omitted
// optional fields are cleared.
func NewUpdateItemHandler(svc ItemService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var req itemRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		categoryID, err := optionalUUID("category_id", req.CategoryID)
		if err != nil {
			response.FromError(w, r, err)
			return
		}

		err = svc.UpdateItem(r.Context(), identity, id, content.ItemUpdate{
			Name:       req.Name,
			Price:      string(req.Price),
			ImagePath:  req.ImagePath,
			CategoryID: categoryID,
		})
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		response.JSON(w, map[string]any{"id": id})
	}
}

// NewDeleteItemHandler returns an http.HandlerFunc for DELETE /api/v1/admin/items/{id}.
func NewDeleteItemHandler(svc ItemService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := svc.DeleteItem(r.Context(), identity, id); err != nil {
			response.FromError(w, r, err)
			return
		}
		response.NoContent(w)
	}
}

// NewSetItemActiveHandler returns an http.HandlerFunc for PUT /api/v1/admin/items/{id}/active.
func NewSetItemActiveHandler(svc ItemService) http.HandlerFunc {
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
		if err := svc.SetItemActive(r.Context(), identity, id, active); err != nil {
			response.FromError(w, r, err)
			return
		}
		response.JSON(w, map[string]any{"id": id, "is_active": active})
	}
}
