package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/kiranshivaraju/cardapio/internal/api/response"
	"github.com/kiranshivaraju/cardapio/internal/apperr"
	"github.com/kiranshivaraju/cardapio/internal/qrcode"
	"github.com/kiranshivaraju/cardapio/pkg/models"
)

const (
	minQRSize = 128
	maxQRSize = 1024
)

// SettingsReader returns the caller's organization, or nil if none exists.
type SettingsReader interface {
	Settings(ctx context.Context, identity string) (*models.Organization, error)
}

// NewQRCodeHandler returns an http.HandlerFunc for GET /api/v1/admin/qrcode.
// The PNG encodes the public menu URL; ?size= sets the edge length in pixels.
func NewQRCodeHandler(svc SettingsReader, publicBaseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		size := qrcode.DefaultSize
		if raw := r.URL.Query().Get("size"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < minQRSize || n > maxQRSize {
				response.FromError(w, r, apperr.Invalid("size",
					"must be an integer between "+strconv.Itoa(minQRSize)+" and "+strconv.Itoa(maxQRSize)))
				return
			}
			size = n
		}

		org, err := svc.Settings(r.Context(), identity)
		if err != nil {
			response.FromError(w, r, err)
			return
		}
		if org == nil {
			response.FromError(w, r, apperr.ErrPrecondition)
			return
		}

		png, err := qrcode.PNG(qrcode.MenuURL(publicBaseURL, org.Slug), size)
		if err != nil {
			response.FromError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", `inline; filename="menu-`+org.Slug+`.png"`)
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		w.Write(png)
	}
}
