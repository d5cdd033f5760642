// Package handler holds the HTTP handlers for the admin and public API.
// Each constructor takes the narrow service interface it needs.
package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	mw "github.com/kiranshivaraju/cardapio/internal/api/middleware"
	"github.com/kiranshivaraju/cardapio/internal/api/response"
	"github.com/kiranshivaraju/cardapio/internal/apperr"
)

const maxJSONBody = 1 << 20

// requireIdentity writes a 401 and returns false when the request carries no
// authenticated identity.
func requireIdentity(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := mw.GetIdentity(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return "", false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(v); err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
		return false
	}
	return true
}

// pathID parses the {id} URL parameter.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id format",
			map[string]string{"field": "id"})
		return uuid.Nil, false
	}
	return id, true
}

// optionalUUID parses an optional id from a request body. Nil and blank
// strings mean "none".
func optionalUUID(field string, raw *string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, apperr.Invalid(field, "must be a valid id")
	}
	return &id, nil
}

// decimalText accepts a JSON number or string and keeps its literal text,
// so prices are never routed through float64.
type decimalText string

func (d *decimalText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*d = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = decimalText(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return errors.New("price must be a number or string")
		}
		*d = decimalText(n.String())
	}
	return nil
}

// activeRequest is the body of the PUT .../{id}/active endpoints.
type activeRequest struct {
	IsActive *bool `json:"is_active"`
}

func decodeActive(w http.ResponseWriter, r *http.Request) (bool, bool) {
	var req activeRequest
	if !decodeJSON(w, r, &req) {
		return false, false
	}
	if req.IsActive == nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "is_active: is required",
			map[string]string{"field": "is_active"})
		return false, false
	}
	return *req.IsActive, true
}
