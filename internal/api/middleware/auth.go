package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kiranshivaraju/cardapio/internal/api/response"
	"github.com/kiranshivaraju/cardapio/internal/apikey"
	"github.com/kiranshivaraju/cardapio/internal/apperr"
	"github.com/kiranshivaraju/cardapio/internal/identity"
)

// KeyAuthenticator resolves an API key to its owner's identity.
type KeyAuthenticator interface {
	Authenticate(ctx context.Context, raw string) (string, error)
}

// Auth authenticates admin requests by session token or API key.
type Auth struct {
	verifier identity.Verifier
	keys     KeyAuthenticator
}

// NewAuth creates a new Auth middleware. keys may be nil to disable API keys.
func NewAuth(v identity.Verifier, keys KeyAuthenticator) *Auth {
	return &Auth{verifier: v, keys: keys}
}

// Authenticate validates the Bearer token and sets the identity in the
// request context. Tokens with the API key prefix are checked against the
// key store, anything else is verified as a session token.
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			response.Error(w, http.StatusUnauthorized,
				"UNAUTHORIZED", "Missing or invalid Authorization header", nil)
			return
		}

		var (
			id     string
			err    error
			method = MethodSession
		)
		if apikey.IsKey(token) && a.keys != nil {
			method = MethodAPIKey
			id, err = a.keys.Authenticate(r.Context(), token)
		} else {
			id, err = a.verifier.Verify(r.Context(), token)
		}

		switch {
		case errors.Is(err, apperr.ErrUnauthorized):
			response.Error(w, http.StatusUnauthorized,
				"UNAUTHORIZED", "Invalid credentials", nil)
			return
		case err != nil:
			slog.Error("authentication failed", "error", err, "method", method)
			response.Error(w, http.StatusInternalServerError,
				"INTERNAL_ERROR", "Failed to validate credentials", nil)
			return
		}

		ctx := SetIdentity(r.Context(), id)
		ctx = setAuthMethod(ctx, method)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
