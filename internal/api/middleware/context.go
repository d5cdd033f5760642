package middleware

import (
	"context"
	"net"
	"net/http"
)

type contextKey string

const (
	identityKey   contextKey = "identity"
	authMethodKey contextKey = "auth_method"
)

// Auth methods recorded on the request context.
const (
	MethodSession = "session"
	MethodAPIKey  = "api_key"
)

// SetIdentity stores the authenticated identity on ctx.
func SetIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity returns the identity set by Authenticate.
func GetIdentity(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(identityKey).(string)
	return id, ok && id != ""
}

func setAuthMethod(ctx context.Context, method string) context.Context {
	return context.WithValue(ctx, authMethodKey, method)
}

// GetAuthMethod reports how the request authenticated.
func GetAuthMethod(r *http.Request) string {
	m, _ := r.Context().Value(authMethodKey).(string)
	return m
}

// callerKey identifies the caller for rate limiting: the identity when
// authenticated, otherwise the client address.
func callerKey(r *http.Request) string {
	if id, ok := GetIdentity(r); ok {
		return id
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
