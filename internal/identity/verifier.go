// Package identity verifies session tokens issued by the external identity
// provider and extracts the opaque user identity they carry.
package identity

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kiranshivaraju/cardapio/internal/apperr"
	"github.com/kiranshivaraju/cardapio/internal/config"
)

// Verifier turns a bearer token into the caller's identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// JWTVerifier validates HS256 or RS256 tokens and returns the sub claim.
type JWTVerifier struct {
	method jwt.SigningMethod
	key    any
	issuer string
}

// NewVerifier builds a JWTVerifier from the auth configuration. A shared
// secret selects HS256, a PEM public key selects RS256.
func NewVerifier(cfg config.AuthConfig) (*JWTVerifier, error) {
	switch {
	case cfg.JWTSecret != "":
		return &JWTVerifier{
			method: jwt.SigningMethodHS256,
			key:    []byte(cfg.JWTSecret),
			issuer: cfg.JWTIssuer,
		}, nil
	case cfg.JWTPublicKey != "":
		pub, err := parsePublicKey(cfg.JWTPublicKey)
		if err != nil {
			return nil, err
		}
		return &JWTVerifier{
			method: jwt.SigningMethodRS256,
			key:    pub,
			issuer: cfg.JWTIssuer,
		}, nil
	default:
		return nil, fmt.Errorf("no JWT verification key configured")
	}
}

func parsePublicKey(pem string) (*rsa.PublicKey, error) {
	// Env files often carry the PEM on one line with literal \n.
	pem = strings.ReplaceAll(pem, `\n`, "\n")
	pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
	if err != nil {
		return nil, fmt.Errorf("parsing JWT public key: %w", err)
	}
	return pub, nil
}

// Verify checks signature, expiry and issuer, and returns the subject.
func (v *JWTVerifier) Verify(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", apperr.ErrUnauthorized
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{v.method.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperr.ErrUnauthorized, err)
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return "", fmt.Errorf("%w: %w", apperr.ErrUnauthorized, errors.New("token has no subject"))
	}
	return claims.Subject, nil
}
