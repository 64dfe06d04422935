// Package auth resolves the authenticated identity of a request. The
// identity provider itself (registration, login, roles) is an external
// collaborator; this package only verifies bearer tokens it issued.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthenticated signals that no valid identity could be resolved.
var ErrUnauthenticated = errors.New("unauthenticated")

// Identity describes the authenticated user as asserted by the provider.
type Identity struct {
	UserID   string
	Username string
	Email    string
}

// Resolver resolves the identity behind an HTTP request.
type Resolver interface {
	Resolve(r *http.Request) (Identity, error)
}

// Claims carried in the provider's JWTs.
type Claims struct {
	Username string `json:"name"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// JWTResolver verifies HMAC-signed bearer tokens.
type JWTResolver struct {
	secret []byte
}

// NewJWTResolver creates a resolver for tokens signed with the given secret.
func NewJWTResolver(secret string) *JWTResolver {
	return &JWTResolver{secret: []byte(secret)}
}

// Resolve extracts and verifies the Authorization bearer token.
func (j *JWTResolver) Resolve(r *http.Request) (Identity, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return Identity{}, ErrUnauthenticated
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, ErrUnauthenticated
	}
	return Identity{
		UserID:   claims.Subject,
		Username: claims.Username,
		Email:    claims.Email,
	}, nil
}

// SignToken mints a token for the given identity. Exposed for tests and
// local development tooling.
func SignToken(secret string, ident Identity) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: ident.Username,
		Email:    ident.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: ident.UserID,
		},
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
