package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const AuthUserKey contextKey = "auth_user"

// AuthenticatedUser represents a user that has been authenticated
type AuthenticatedUser struct {
	ID    string
	Email string
}

// Claims are the claims carried by API bearer tokens. The subject is the
// user id.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// AuthConfig holds the configuration for the auth middleware
type AuthConfig struct {
	Secret []byte
}

// NewAuthMiddleware creates a new auth middleware verifying HS256 tokens
// signed with secret
func NewAuthMiddleware(secret []byte) *AuthConfig {
	return &AuthConfig{Secret: secret}
}

// ParseToken verifies the signature and expiry of a bearer token.
func (ac *AuthConfig) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return ac.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

// RequireAuth creates a middleware that verifies the bearer token
func (ac *AuthConfig) RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := ac.ParseToken(parts[1])
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			authUser := &AuthenticatedUser{
				ID:    claims.Subject,
				Email: claims.Email,
			}
			ctx := context.WithValue(r.Context(), AuthUserKey, authUser)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the user set by RequireAuth, or nil.
func UserFromContext(ctx context.Context) *AuthenticatedUser {
	user, _ := ctx.Value(AuthUserKey).(*AuthenticatedUser)
	return user
}
