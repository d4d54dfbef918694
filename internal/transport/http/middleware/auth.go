package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"islandfeed/internal/httputil"
	"islandfeed/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// usernameKey is the context key for the authenticated username
	usernameKey contextKey = "username"

	// roleKey is the context key for the authenticated user's role
	roleKey contextKey = "role"
)

// AuthMiddleware validates bearer tokens on protected routes. A missing
// token is a 401; a present but invalid or expired token is a 403.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString == "" {
				httputil.WriteUnauthorized(w, "Missing authentication token")
				return
			}

			username, role, err := parseToken(tokenString, jwtSecret)
			if err != nil {
				if strings.Contains(err.Error(), "expired") {
					httputil.WriteForbiddenWithCode(w, model.CodeTokenExpired, "Access token has expired")
					return
				}
				httputil.WriteForbiddenWithCode(w, model.CodeTokenInvalid, "Invalid authentication token")
				return
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), username, role)))
		})
	}
}

// OptionalAuthMiddleware attaches the caller's identity when a valid bearer
// token is present, and proceeds anonymously otherwise. Used by public read
// routes that personalize their output for signed-in callers.
func OptionalAuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString != "" {
				if username, role, err := parseToken(tokenString, jwtSecret); err == nil {
					r = r.WithContext(withIdentity(r.Context(), username, role))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	// Expected format: "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

func parseToken(tokenString, jwtSecret string) (username, role string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", jwt.ErrTokenInvalidClaims
	}

	username, ok = claims["username"].(string)
	if !ok || username == "" {
		return "", "", jwt.ErrTokenInvalidClaims
	}

	// Role is informational; tokens without one are still accepted.
	role, _ = claims["role"].(string)

	return username, role, nil
}

func withIdentity(ctx context.Context, username, role string) context.Context {
	ctx = context.WithValue(ctx, usernameKey, username)
	return context.WithValue(ctx, roleKey, role)
}

// GetUsernameFromContext extracts the authenticated username from the
// request context. Returns false when the request is anonymous.
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	return username, ok
}

// GetRoleFromContext extracts the authenticated user's role from the request context.
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok
}
