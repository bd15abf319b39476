// Package middleware provides HTTP middleware for session token authentication.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// sessionIDKey is the context key for the authenticated session id.
const sessionIDKey ContextKey = "sessionID"

// TokenValidator validates session tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (SessionIDGetter, error)
}

// SessionIDGetter extracts the session id from token claims.
type SessionIDGetter interface {
	GetSessionID() string
}

// AuthMiddleware validates the Bearer session token and adds its session id to the request
// context.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := validator.ValidateToken(tokenString)
			if err != nil || claims.GetSessionID() == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), sessionIDKey, claims.GetSessionID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects requests whose token was issued for a different session than the
// one named by the path parameter param. It must run inside AuthMiddleware.
func RequireSession(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, err := GetSessionID(r)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if r.PathValue(param) != sessionID {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from a case-insensitive "Bearer <token>" header.
func bearerToken(r *http.Request) (string, bool) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// GetSessionID extracts the authenticated session id from the request context.
func GetSessionID(r *http.Request) (string, error) {
	sessionID, ok := r.Context().Value(sessionIDKey).(string)
	if !ok || sessionID == "" {
		return "", fmt.Errorf("session ID not found in request context")
	}
	return sessionID, nil
}

// SessionIDKey returns the context key for the session id (for testing purposes).
func SessionIDKey() ContextKey {
	return sessionIDKey
}
