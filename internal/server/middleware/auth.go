// Package middleware provides HTTP middleware for authentication, request
// logging, and request metrics.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// studentIDKey is the context key for storing the authenticated student ID.
const studentIDKey ContextKey = "studentID"

// TokenValidator is an interface for validating JWT tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (StudentIDGetter, error)
}

// StudentIDGetter is an interface for extracting the student ID from token claims.
type StudentIDGetter interface {
	GetStudentID() int64
}

// AuthMiddleware creates middleware that validates JWT tokens and adds the
// student ID to the request context.
func AuthMiddleware(jwtService TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w)
				return
			}

			// Handle case-insensitive "Bearer" prefix
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w)
				return
			}

			claims, err := jwtService.ValidateToken(parts[1])
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := WithStudentID(r.Context(), claims.GetStudentID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// unauthorized writes the JSON 401 body used across the API.
func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized"}` + "\n"))
}

// WithStudentID returns a copy of ctx carrying the student ID.
func WithStudentID(ctx context.Context, studentID int64) context.Context {
	return context.WithValue(ctx, studentIDKey, studentID)
}

// GetStudentID extracts the authenticated student ID from the request context.
func GetStudentID(r *http.Request) (int64, error) {
	studentID, ok := r.Context().Value(studentIDKey).(int64)
	if !ok {
		return 0, fmt.Errorf("student ID not found in request context")
	}
	return studentID, nil
}
