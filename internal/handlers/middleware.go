package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"photoshare-api/internal/repository"
	"photoshare-api/internal/responses"
	"photoshare-api/internal/services"
	"photoshare-api/internal/utils"

	"golang.org/x/time/rate"
)

type contextKey string

const userClaimsKey contextKey = "userClaims"

// JWTMiddleware guards protected routes. A missing token is 401; a present
// but unverifiable one is 403.
func JWTMiddleware(jwtUtil *utils.JWTUtil) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				responses.SendErrorResponse(w, http.StatusUnauthorized, "Authorization header is required")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				responses.SendErrorResponse(w, http.StatusForbidden, "Bearer token not found")
				return
			}

			claims, err := jwtUtil.ValidateToken(tokenString)
			if err != nil {
				responses.SendErrorResponse(w, http.StatusForbidden, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func callerClaims(r *http.Request) (*utils.Claims, bool) {
	claims, ok := r.Context().Value(userClaimsKey).(*utils.Claims)
	return claims, ok
}

func RateLimitMiddleware(limiter *rate.Limiter) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				responses.SendErrorResponse(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
				return
			}
			next(w, r)
		}
	}
}

// writeError maps service and store errors onto the API's status codes.
// Anything unrecognized is a 500 with no internal detail.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrForbidden):
		responses.SendErrorResponse(w, http.StatusForbidden, "You do not have permission to perform this action")
	case errors.Is(err, services.ErrInvalidCredential):
		responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid email or password")
	case errors.Is(err, repository.ErrDuplicateEmail):
		responses.SendErrorResponse(w, http.StatusBadRequest, "Email already exists")
	case errors.Is(err, repository.ErrNotFound):
		responses.SendErrorResponse(w, http.StatusNotFound, "Resource not found")
	default:
		responses.SendErrorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}
