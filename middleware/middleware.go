package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/akashsingh062/Smart-Ai-Todo/logging"
	"github.com/akashsingh062/Smart-Ai-Todo/services"
	"github.com/akashsingh062/Smart-Ai-Todo/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey string

const (
	claimsKey contextKey = "claims"
	tokenKey  contextKey = "token"
)

// JWTAuthMiddleware resolves the bearer token to a user identity and stores
// it in the request context. Revoked tokens are rejected the same way as
// invalid ones.
func JWTAuthMiddleware(blacklist services.TokenBlacklist) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logging.Logger.Warnf("Event ID: JWT_AUTH_MISSING_HEADER, Description: Authorization header missing for request to %s %s", r.Method, r.URL.Path)
				respondUnauthorized(w, "Authorization header missing")
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenStr == authHeader {
				logging.Logger.Warnf("Event ID: JWT_AUTH_BEARER_PREFIX_MISSING, Description: Bearer prefix missing in Authorization header for request to %s %s", r.Method, r.URL.Path)
				respondUnauthorized(w, "Invalid authorization header")
				return
			}

			claims, err := utils.ValidateToken(tokenStr)
			if err != nil {
				logging.Logger.Warnf("Event ID: JWT_AUTH_INVALID_TOKEN, Description: Invalid token provided for request to %s %s: %v", r.Method, r.URL.Path, err)
				respondUnauthorized(w, "Invalid token")
				return
			}

			revoked, err := blacklist.Contains(r.Context(), tokenStr)
			if err != nil {
				logging.Logger.Errorf("Event ID: JWT_AUTH_BLACKLIST_CHECK_FAILED, Description: Token blacklist lookup failed for request to %s %s: %v", r.Method, r.URL.Path, err)
				respondUnauthorized(w, "Invalid token")
				return
			}
			if revoked {
				logging.Logger.Warnf("Event ID: JWT_AUTH_REVOKED_TOKEN, Description: Revoked token presented for request to %s %s", r.Method, r.URL.Path)
				respondUnauthorized(w, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			ctx = context.WithValue(ctx, tokenKey, tokenStr)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the resolved identity placed by the middleware.
func ClaimsFromContext(ctx context.Context) (*utils.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*utils.Claims)
	return claims, ok
}

// TokenFromContext returns the raw bearer token, used by logout to revoke it.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}

// UserIDFromContext decodes the authenticated user's object id.
func UserIDFromContext(ctx context.Context) (primitive.ObjectID, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return userID, true
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
