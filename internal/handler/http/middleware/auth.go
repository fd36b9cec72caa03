package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/eldar-magrafta/hilan-calculator/internal/handler/http/response"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/jwt"
)

type contextKey string

const (
	sessionIDKey    contextKey = "session_id"
	sessionTokenKey contextKey = "session_token"
)

// SessionRequired admits requests carrying a valid, unrevoked session token.
// It must run after jwtauth.Verifier.
func SessionRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Invalid session token")
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != jwt.TypeSession || !ok {
				response.Unauthorized(w, "Invalid session token")
				return
			}

			sessionID, ok := claims["session_id"].(string)
			if !ok || sessionID == "" {
				response.Unauthorized(w, "Invalid session token")
				return
			}

			raw := jwtauth.TokenFromHeader(r)
			if jwtService.IsTokenRevoked(raw) {
				response.Unauthorized(w, "Session token revoked")
				return
			}

			ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
			ctx = context.WithValue(ctx, sessionTokenKey, raw)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// SessionIDFromContext returns the session admitted by SessionRequired.
func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey).(string)
	return id
}

// SessionTokenFromContext returns the raw bearer token of the request.
func SessionTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(sessionTokenKey).(string)
	return token
}
