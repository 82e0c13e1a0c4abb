package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	handlers "studiosite/internal/handler"
	"studiosite/internal/session"
	"studiosite/internal/token"
)

// TokenParser is satisfied by *token.Manager.
type TokenParser interface {
	Parse(tokenString string) (*token.Claims, error)
}

// bearerToken returns the token from an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	scheme, tokenString, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	tokenString = strings.TrimSpace(tokenString)
	return tokenString, tokenString != ""
}

func identityFromClaims(claims *token.Claims) session.Identity {
	return session.Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}
}

// RequireAuth rejects requests without a valid access token.
func RequireAuth(tokens TokenParser) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				handlers.WriteError(w, "Access token required", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Parse(tokenString)
			if err != nil {
				if errors.Is(err, token.ErrExpiredToken) {
					handlers.WriteError(w, "Token expired", http.StatusUnauthorized)
					return
				}
				handlers.WriteError(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := session.WithIdentity(r.Context(), identityFromClaims(claims))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the identity when a valid token is present. Bad tokens are ignored.
func OptionalAuth(tokens TokenParser) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenString, ok := bearerToken(r); ok {
				if claims, err := tokens.Parse(tokenString); err == nil {
					r = r.WithContext(session.WithIdentity(r.Context(), identityFromClaims(claims)))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(allowedRoles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := session.FromContext(r.Context())
			if !ok {
				handlers.WriteError(w, "Access token required", http.StatusUnauthorized)
				return
			}

			if !slices.Contains(allowedRoles, identity.Role) {
				handlers.WriteError(w, "Insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
