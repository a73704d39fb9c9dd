package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ndewijer/investment-tracker-backend/internal/api/response"
)

type ownerKey struct{}

// WithOwner returns a copy of ctx carrying ownerID.
func WithOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerKey{}, ownerID)
}

// OwnerID returns the authenticated owner id stored by Auth, or "" when absent.
func OwnerID(ctx context.Context) string {
	id, _ := ctx.Value(ownerKey{}).(string)
	return id
}

// Auth authenticates requests with an HS256 bearer token and stores its
// subject claim as the owner id.
//
// With an empty secret no token is checked and every request acts as
// devOwnerID. That mode is only meant for local development.
//
// Returns 401 Unauthorized when the header is missing, the token does not
// verify, or it carries no subject.
func Auth(secret, devOwnerID string) func(http.Handler) http.Handler {
	key := []byte(secret)
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), devOwnerID)))
				return
			}

			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
				return
			}

			token, err := parser.ParseWithClaims(strings.TrimSpace(raw), &jwt.RegisteredClaims{}, func(*jwt.Token) (interface{}, error) {
				return key, nil
			})
			if err != nil {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid token")
				return
			}

			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Token has no subject")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), subject)))
		})
	}
}
