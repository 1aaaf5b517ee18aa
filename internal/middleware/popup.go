package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vaultpass/passgen/internal/crypto"
)

type contextKey string

const popupClaimsKey contextKey = "popupClaims"

// PopupAuth returns middleware that validates a popup session token from the
// Authorization header and stores its claims in the request context.
func PopupAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				writeJSONError(w, http.StatusUnauthorized, "invalid authorization format")
				return
			}

			claims, err := crypto.ValidatePopupToken(token, secret)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired popup session")
				return
			}

			ctx := context.WithValue(r.Context(), popupClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PopupClaimsFromContext returns the popup session claims stored by PopupAuth.
func PopupClaimsFromContext(ctx context.Context) (*crypto.PopupClaims, bool) {
	claims, ok := ctx.Value(popupClaimsKey).(*crypto.PopupClaims)
	return claims, ok && claims != nil
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
