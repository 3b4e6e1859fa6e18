package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/Jahid-Al-Hasan/EduSync-server/internal/auth"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the verified identity attached to a request after successful
// authentication.
type Principal struct {
	Email string
	UID   string
}

// PrincipalFrom returns the principal attached by Authenticate, if any.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// WithPrincipal attaches a principal to the context. Exposed for handler
// tests.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// Authenticate verifies the session cookie, or a bearer ID token when the
// Google verifier is configured, and attaches the verified principal to the
// request context. It never resolves roles; that is RequireRole's job.
func Authenticate(tokens *auth.TokenService, google *auth.GoogleVerifier) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie("token"); err == nil {
				claims, err := tokens.ValidateJWT(cookie.Value)
				if err != nil {
					respondError(w, http.StatusUnauthorized, "Unauthorized access!")
					return
				}
				ctx := WithPrincipal(r.Context(), Principal{Email: claims.Email})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if google != nil && google.Enabled() {
				header := r.Header.Get("Authorization")
				if !strings.HasPrefix(header, "Bearer ") {
					respondError(w, http.StatusUnauthorized, "Unauthorized access!")
					return
				}
				email, uid, err := google.Verify(r.Context(), strings.TrimPrefix(header, "Bearer "))
				if err != nil {
					respondError(w, http.StatusForbidden, "Invalid or expired token")
					return
				}
				ctx := WithPrincipal(r.Context(), Principal{Email: email, UID: uid})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			respondError(w, http.StatusUnauthorized, "Unauthorized access!")
		})
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
