package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Jahid-Al-Hasan/EduSync-server/internal/models"
)

// ErrUserNotFound reports that no user record exists for a principal's
// email. RequireRole surfaces it as 404, distinct from a wrong role's 403.
var ErrUserNotFound = errors.New("user not found")

// RoleResolver looks up the stored role for a verified principal email.
type RoleResolver func(ctx context.Context, email string) (models.UserRole, error)

// MongoRoleResolver resolves roles against the users collection.
func MongoRoleResolver(users *mongo.Collection) RoleResolver {
	return func(ctx context.Context, email string) (models.UserRole, error) {
		var user models.User
		err := users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			return "", ErrUserNotFound
		}
		if err != nil {
			return "", err
		}
		return user.Role, nil
	}
}

// RequireRole gates a route to principals whose stored role matches role.
// Authenticate must already have run; the chain is always authenticate,
// then authorize, then handle.
func RequireRole(resolve RoleResolver, role models.UserRole) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFrom(r.Context())
			if !ok {
				respondError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			defer cancel()

			stored, err := resolve(ctx, principal.Email)
			if err == ErrUserNotFound {
				respondError(w, http.StatusNotFound, "User not found")
				return
			}
			if err != nil {
				log.Printf("role lookup failed for %s: %v", principal.Email, err)
				respondError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			if stored != role {
				respondError(w, http.StatusForbidden, fmt.Sprintf("Access denied - %s privileges required", role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
