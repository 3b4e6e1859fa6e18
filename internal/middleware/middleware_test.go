package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Jahid-Al-Hasan/EduSync-server/internal/auth"
	"github.com/Jahid-Al-Hasan/EduSync-server/internal/models"
)

func okHandler(sawPrincipal *Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sawPrincipal != nil {
			if p, ok := PrincipalFrom(r.Context()); ok {
				*sawPrincipal = p
			}
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateNoCredential(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Minute)
	handler := Authenticate(tokens, auth.NewGoogleVerifier(""))(okHandler(nil))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/user", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticateValidCookie(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Minute)
	token, err := tokens.GenerateJWT("student@example.com")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	var saw Principal
	handler := Authenticate(tokens, auth.NewGoogleVerifier(""))(okHandler(&saw))

	req := httptest.NewRequest("GET", "/api/user", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if saw.Email != "student@example.com" {
		t.Fatalf("expected principal email to reach the handler, got %q", saw.Email)
	}
}

func TestAuthenticateInvalidCookie(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Minute)
	handler := Authenticate(tokens, auth.NewGoogleVerifier(""))(okHandler(nil))

	req := httptest.NewRequest("GET", "/api/user", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "garbage"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticateForeignCookie(t *testing.T) {
	valid := auth.NewTokenService("secret", time.Minute)
	foreign := auth.NewTokenService("other-secret", time.Minute)
	token, err := foreign.GenerateJWT("student@example.com")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	handler := Authenticate(valid, auth.NewGoogleVerifier(""))(okHandler(nil))

	req := httptest.NewRequest("GET", "/api/user", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func staticResolver(role models.UserRole, err error) RoleResolver {
	return func(ctx context.Context, email string) (models.UserRole, error) {
		return role, err
	}
}

func withPrincipal(req *http.Request, email string) *http.Request {
	return req.WithContext(WithPrincipal(req.Context(), Principal{Email: email}))
}

func TestRequireRoleNoPrincipal(t *testing.T) {
	handler := RequireRole(staticResolver(models.RoleTutor, nil), models.RoleTutor)(okHandler(nil))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/create-session", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 before any role check, got %d", rec.Code)
	}
}

func TestRequireRoleUserNotFound(t *testing.T) {
	handler := RequireRole(staticResolver("", ErrUserNotFound), models.RoleTutor)(okHandler(nil))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, withPrincipal(httptest.NewRequest("POST", "/api/create-session", nil), "ghost@example.com"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", rec.Code)
	}
}

func TestRequireRoleWrongRole(t *testing.T) {
	handler := RequireRole(staticResolver(models.RoleStudent, nil), models.RoleTutor)(okHandler(nil))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, withPrincipal(httptest.NewRequest("POST", "/api/create-session", nil), "student@example.com"))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for wrong role, got %d", rec.Code)
	}
}

func TestRequireRoleMatch(t *testing.T) {
	var saw Principal
	handler := RequireRole(staticResolver(models.RoleTutor, nil), models.RoleTutor)(okHandler(&saw))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, withPrincipal(httptest.NewRequest("POST", "/api/create-session", nil), "tutor@example.com"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if saw.Email != "tutor@example.com" {
		t.Fatalf("expected principal to pass through the gate, got %q", saw.Email)
	}
}

func TestRequireRoleResolverError(t *testing.T) {
	handler := RequireRole(staticResolver("", errors.New("connection reset")), models.RoleAdmin)(okHandler(nil))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, withPrincipal(httptest.NewRequest("GET", "/api/users", nil), "admin@example.com"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for resolver failure, got %d", rec.Code)
	}
}
