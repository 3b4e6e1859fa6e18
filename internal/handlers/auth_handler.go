package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Jahid-Al-Hasan/EduSync-server/internal/auth"
)

type AuthHandler struct {
	tokens *auth.TokenService
}

func NewAuthHandler(tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// GenerateToken mints a session token for the posted email and sets it as an
// httpOnly cookie. The email is client-asserted here; every protected route
// still re-checks it against the stored user record.
func (h *AuthHandler) GenerateToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "Email is required")
		return
	}

	token, err := h.tokens.GenerateJWT(req.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "JWT creation failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(h.tokens.TTL()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})

	respondJSON(w, http.StatusOK, map[string]string{"message": "JWT generated successfully"})
}

// ClearCookie logs the caller out by expiring the session cookie.
func (h *AuthHandler) ClearCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})

	respondJSON(w, http.StatusOK, map[string]string{"message": "Cookie cleared successfully"})
}
