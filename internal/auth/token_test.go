package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	service := NewTokenService("secret", time.Minute)

	token, err := service.GenerateJWT("student@example.com")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	claims, err := service.ValidateJWT(token)
	if err != nil {
		t.Fatalf("validate error: %v", err)
	}
	if claims.Email != "student@example.com" {
		t.Fatalf("unexpected email claim: %s", claims.Email)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret", time.Minute).GenerateJWT("student@example.com")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	if _, err := NewTokenService("other", time.Minute).ValidateJWT(token); err == nil {
		t.Fatalf("expected token signed with a different secret to be rejected")
	}
}

func TestTokenExpired(t *testing.T) {
	service := &TokenService{secret: []byte("secret"), ttl: -time.Minute}

	token, err := service.GenerateJWT("student@example.com")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	if _, err := service.ValidateJWT(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestTokenGarbage(t *testing.T) {
	service := NewTokenService("secret", time.Minute)
	if _, err := service.ValidateJWT("not-a-token"); err == nil {
		t.Fatalf("expected malformed token to be rejected")
	}
}

func TestDefaultTTL(t *testing.T) {
	service := NewTokenService("secret", 0)
	if service.TTL() != 24*time.Hour {
		t.Fatalf("expected default TTL of 24h, got %s", service.TTL())
	}
}
