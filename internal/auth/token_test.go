package auth

import (
	"errors"
	"testing"
	"time"
)

func TestSignAndVerify(t *testing.T) {
	token, expiresAt, err := Sign("secret", "profile-1", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("expected future expiry, got %v", expiresAt)
	}
	sub, err := Verify("secret", token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sub != "profile-1" {
		t.Fatalf("subject = %q, want profile-1", sub)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, _, err := Sign("secret", "profile-1", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := Verify("other", token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	token, _, err := Sign("secret", "profile-1", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := Verify("secret", token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSignRequiresSecret(t *testing.T) {
	if _, _, err := Sign("", "x", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
