package utils

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	tok, err := GenerateJWT(secret, "617588258afc4f9aae4e8df5", "staff")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	claims, err := ValidateJWT(secret, tok)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != "617588258afc4f9aae4e8df5" || claims.Role != "staff" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	tok, err := GenerateJWT([]byte("a"), "u1", "staff")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ValidateJWT([]byte("b"), tok); err == nil {
		t.Error("expected error for token signed with another secret")
	}
}

func TestJWT_NoSecret(t *testing.T) {
	if _, err := GenerateJWT(nil, "u1", "staff"); !errors.Is(err, ErrNoSecret) {
		t.Errorf("GenerateJWT error = %v, want ErrNoSecret", err)
	}
	if _, err := ValidateJWT(nil, "x.y.z"); !errors.Is(err, ErrNoSecret) {
		t.Errorf("ValidateJWT error = %v, want ErrNoSecret", err)
	}
}

func TestPasswordHash(t *testing.T) {
	PasswordCost = bcrypt.MinCost
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPasswordHash("correct horse", hash) {
		t.Error("expected password to match")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("expected mismatch for wrong password")
	}
}
