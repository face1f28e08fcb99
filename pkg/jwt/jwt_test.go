package jwt

import (
	"testing"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken(secret, "jane@example.com", "user-1")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims["user_id"] != "user-1" {
		t.Fatalf("user_id claim = %v, want user-1", claims["user_id"])
	}
	if claims["email"] != "jane@example.com" {
		t.Fatalf("email claim = %v, want jane@example.com", claims["email"])
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken([]byte("secret-a"), "jane@example.com", "user-1")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ValidateToken([]byte("secret-b"), token); err == nil {
		t.Fatalf("expected validation to fail with the wrong secret")
	}
}
