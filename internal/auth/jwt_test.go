package auth

import (
	"testing"
	"time"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := "test-secret"
	userID := "test-user-id"
	role := "USER"

	token, err := GenerateToken(secret, userID, role, 24*time.Hour)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if token == "" {
		t.Error("Expected token to be generated")
	}

	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("Expected no error parsing token, got %v", err)
	}

	if claims.Sub != userID {
		t.Errorf("Expected user ID %s, got %s", userID, claims.Sub)
	}
	if claims.Role != role {
		t.Errorf("Expected role %s, got %s", role, claims.Role)
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	_, err := ParseToken("test-secret", "invalid.token.here")
	if err == nil {
		t.Error("Expected error for invalid token")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("test-secret", "user", "USER", time.Hour)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err = ParseToken("other-secret", token)
	if err == nil {
		t.Error("Expected error for token signed with a different secret")
	}
}

func TestParseToken_ExpiredToken(t *testing.T) {
	token, err := GenerateToken("test-secret", "user", "USER", -time.Hour)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err = ParseToken("test-secret", token)
	if err == nil {
		t.Error("Expected error for expired token")
	}
}
