package jwt

import (
	"testing"
	"time"
)

func TestJWTManager_GenerateAndVerify(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.Generate("user-1", "Ash", "ash@example.com")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "user-1")
	}
	if claims.FirstName != "Ash" {
		t.Errorf("FirstName = %q, want %q", claims.FirstName, "Ash")
	}
	if claims.Email != "ash@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "ash@example.com")
	}
}

func TestJWTManager_WrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	other := NewJWTManager("different-secret", time.Hour)

	token, err := manager.Generate("user-1", "Ash", "ash@example.com")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if _, err := other.Verify(token); err == nil {
		t.Error("Verify accepted a token signed with a different secret")
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.Generate("user-1", "Ash", "ash@example.com")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if _, err := manager.Verify(token); err == nil {
		t.Error("Verify accepted an expired token")
	}
}

func TestJWTManager_Garbage(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	if _, err := manager.Verify("not-a-token"); err == nil {
		t.Error("Verify accepted garbage input")
	}
}
