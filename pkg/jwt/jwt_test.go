package jwt

import (
	"testing"
	"time"

	"microblog/backend/internal/config"
)

func setTestSecret(t *testing.T, secret string) {
	t.Helper()
	oldConfig := config.AppConfig
	config.AppConfig = &config.Config{JWTSecret: secret}
	t.Cleanup(func() { config.AppConfig = oldConfig })
}

func TestGenerateAndParseToken(t *testing.T) {
	setTestSecret(t, "test-secret")

	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken() returned empty token")
	}

	userID, expiresAt, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if userID != 42 {
		t.Errorf("ParseToken() userID = %d, want 42", userID)
	}
	if !expiresAt.After(time.Now()) {
		t.Errorf("ParseToken() expiry %v should be in the future", expiresAt)
	}
}

func TestParseTokenRejectsInvalid(t *testing.T) {
	setTestSecret(t, "test-secret")

	validToken, err := GenerateToken(1)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"tampered", validToken + "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ParseToken(tt.token); err == nil {
				t.Errorf("ParseToken(%q) should fail", tt.token)
			}
		})
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	setTestSecret(t, "first-secret")
	token, err := GenerateToken(7)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	config.AppConfig = &config.Config{JWTSecret: "second-secret"}
	if _, _, err := ParseToken(token); err == nil {
		t.Error("ParseToken() should reject a token signed with a different secret")
	}
}
