package utils

import (
	"testing"
	"time"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.GenerateRoleToken("OWNER")
	if err != nil {
		t.Fatalf("GenerateRoleToken() error = %v", err)
	}

	claims, err := m.ValidateRoleToken(token)
	if err != nil {
		t.Fatalf("ValidateRoleToken() error = %v", err)
	}
	if claims.Role != "OWNER" {
		t.Errorf("Role = %q, want %q", claims.Role, "OWNER")
	}
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	other := NewJWTManager("other-secret", time.Hour)
	expired := NewJWTManager("test-secret", -time.Minute)

	foreign, _ := other.GenerateRoleToken("OWNER")
	stale, _ := expired.GenerateRoleToken("OWNER")

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", foreign},
		{"expired", stale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.ValidateRoleToken(tt.token); err == nil {
				t.Errorf("ValidateRoleToken(%s) expected error", tt.name)
			}
		})
	}
}
