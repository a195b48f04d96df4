package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/bacdepzai/orderdesk/internal/domain/enum"
	"github.com/bacdepzai/orderdesk/internal/infrastructure/memory"
	"github.com/bacdepzai/orderdesk/pkg/utils"
)

func newAuthService() *AuthService {
	return NewAuthService(memory.NewSettingsRepository(), utils.NewJWTManager("test-secret", time.Hour))
}

func TestAuthService_Unlock(t *testing.T) {
	ctx := context.Background()
	s := newAuthService()

	status, _ := s.Status(ctx, enum.RoleSale)
	if status.PinSet {
		t.Fatal("fresh shop should have no PIN")
	}

	first, err := s.Unlock(ctx, "1234")
	if err != nil {
		t.Fatalf("first Unlock() error = %v", err)
	}
	if !first.PinCreated || first.Role != enum.RoleOwner {
		t.Errorf("first unlock = %+v", first)
	}
	if s.RoleFromToken(first.Token) != enum.RoleOwner {
		t.Error("issued token should carry the owner role")
	}

	second, err := s.Unlock(ctx, "1234")
	if err != nil {
		t.Fatalf("second Unlock() error = %v", err)
	}
	if second.PinCreated {
		t.Error("second unlock must not create a PIN")
	}

	_, err = s.Unlock(ctx, "9999")
	assertAppError(t, err, http.StatusUnauthorized)
}

func TestAuthService_UnlockRejectsMalformedPin(t *testing.T) {
	tests := []string{"", "12", "1234567", "12a4", " 1234"}

	s := newAuthService()
	for _, pin := range tests {
		t.Run(pin, func(t *testing.T) {
			_, err := s.Unlock(context.Background(), pin)
			assertAppError(t, err, http.StatusUnprocessableEntity)
		})
	}
}

func TestAuthService_ChangePin(t *testing.T) {
	ctx := context.Background()
	s := newAuthService()
	s.Unlock(ctx, "1234")

	err := s.ChangePin(ctx, enum.RoleSale, &ChangePinInput{CurrentPin: "1234", NewPin: "5678"})
	assertAppError(t, err, http.StatusForbidden)

	err = s.ChangePin(ctx, enum.RoleOwner, &ChangePinInput{CurrentPin: "0000", NewPin: "5678"})
	assertAppError(t, err, http.StatusUnauthorized)

	if err := s.ChangePin(ctx, enum.RoleOwner, &ChangePinInput{CurrentPin: "1234", NewPin: "567890"}); err != nil {
		t.Fatalf("ChangePin() error = %v", err)
	}
	if _, err := s.Unlock(ctx, "567890"); err != nil {
		t.Errorf("new PIN rejected: %v", err)
	}
	_, err = s.Unlock(ctx, "1234")
	assertAppError(t, err, http.StatusUnauthorized)
}

func TestAuthService_RoleFromToken(t *testing.T) {
	s := newAuthService()
	other := utils.NewJWTManager("other-secret", time.Hour)
	forged, _ := other.GenerateRoleToken(enum.RoleOwner.String())

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"wrong secret", forged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.RoleFromToken(tt.token); got != enum.RoleSale {
				t.Errorf("RoleFromToken() = %s, want SALE", got)
			}
		})
	}
}
