package service

import (
	"context"
	"log"
	"regexp"
	"time"

	"github.com/bacdepzai/orderdesk/internal/domain/entity"
	"github.com/bacdepzai/orderdesk/internal/domain/enum"
	"github.com/bacdepzai/orderdesk/internal/domain/repository"
	"github.com/bacdepzai/orderdesk/pkg/apperror"
	"github.com/bacdepzai/orderdesk/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

var pinPattern = regexp.MustCompile(`^[0-9]{4,6}$`)

// AuthService gates the owner role behind a PIN
type AuthService struct {
	settingsRepo repository.SettingsRepository
	jwtManager   *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(settingsRepo repository.SettingsRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		settingsRepo: settingsRepo,
		jwtManager:   jwtManager,
	}
}

// UnlockOutput represents the unlock result
type UnlockOutput struct {
	Token      string
	Role       enum.Role
	ExpiresAt  time.Time
	PinCreated bool
}

// AuthStatus describes the caller's role and whether a PIN exists
type AuthStatus struct {
	Role   enum.Role `json:"role"`
	PinSet bool      `json:"pin_set"`
}

func validatePin(pin string) error {
	if !pinPattern.MatchString(pin) {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "pin", Message: "PIN must be 4 to 6 digits"},
		})
	}
	return nil
}

// Unlock grants the owner role. The first unlock stores the PIN; later ones
// must match it.
func (s *AuthService) Unlock(ctx context.Context, pin string) (*UnlockOutput, error) {
	if err := validatePin(pin); err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		log.Printf("Settings load failed: %v", err)
		return nil, apperror.NewEnvironmentError("Settings storage is unavailable")
	}

	created := false
	if !settings.HasPin() {
		if settings == nil {
			settings = defaultSettings()
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperror.ErrInternalServer
		}
		settings.OwnerPinHash = string(hash)
		if err := s.settingsRepo.Save(ctx, settings); err != nil {
			log.Printf("Settings save failed: %v", err)
			return nil, apperror.NewEnvironmentError("Settings storage is unavailable")
		}
		created = true
		log.Println("Owner PIN created")
	} else if err := bcrypt.CompareHashAndPassword([]byte(settings.OwnerPinHash), []byte(pin)); err != nil {
		return nil, apperror.ErrInvalidPin
	}

	token, err := s.jwtManager.GenerateRoleToken(enum.RoleOwner.String())
	if err != nil {
		return nil, apperror.ErrInternalServer
	}

	return &UnlockOutput{
		Token:      token,
		Role:       enum.RoleOwner,
		ExpiresAt:  time.Now().Add(s.jwtManager.Expiry()),
		PinCreated: created,
	}, nil
}

// ChangePinInput represents the change PIN input
type ChangePinInput struct {
	CurrentPin string
	NewPin     string
}

// ChangePin replaces the owner PIN after verifying the current one.
func (s *AuthService) ChangePin(ctx context.Context, role enum.Role, input *ChangePinInput) error {
	if !role.IsOwner() {
		return apperror.ErrOwnerOnly
	}
	if err := validatePin(input.NewPin); err != nil {
		return err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		log.Printf("Settings load failed: %v", err)
		return apperror.NewEnvironmentError("Settings storage is unavailable")
	}
	if !settings.HasPin() {
		return apperror.NewBadRequestError("No PIN has been set yet")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(settings.OwnerPinHash), []byte(input.CurrentPin)); err != nil {
		return apperror.ErrInvalidPin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPin), bcrypt.DefaultCost)
	if err != nil {
		return apperror.ErrInternalServer
	}
	settings.OwnerPinHash = string(hash)
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		log.Printf("Settings save failed: %v", err)
		return apperror.NewEnvironmentError("Settings storage is unavailable")
	}
	return nil
}

// Status reports the caller's role and whether a PIN was set.
func (s *AuthService) Status(ctx context.Context, role enum.Role) (*AuthStatus, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		log.Printf("Settings load failed: %v", err)
		return nil, apperror.NewEnvironmentError("Settings storage is unavailable")
	}
	return &AuthStatus{Role: role, PinSet: settings.HasPin()}, nil
}

// RoleFromToken returns the role carried by token, or SALE when the token is
// missing or invalid.
func (s *AuthService) RoleFromToken(token string) enum.Role {
	if token == "" {
		return enum.RoleSale
	}
	claims, err := s.jwtManager.ValidateRoleToken(token)
	if err != nil {
		return enum.RoleSale
	}
	return enum.ParseRole(claims.Role)
}

func defaultSettings() *entity.ShopSettings {
	return &entity.ShopSettings{ShowCostOnScreen: true}
}
