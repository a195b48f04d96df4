package service

import (
	"context"
	"log"

	"github.com/bacdepzai/orderdesk/internal/domain/entity"
	"github.com/bacdepzai/orderdesk/internal/domain/enum"
	"github.com/bacdepzai/orderdesk/internal/domain/repository"
	"github.com/bacdepzai/orderdesk/pkg/apperror"
)

// SettingsService handles the owner preferences
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
	}
}

// GetSettings returns the stored settings or the defaults when none exist.
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.ShopSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		log.Printf("Settings load failed: %v", err)
		return nil, apperror.NewEnvironmentError("Settings storage is unavailable")
	}
	if settings == nil {
		settings = defaultSettings()
	}
	return settings, nil
}

// ShowCost reports whether cost figures may be shown to role.
func (s *SettingsService) ShowCost(ctx context.Context, role enum.Role) bool {
	if !role.IsOwner() {
		return false
	}
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return true
	}
	return settings.ShowCostOnScreen
}

// UpdateSettingsInput represents the input for updating settings
type UpdateSettingsInput struct {
	ShowCostOnScreen *bool
}

// UpdateSettings updates the owner preferences. Owner only.
func (s *SettingsService) UpdateSettings(ctx context.Context, role enum.Role, input *UpdateSettingsInput) (*entity.ShopSettings, error) {
	if !role.IsOwner() {
		return nil, apperror.ErrOwnerOnly
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if input.ShowCostOnScreen != nil {
		settings.ShowCostOnScreen = *input.ShowCostOnScreen
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		log.Printf("Settings save failed: %v", err)
		return nil, apperror.NewEnvironmentError("Settings storage is unavailable")
	}
	return settings, nil
}

// DeleteSettings removes the PIN and preferences.
func (s *SettingsService) DeleteSettings(ctx context.Context) error {
	if err := s.settingsRepo.Delete(ctx); err != nil {
		log.Printf("Settings delete failed: %v", err)
		return apperror.NewEnvironmentError("Settings storage is unavailable")
	}
	return nil
}
