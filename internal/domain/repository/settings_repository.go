package repository

import (
	"context"

	"github.com/bacdepzai/orderdesk/internal/domain/entity"
)

// SettingsRepository defines the interface for settings data access
type SettingsRepository interface {
	// Get returns nil, nil before anything was saved.
	Get(ctx context.Context) (*entity.ShopSettings, error)
	Save(ctx context.Context, settings *entity.ShopSettings) error
	Delete(ctx context.Context) error
}
