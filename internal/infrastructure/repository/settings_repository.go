package repository

import (
	"context"
	"errors"

	"github.com/bacdepzai/orderdesk/internal/domain/entity"
	domainRepo "github.com/bacdepzai/orderdesk/internal/domain/repository"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*entity.ShopSettings, error) {
	var settings entity.ShopSettings
	err := r.db.WithContext(ctx).First(&settings, "id = ?", entity.ShopSettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &settings, err
}

func (r *settingsRepository) Save(ctx context.Context, settings *entity.ShopSettings) error {
	settings.ID = entity.ShopSettingsID
	return r.db.WithContext(ctx).Save(settings).Error
}

func (r *settingsRepository) Delete(ctx context.Context) error {
	return r.db.WithContext(ctx).Delete(&entity.ShopSettings{}, "id = ?", entity.ShopSettingsID).Error
}
