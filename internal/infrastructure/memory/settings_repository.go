package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bacdepzai/orderdesk/internal/domain/entity"
	domainRepo "github.com/bacdepzai/orderdesk/internal/domain/repository"
)

type settingsRepository struct {
	mu       sync.RWMutex
	settings *entity.ShopSettings
}

func NewSettingsRepository() domainRepo.SettingsRepository {
	return &settingsRepository{}
}

func (r *settingsRepository) Get(_ context.Context) (*entity.ShopSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.settings == nil {
		return nil, nil
	}
	s := *r.settings
	return &s, nil
}

func (r *settingsRepository) Save(_ context.Context, settings *entity.ShopSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	settings.ID = entity.ShopSettingsID
	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = now
	}
	settings.UpdatedAt = now
	s := *settings
	r.settings = &s
	return nil
}

func (r *settingsRepository) Delete(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = nil
	return nil
}
