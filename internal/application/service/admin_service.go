package service

import (
	"context"
	"log"

	"github.com/bacdepzai/orderdesk/internal/domain/enum"
	"github.com/bacdepzai/orderdesk/pkg/apperror"
)

// Resettable is anything holding state that a full reset must wipe.
type Resettable interface {
	ClearHistory()
}

// AdminService wipes all shop data
type AdminService struct {
	orders   *OrderService
	drafts   *DraftService
	settings *SettingsService
	extra    []Resettable
}

// NewAdminService creates a new admin service
func NewAdminService(orders *OrderService, drafts *DraftService, settings *SettingsService, extra ...Resettable) *AdminService {
	return &AdminService{orders: orders, drafts: drafts, settings: settings, extra: extra}
}

// Reset deletes the whole history, the draft, the PIN and the preferences.
// Owner only.
func (s *AdminService) Reset(ctx context.Context, role enum.Role) error {
	if !role.IsOwner() {
		return apperror.ErrOwnerOnly
	}

	if err := s.orders.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.drafts.Clear(ctx); err != nil {
		return err
	}
	if err := s.settings.DeleteSettings(ctx); err != nil {
		return err
	}
	for _, r := range s.extra {
		r.ClearHistory()
	}

	log.Println("All shop data was reset")
	return nil
}
