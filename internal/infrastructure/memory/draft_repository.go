package memory

import (
	"context"
	"sync"

	"github.com/bacdepzai/orderdesk/internal/domain/entity"
	domainRepo "github.com/bacdepzai/orderdesk/internal/domain/repository"
)

type draftRepository struct {
	mu    sync.RWMutex
	draft *entity.Order
}

func NewDraftRepository() domainRepo.DraftRepository {
	return &draftRepository{}
}

func (r *draftRepository) Load(_ context.Context) (*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.draft.Clone(), nil
}

func (r *draftRepository) Store(_ context.Context, draft *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draft = draft.Clone()
	return nil
}

func (r *draftRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draft = nil
	return nil
}
