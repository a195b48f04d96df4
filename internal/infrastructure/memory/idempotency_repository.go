package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bacdepzai/orderdesk/internal/domain/entity"
	domainRepo "github.com/bacdepzai/orderdesk/internal/domain/repository"
	"github.com/google/uuid"
)

type idempotencyRepository struct {
	mu   sync.Mutex
	keys map[string]entity.IdempotencyKey
}

func NewIdempotencyRepository() domainRepo.IdempotencyRepository {
	return &idempotencyRepository{keys: make(map[string]entity.IdempotencyKey)}
}

func idemKey(key, endpoint string) string {
	return endpoint + "|" + key
}

func (r *idempotencyRepository) GetByKey(_ context.Context, key, endpoint string) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ikey, ok := r.keys[idemKey(key, endpoint)]
	if !ok {
		return nil, nil
	}
	return &ikey, nil
}

func (r *idempotencyRepository) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	if ikey.ID == uuid.Nil {
		ikey.ID = uuid.New()
	}
	if ikey.CreatedAt.IsZero() {
		ikey.CreatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[idemKey(ikey.Key, ikey.Endpoint)] = *ikey
	return nil
}

func (r *idempotencyRepository) DeleteExpired(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k, v := range r.keys {
		if v.IsExpired() {
			delete(r.keys, k)
		}
	}
	return nil
}
