// Package memory keeps history and settings in process memory. It backs the
// service when STORAGE_DRIVER=memory and the service tests.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/bacdepzai/orderdesk/internal/domain/entity"
	domainRepo "github.com/bacdepzai/orderdesk/internal/domain/repository"
	"github.com/google/uuid"
)

type orderRepository struct {
	mu     sync.RWMutex
	orders []*entity.Order // newest first
}

// NewOrderRepository creates an empty in-memory history.
func NewOrderRepository() domainRepo.OrderRepository {
	return &orderRepository{}
}

func (r *orderRepository) Append(_ context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		order.Items[i].Position = i
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append([]*entity.Order{order.Clone()}, r.orders...)
	return nil
}

func (r *orderRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID == id {
			return o.Clone(), nil
		}
	}
	return nil, nil
}

func (r *orderRepository) List(_ context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(params.Search))
	var matched []entity.Order
	for _, o := range r.orders {
		if search != "" &&
			!strings.Contains(strings.ToLower(o.CustomerName), search) &&
			!strings.Contains(o.Phone, search) {
			continue
		}
		if params.DatePrefix != "" && !strings.HasPrefix(o.Date, params.DatePrefix) {
			continue
		}
		matched = append(matched, *o.Clone())
	}

	total := int64(len(matched))
	if params.Pagination != nil {
		params.Pagination.Validate()
		start, end := params.Pagination.Window(len(matched))
		matched = matched[start:end]
	}
	return matched, total, nil
}

func (r *orderRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, o := range r.orders {
		if o.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *orderRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = nil
	return nil
}
