package repository

import (
	"context"

	"github.com/bacdepzai/orderdesk/internal/domain/entity"
	"github.com/bacdepzai/orderdesk/pkg/pagination"
	"github.com/google/uuid"
)

// OrderRepository is the append-only order history. Records are never
// updated in place; only the owner may delete them.
type OrderRepository interface {
	Append(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// List returns matching orders newest first plus the total match count.
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams // nil returns every match
	Search     string                       // customer name (case-insensitive) or phone substring
	DatePrefix string                       // e.g. "2026-03" for one month
}

// DraftRepository holds the single draft being edited.
type DraftRepository interface {
	// Load returns nil, nil when no draft was stored.
	Load(ctx context.Context) (*entity.Order, error)
	Store(ctx context.Context, draft *entity.Order) error
	Clear(ctx context.Context) error
}
