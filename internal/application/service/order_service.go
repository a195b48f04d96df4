package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/bacdepzai/orderdesk/internal/domain/entity"
	"github.com/bacdepzai/orderdesk/internal/domain/enum"
	"github.com/bacdepzai/orderdesk/internal/domain/pricing"
	"github.com/bacdepzai/orderdesk/internal/domain/repository"
	"github.com/bacdepzai/orderdesk/pkg/apperror"
	"github.com/bacdepzai/orderdesk/pkg/pagination"
	"github.com/google/uuid"
)

const syncTimeout = 20 * time.Second

// OrderSyncer receives a copy of every saved order.
type OrderSyncer interface {
	PushOrder(ctx context.Context, payload interface{}) error
	Enabled() bool
}

// SyncPayload is what the spreadsheet web-hook receives.
type SyncPayload struct {
	*entity.Order
	Totals pricing.Totals `json:"totals"`
}

// OrderService handles the order history
type OrderService struct {
	orderRepo  repository.OrderRepository
	drafts     *DraftService
	syncer     OrderSyncer
	classifier *pricing.Classifier
	now        Clock
	syncWG     sync.WaitGroup
}

// NewOrderService creates a new order service. syncer may be nil.
func NewOrderService(
	orderRepo repository.OrderRepository,
	drafts *DraftService,
	syncer OrderSyncer,
	classifier *pricing.Classifier,
	now Clock,
) *OrderService {
	if now == nil {
		now = SystemClock(nil)
	}
	return &OrderService{
		orderRepo:  orderRepo,
		drafts:     drafts,
		syncer:     syncer,
		classifier: classifier,
		now:        now,
	}
}

// SaveDraft commits the current draft to history. It refuses while the draft
// has blocking errors, and asks for confirmation when a line is priced below
// its import price. The draft itself stays as it is.
func (s *OrderService) SaveDraft(ctx context.Context, confirmBelowCost bool) (*OrderSnapshot, error) {
	draft, err := s.drafts.Current(ctx)
	if err != nil {
		return nil, err
	}

	v := pricing.Validate(draft)
	if v.HasBlockingError {
		return nil, apperror.NewBlockingError(v.FieldErrors())
	}
	if v.HasPriceWarning && !confirmBelowCost {
		return nil, apperror.ErrBelowCostConfirm
	}

	order := draft.Clone()
	order.ID = uuid.New()
	order.CreatedAt = s.now()
	for i := range order.Items {
		order.Items[i].ID = uuid.New()
		order.Items[i].OrderID = order.ID
		order.Items[i].Position = i
	}

	if err := s.orderRepo.Append(ctx, order); err != nil {
		log.Printf("History append failed: %v", err)
		return nil, apperror.NewEnvironmentError("History storage is unavailable")
	}

	log.Printf("Order saved: id=%s customer=%q items=%d", order.ID, order.DisplayCustomer(), len(order.Items))
	snap := NewSnapshot(order)
	s.sync(snap)
	return snap, nil
}

// sync pushes the order in the background. Failures are logged only.
func (s *OrderService) sync(snap *OrderSnapshot) {
	if s.syncer == nil || !s.syncer.Enabled() {
		return
	}

	payload := &SyncPayload{Order: snap.Order.Clone(), Totals: snap.Totals}
	s.syncWG.Add(1)
	go func() {
		defer s.syncWG.Done()
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()

		if err := s.syncer.PushOrder(ctx, payload); err != nil {
			log.Printf("Sheet sync failed for order %s: %v", payload.ID, err)
			return
		}
		log.Printf("Order %s synced to sheet", payload.ID)
	}()
}

// WaitForSync blocks until in-flight sheet pushes finish.
func (s *OrderService) WaitForSync() {
	s.syncWG.Wait()
}

// ListOrdersInput represents the history search
type ListOrdersInput struct {
	Search     string
	Pagination *pagination.PaginationParams
}

// ListOrders returns history newest first, filtered by customer name or phone.
func (s *OrderService) ListOrders(ctx context.Context, input *ListOrdersInput) ([]*OrderSnapshot, *pagination.Pagination, error) {
	params := input.Pagination
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	orders, total, err := s.orderRepo.List(ctx, &repository.OrderFilterParams{
		Pagination: params,
		Search:     input.Search,
	})
	if err != nil {
		log.Printf("History list failed: %v", err)
		return nil, nil, apperror.NewEnvironmentError("History storage is unavailable")
	}

	return s.snapshots(orders), pagination.NewPagination(params.Page, params.PerPage, total), nil
}

// AllOrders returns the whole history, newest first.
func (s *OrderService) AllOrders(ctx context.Context) ([]*OrderSnapshot, error) {
	return s.ordersMatching(ctx, &repository.OrderFilterParams{})
}

// OrdersInMonth returns the orders dated in month ("YYYY-MM").
func (s *OrderService) OrdersInMonth(ctx context.Context, month string) ([]*OrderSnapshot, error) {
	return s.ordersMatching(ctx, &repository.OrderFilterParams{DatePrefix: month})
}

func (s *OrderService) ordersMatching(ctx context.Context, params *repository.OrderFilterParams) ([]*OrderSnapshot, error) {
	orders, _, err := s.orderRepo.List(ctx, params)
	if err != nil {
		log.Printf("History list failed: %v", err)
		return nil, apperror.NewEnvironmentError("History storage is unavailable")
	}
	return s.snapshots(orders), nil
}

func (s *OrderService) snapshots(orders []entity.Order) []*OrderSnapshot {
	out := make([]*OrderSnapshot, 0, len(orders))
	for i := range orders {
		s.classifier.Normalize(&orders[i])
		out = append(out, NewSnapshot(&orders[i]))
	}
	return out
}

// GetOrder returns one history record.
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*OrderSnapshot, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("History get failed: %v", err)
		return nil, apperror.NewEnvironmentError("History storage is unavailable")
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	s.classifier.Normalize(order)
	return NewSnapshot(order), nil
}

// LoadForEdit copies a history record into the draft slot. Saving it again
// creates a new history entry.
func (s *OrderService) LoadForEdit(ctx context.Context, id uuid.UUID) (*OrderSnapshot, error) {
	snap, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.drafts.Replace(ctx, snap.Order)
}

// Duplicate starts a new draft from a history record: fresh line ids, no
// order number, dated today.
func (s *OrderService) Duplicate(ctx context.Context, id uuid.UUID) (*OrderSnapshot, error) {
	snap, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	dup := snap.Order.Clone()
	dup.OrderNo = ""
	dup.Date = s.now().Format(entity.DateLayout)
	for i := range dup.Items {
		dup.Items[i].ID = uuid.New()
		dup.Items[i].OrderID = uuid.Nil
	}
	return s.drafts.Replace(ctx, dup)
}

// DeleteOrder removes a history record. Owner only.
func (s *OrderService) DeleteOrder(ctx context.Context, role enum.Role, id uuid.UUID) error {
	if !role.IsOwner() {
		return apperror.ErrOwnerOnly
	}

	if _, err := s.GetOrder(ctx, id); err != nil {
		return err
	}

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		log.Printf("History delete failed: %v", err)
		return apperror.NewEnvironmentError("History storage is unavailable")
	}
	log.Printf("Order deleted: id=%s", id)
	return nil
}

// ClearHistory wipes every history record but keeps the PIN, settings and
// draft. Owner only.
func (s *OrderService) ClearHistory(ctx context.Context, role enum.Role) error {
	if !role.IsOwner() {
		return apperror.ErrOwnerOnly
	}
	if err := s.DeleteAll(ctx); err != nil {
		return err
	}
	log.Println("Order history cleared")
	return nil
}

// DeleteAll wipes the history.
func (s *OrderService) DeleteAll(ctx context.Context) error {
	if err := s.orderRepo.DeleteAll(ctx); err != nil {
		log.Printf("History wipe failed: %v", err)
		return apperror.NewEnvironmentError("History storage is unavailable")
	}
	return nil
}
