package service

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/bacdepzai/orderdesk/internal/domain/entity"
	"github.com/bacdepzai/orderdesk/internal/domain/enum"
	"github.com/bacdepzai/orderdesk/internal/domain/pricing"
	"github.com/bacdepzai/orderdesk/internal/domain/repository"
	"github.com/bacdepzai/orderdesk/pkg/apperror"
	"github.com/google/uuid"
)

// DraftService owns the single draft slot. Each mutation loads a copy,
// changes it and stores it back; a failed store leaves the slot as it was.
type DraftService struct {
	mu         sync.Mutex
	draftRepo  repository.DraftRepository
	classifier *pricing.Classifier
	now        Clock
}

// NewDraftService creates a new draft service
func NewDraftService(draftRepo repository.DraftRepository, classifier *pricing.Classifier, now Clock) *DraftService {
	if now == nil {
		now = SystemClock(nil)
	}
	return &DraftService{
		draftRepo:  draftRepo,
		classifier: classifier,
		now:        now,
	}
}

// UpdateDraftInput carries the order-level fields to change. Nil fields are left alone.
type UpdateDraftInput struct {
	CustomerName       *string
	Phone              *string
	Address            *string
	Notes              *string
	Date               *string
	OrderNo            *string
	ShippingCollection *float64
	ShippingCost       *float64
	DiscountPercent    *float64
}

// ItemInput carries the line fields to change. Nil fields are left alone.
type ItemInput struct {
	Name        *string
	Width       *float64
	Length      *float64
	Quantity    *float64
	Unit        *string
	PriceBuy    *float64
	PriceImport *float64
}

// current returns the stored draft or a new one. Callers hold s.mu.
func (s *DraftService) current(ctx context.Context) (*entity.Order, error) {
	draft, err := s.draftRepo.Load(ctx)
	if err != nil {
		log.Printf("Draft load failed: %v", err)
		return nil, apperror.NewEnvironmentError("Draft storage is unavailable")
	}
	if draft == nil || len(draft.Items) == 0 {
		draft = entity.NewDraft(s.now())
	}
	s.classifier.Normalize(draft)
	return draft, nil
}

func (s *DraftService) store(ctx context.Context, draft *entity.Order) (*OrderSnapshot, error) {
	if err := s.draftRepo.Store(ctx, draft); err != nil {
		log.Printf("Draft store failed: %v", err)
		return nil, apperror.NewEnvironmentError("Draft storage is unavailable")
	}
	return NewSnapshot(draft), nil
}

func (s *DraftService) mutate(ctx context.Context, fn func(draft *entity.Order) error) (*OrderSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	if err := fn(draft); err != nil {
		return nil, err
	}
	pricing.CoerceOrder(draft)
	return s.store(ctx, draft)
}

// Get returns the current draft.
func (s *DraftService) Get(ctx context.Context) (*OrderSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(draft), nil
}

// Current returns a copy of the current draft for read-only use.
func (s *DraftService) Current(ctx context.Context) (*entity.Order, error) {
	snap, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Order.Clone(), nil
}

// Replace swaps in a whole order. The result is always an uncommitted draft:
// identity and timestamp are cleared, items get ids when missing and their
// mode from the name, and an empty item list gets one blank line.
func (s *DraftService) Replace(ctx context.Context, order *entity.Order) (*OrderSnapshot, error) {
	return s.mutate(ctx, func(draft *entity.Order) error {
		*draft = *order.Clone()
		draft.ID = uuid.Nil
		draft.CreatedAt = time.Time{}
		if len(draft.Items) == 0 {
			draft.Items = []entity.OrderItem{entity.NewBlankItem()}
		}
		for i := range draft.Items {
			if draft.Items[i].ID == uuid.Nil {
				draft.Items[i].ID = uuid.New()
			}
		}
		s.classifier.Reclassify(draft)
		if draft.Date == "" {
			draft.Date = s.now().Format(entity.DateLayout)
		}
		return nil
	})
}

// UpdateFields edits order-level fields in place.
func (s *DraftService) UpdateFields(ctx context.Context, input *UpdateDraftInput) (*OrderSnapshot, error) {
	return s.mutate(ctx, func(draft *entity.Order) error {
		setString(&draft.CustomerName, input.CustomerName)
		setString(&draft.Phone, input.Phone)
		setString(&draft.Address, input.Address)
		setString(&draft.Notes, input.Notes)
		setString(&draft.Date, input.Date)
		setString(&draft.OrderNo, input.OrderNo)
		setFloat(&draft.ShippingCollection, input.ShippingCollection)
		setFloat(&draft.ShippingCost, input.ShippingCost)
		setFloat(&draft.DiscountPercent, input.DiscountPercent)
		return nil
	})
}

// AddItem appends a blank line, then applies input when given.
func (s *DraftService) AddItem(ctx context.Context, input *ItemInput) (*OrderSnapshot, error) {
	return s.mutate(ctx, func(draft *entity.Order) error {
		item := entity.NewBlankItem()
		if input != nil {
			s.applyItem(&item, input)
		}
		draft.Items = append(draft.Items, item)
		return nil
	})
}

// UpdateItem edits the line at index. A name change re-classifies the line,
// and an area-priced name switches the unit to rolls unless a unit is given.
func (s *DraftService) UpdateItem(ctx context.Context, index int, input *ItemInput) (*OrderSnapshot, error) {
	return s.mutate(ctx, func(draft *entity.Order) error {
		if index < 0 || index >= len(draft.Items) {
			return apperror.NewNotFoundError("Item")
		}
		s.applyItem(&draft.Items[index], input)
		return nil
	})
}

func (s *DraftService) applyItem(item *entity.OrderItem, input *ItemInput) {
	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
		item.Mode = s.classifier.Classify(item.Name)
		if item.Mode == enum.PricingModeArea {
			item.Unit = entity.AreaUnit
		}
	}
	setFloat(&item.Width, input.Width)
	setFloat(&item.Length, input.Length)
	setFloat(&item.Quantity, input.Quantity)
	setString(&item.Unit, input.Unit)
	setFloat(&item.PriceBuy, input.PriceBuy)
	setFloat(&item.PriceImport, input.PriceImport)
}

// RemoveItem drops the line at index. The last remaining line cannot be removed.
func (s *DraftService) RemoveItem(ctx context.Context, index int) (*OrderSnapshot, error) {
	return s.mutate(ctx, func(draft *entity.Order) error {
		if index < 0 || index >= len(draft.Items) {
			return apperror.NewNotFoundError("Item")
		}
		if len(draft.Items) <= 1 {
			return apperror.ErrLastItem
		}
		draft.Items = append(draft.Items[:index], draft.Items[index+1:]...)
		return nil
	})
}

// Reset replaces the draft with an empty one dated today.
func (s *DraftService) Reset(ctx context.Context) (*OrderSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store(ctx, entity.NewDraft(s.now()))
}

// Clear drops the stored draft entirely.
func (s *DraftService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.draftRepo.Clear(ctx); err != nil {
		log.Printf("Draft clear failed: %v", err)
		return apperror.NewEnvironmentError("Draft storage is unavailable")
	}
	return nil
}

// Today returns the current date in the order date layout.
func (s *DraftService) Today() string {
	return s.now().Format(entity.DateLayout)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
