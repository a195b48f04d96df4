package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bacdepzai/orderdesk/internal/domain/entity"
	"github.com/bacdepzai/orderdesk/internal/domain/pricing"
	"github.com/bacdepzai/orderdesk/internal/domain/repository"
	"github.com/bacdepzai/orderdesk/internal/infrastructure/memory"
	"github.com/bacdepzai/orderdesk/pkg/apperror"
	"github.com/bacdepzai/orderdesk/pkg/gemini"
)

var fixedNow = time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type fakeSyncer struct {
	mu       sync.Mutex
	enabled  bool
	err      error
	payloads []interface{}
}

func (f *fakeSyncer) Enabled() bool { return f.enabled }

func (f *fakeSyncer) PushOrder(_ context.Context, payload interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, payload)
	return f.err
}

func (f *fakeSyncer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payloads)
}

type failingDraftRepo struct{}

func (failingDraftRepo) Load(context.Context) (*entity.Order, error) { return nil, errors.New("redis down") }
func (failingDraftRepo) Store(context.Context, *entity.Order) error  { return errors.New("redis down") }
func (failingDraftRepo) Clear(context.Context) error                 { return errors.New("redis down") }

type fakeGenerator struct {
	reply      string
	err        error
	configured bool
	requests   []*gemini.GenerateRequest
}

func (f *fakeGenerator) Configured() bool { return f.configured }

func (f *fakeGenerator) GenerateContent(_ context.Context, req *gemini.GenerateRequest) (string, error) {
	f.requests = append(f.requests, req)
	return f.reply, f.err
}

type testEnv struct {
	drafts    *DraftService
	orders    *OrderService
	stats     *StatsService
	settings  *SettingsService
	orderRepo repository.OrderRepository
	syncer    *fakeSyncer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	classifier := pricing.NewClassifier(nil)
	orderRepo := memory.NewOrderRepository()
	syncer := &fakeSyncer{}
	drafts := NewDraftService(memory.NewDraftRepository(), classifier, fixedClock)
	orders := NewOrderService(orderRepo, drafts, syncer, classifier, fixedClock)
	return &testEnv{
		drafts:    drafts,
		orders:    orders,
		stats:     NewStatsService(orders, fixedClock),
		settings:  NewSettingsService(memory.NewSettingsRepository()),
		orderRepo: orderRepo,
		syncer:    syncer,
	}
}

func strPtr(s string) *string      { return &s }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

// fillValidDraft turns the draft into a finalizable two-line order.
func fillValidDraft(t *testing.T, d *DraftService) *OrderSnapshot {
	t.Helper()
	ctx := context.Background()
	if _, err := d.UpdateFields(ctx, &UpdateDraftInput{CustomerName: strPtr("Chị Lan"), Phone: strPtr("0901234567")}); err != nil {
		t.Fatalf("UpdateFields() error = %v", err)
	}
	if _, err := d.UpdateItem(ctx, 0, &ItemInput{
		Name: strPtr("Giấy in ảnh"), Width: floatPtr(2), Length: floatPtr(3), Quantity: floatPtr(4),
		PriceBuy: floatPtr(10000), PriceImport: floatPtr(7000),
	}); err != nil {
		t.Fatalf("UpdateItem() error = %v", err)
	}
	snap, err := d.AddItem(ctx, &ItemInput{Name: strPtr("Mực in"), Quantity: floatPtr(5), PriceBuy: floatPtr(20000), PriceImport: floatPtr(15000)})
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	return snap
}

func assertAppError(t *testing.T, err error, code int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", code)
	}
	appErr := apperror.GetAppError(err)
	if appErr.Code != code {
		t.Fatalf("error code = %d (%s), want %d", appErr.Code, appErr.Message, code)
	}
}
