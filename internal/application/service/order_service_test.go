package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/bacdepzai/orderdesk/internal/domain/enum"
	"github.com/bacdepzai/orderdesk/pkg/pagination"
	"github.com/google/uuid"
)

func TestOrderService_SaveDraft(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.syncer.enabled = true
	draft := fillValidDraft(t, env.drafts)

	saved, err := env.orders.SaveDraft(ctx, false)
	if err != nil {
		t.Fatalf("SaveDraft() error = %v", err)
	}
	env.orders.WaitForSync()

	if saved.Order.ID == uuid.Nil || !saved.Order.CreatedAt.Equal(fixedNow) {
		t.Errorf("saved order identity = %s at %v", saved.Order.ID, saved.Order.CreatedAt)
	}
	if saved.State != enum.OrderStateCommitted {
		t.Errorf("State = %s, want COMMITTED", saved.State)
	}
	if saved.Totals != draft.Totals {
		t.Errorf("saved totals %+v differ from draft totals %+v", saved.Totals, draft.Totals)
	}
	if env.syncer.count() != 1 {
		t.Errorf("sheet pushes = %d, want 1", env.syncer.count())
	}

	// The draft stays as it was.
	current, _ := env.drafts.Get(ctx)
	if current.Order.ID != uuid.Nil || current.Order.CustomerName != "Chị Lan" {
		t.Errorf("draft changed by save: %+v", current.Order)
	}
}

func TestOrderService_SaveDraftRefusesBlocking(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	env.drafts.UpdateItem(ctx, 0, &ItemInput{Name: strPtr("Giấy in"), Width: floatPtr(0), Length: floatPtr(2), PriceBuy: floatPtr(1000)})
	_, err := env.orders.SaveDraft(ctx, true)
	assertAppError(t, err, http.StatusUnprocessableEntity)

	if _, total, _ := env.orders.ListOrders(ctx, &ListOrdersInput{}); total.Total != 0 {
		t.Errorf("blocked save still appended %d orders", total.Total)
	}
}

func TestOrderService_SaveDraftBelowCost(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	fillValidDraft(t, env.drafts)
	env.drafts.UpdateItem(ctx, 1, &ItemInput{PriceBuy: floatPtr(10000)})

	_, err := env.orders.SaveDraft(ctx, false)
	assertAppError(t, err, http.StatusConflict)

	if _, err := env.orders.SaveDraft(ctx, true); err != nil {
		t.Fatalf("confirmed save error = %v", err)
	}
}

func TestOrderService_SyncFailureKeepsHistory(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.syncer.enabled = true
	env.syncer.err = errors.New("webhook down")
	fillValidDraft(t, env.drafts)

	saved, err := env.orders.SaveDraft(ctx, false)
	if err != nil {
		t.Fatalf("SaveDraft() error = %v", err)
	}
	env.orders.WaitForSync()

	if _, err := env.orders.GetOrder(ctx, saved.Order.ID); err != nil {
		t.Errorf("order missing after failed sync: %v", err)
	}
}

func TestOrderService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	draft := fillValidDraft(t, env.drafts)

	saved, _ := env.orders.SaveDraft(ctx, false)
	loaded, err := env.orders.LoadForEdit(ctx, saved.Order.ID)
	if err != nil {
		t.Fatalf("LoadForEdit() error = %v", err)
	}

	if len(loaded.Order.Items) != len(draft.Order.Items) {
		t.Fatalf("items = %d, want %d", len(loaded.Order.Items), len(draft.Order.Items))
	}
	for i, got := range loaded.Order.Items {
		want := draft.Order.Items[i]
		if got.Name != want.Name || got.Width != want.Width || got.Length != want.Length ||
			got.Quantity != want.Quantity || got.Unit != want.Unit || got.PriceBuy != want.PriceBuy ||
			got.PriceImport != want.PriceImport || got.Mode != want.Mode {
			t.Errorf("item %d = %+v, want %+v", i, got, want)
		}
	}
	if loaded.Totals != draft.Totals {
		t.Errorf("totals changed across the round trip")
	}
	if loaded.State != enum.OrderStateFinalizable {
		t.Errorf("loaded draft State = %s, want FINALIZABLE", loaded.State)
	}

	again, _ := env.orders.SaveDraft(ctx, false)
	if again.Order.ID == saved.Order.ID {
		t.Error("re-saving must create a new history entry")
	}
}

func TestOrderService_Duplicate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	fillValidDraft(t, env.drafts)
	env.drafts.UpdateFields(ctx, &UpdateDraftInput{OrderNo: strPtr("HD-001"), Date: strPtr("2026-01-02")})

	saved, _ := env.orders.SaveDraft(ctx, false)
	dup, err := env.orders.Duplicate(ctx, saved.Order.ID)
	if err != nil {
		t.Fatalf("Duplicate() error = %v", err)
	}

	if dup.Order.OrderNo != "" || dup.Order.Date != "2026-03-15" || dup.Order.ID != uuid.Nil {
		t.Errorf("duplicate header = no=%q date=%q id=%s", dup.Order.OrderNo, dup.Order.Date, dup.Order.ID)
	}
	for i := range dup.Order.Items {
		if dup.Order.Items[i].ID == saved.Order.Items[i].ID {
			t.Errorf("item %d kept its id", i)
		}
	}
}

func TestOrderService_ListOrders(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	fillValidDraft(t, env.drafts)
	env.orders.SaveDraft(ctx, false)
	env.drafts.UpdateFields(ctx, &UpdateDraftInput{CustomerName: strPtr("Anh Ba"), Phone: strPtr("0987000111")})
	env.orders.SaveDraft(ctx, false)

	tests := []struct {
		search string
		want   int64
		first  string
	}{
		{"", 2, "Anh Ba"},
		{"lan", 1, "Chị Lan"},
		{"0987", 1, "Anh Ba"},
		{"nobody", 0, ""},
	}

	for _, tt := range tests {
		snaps, page, err := env.orders.ListOrders(ctx, &ListOrdersInput{Search: tt.search, Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10}})
		if err != nil {
			t.Fatalf("ListOrders(%q) error = %v", tt.search, err)
		}
		if page.Total != tt.want {
			t.Errorf("ListOrders(%q) total = %d, want %d", tt.search, page.Total, tt.want)
		}
		if tt.want > 0 && snaps[0].Order.CustomerName != tt.first {
			t.Errorf("ListOrders(%q) first = %q, want %q", tt.search, snaps[0].Order.CustomerName, tt.first)
		}
	}
}

func TestOrderService_DeleteOrder(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	fillValidDraft(t, env.drafts)
	saved, _ := env.orders.SaveDraft(ctx, false)

	err := env.orders.DeleteOrder(ctx, enum.RoleSale, saved.Order.ID)
	assertAppError(t, err, http.StatusForbidden)

	if err := env.orders.DeleteOrder(ctx, enum.RoleOwner, saved.Order.ID); err != nil {
		t.Fatalf("DeleteOrder() error = %v", err)
	}
	_, err = env.orders.GetOrder(ctx, saved.Order.ID)
	assertAppError(t, err, http.StatusNotFound)

	err = env.orders.DeleteOrder(ctx, enum.RoleOwner, uuid.New())
	assertAppError(t, err, http.StatusNotFound)
}

func TestOrderService_ClearHistory(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	fillValidDraft(t, env.drafts)
	if _, err := env.orders.SaveDraft(ctx, false); err != nil {
		t.Fatalf("SaveDraft() error = %v", err)
	}

	assertAppError(t, env.orders.ClearHistory(ctx, enum.RoleSale), http.StatusForbidden)

	if err := env.orders.ClearHistory(ctx, enum.RoleOwner); err != nil {
		t.Fatalf("ClearHistory() error = %v", err)
	}
	_, page, err := env.orders.ListOrders(ctx, &ListOrdersInput{Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10}})
	if err != nil {
		t.Fatalf("ListOrders() error = %v", err)
	}
	if page.Total != 0 {
		t.Errorf("history = %d orders after clear, want 0", page.Total)
	}
}
