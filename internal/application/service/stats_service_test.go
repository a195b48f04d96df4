package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/bacdepzai/orderdesk/internal/domain/entity"
	"github.com/bacdepzai/orderdesk/internal/domain/enum"
)

func saveSimpleOrder(t *testing.T, env *testEnv, customer, date string, qty, price, cost float64) {
	t.Helper()
	ctx := context.Background()
	_, err := env.drafts.Replace(ctx, &entity.Order{
		CustomerName: customer,
		Date:         date,
		Items:        []entity.OrderItem{{Name: "Mực in", Quantity: qty, Unit: entity.DefaultUnit, PriceBuy: price, PriceImport: cost}},
	})
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if _, err := env.orders.SaveDraft(ctx, true); err != nil {
		t.Fatalf("SaveDraft() error = %v", err)
	}
}

func TestStatsService_Monthly(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	saveSimpleOrder(t, env, "Chị Lan", "2026-03-01", 2, 50000, 30000)
	saveSimpleOrder(t, env, "", "2026-03-10", 1, 80000, 60000)
	saveSimpleOrder(t, env, "Chị Lan", "2026-03-12", 1, 50000, 30000)
	saveSimpleOrder(t, env, "Anh Ba", "2026-02-28", 10, 10000, 5000)

	_, err := env.stats.Monthly(ctx, enum.RoleSale, "")
	assertAppError(t, err, http.StatusForbidden)

	stats, err := env.stats.Monthly(ctx, enum.RoleOwner, "")
	if err != nil {
		t.Fatalf("Monthly() error = %v", err)
	}
	if stats.Month != "2026-03" || stats.Count != 3 {
		t.Errorf("Month/Count = %s/%d, want 2026-03/3", stats.Month, stats.Count)
	}
	if stats.Revenue != 230000 || stats.Profit != 80000 {
		t.Errorf("Revenue/Profit = %v/%v, want 230000/80000", stats.Revenue, stats.Profit)
	}
	if len(stats.TopCustomers) != 2 {
		t.Fatalf("TopCustomers = %+v", stats.TopCustomers)
	}
	if stats.TopCustomers[0].Name != "Chị Lan" || stats.TopCustomers[0].Revenue != 150000 {
		t.Errorf("top customer = %+v", stats.TopCustomers[0])
	}
	if stats.TopCustomers[1].Name != entity.WalkInCustomer {
		t.Errorf("walk-in label = %q", stats.TopCustomers[1].Name)
	}

	feb, _ := env.stats.Monthly(ctx, enum.RoleOwner, "2026-02")
	if feb.Count != 1 || feb.Profit != 50000 {
		t.Errorf("February = %+v", feb)
	}
}

func TestStatsService_TopCustomersCapped(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 7; i++ {
		saveSimpleOrder(t, env, fmt.Sprintf("Khách %d", i), "2026-03-02", float64(i+1), 1000, 0)
	}

	stats, err := env.stats.Monthly(context.Background(), enum.RoleOwner, "2026-03")
	if err != nil {
		t.Fatalf("Monthly() error = %v", err)
	}
	if len(stats.TopCustomers) != topCustomerCount {
		t.Fatalf("TopCustomers = %d, want %d", len(stats.TopCustomers), topCustomerCount)
	}
	if stats.TopCustomers[0].Name != "Khách 6" {
		t.Errorf("largest customer = %q, want Khách 6", stats.TopCustomers[0].Name)
	}
}
