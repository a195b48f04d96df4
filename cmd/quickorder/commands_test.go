package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bacdepzai/orderdesk/internal/config"
	"github.com/bacdepzai/orderdesk/internal/domain/entity"
	"github.com/bacdepzai/orderdesk/internal/domain/enum"
	"github.com/bacdepzai/orderdesk/internal/domain/pricing"
)

const sampleOrder = `{
  "customer_name": "Chị Lan",
  "phone": "0901234567",
  "discount_percent": 10,
  "items": [
    {"name": "Giấy in ảnh", "width": 2, "length": 3, "quantity": 4, "price_buy": 10000, "price_import": 7000},
    {"name": "Mực in", "quantity": 5, "price_buy": 20000, "price_import": 15000}
  ]
}`

func fixedToday() time.Time {
	return time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
}

func run(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	opts := &options{cfg: &config.Config{}, now: fixedToday}
	root := newRootCmdWith(opts)

	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(input))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestLoadOrderFillsDefaults(t *testing.T) {
	snap, err := loadOrder(strings.NewReader(sampleOrder), pricing.NewClassifier(nil), fixedToday())
	if err != nil {
		t.Fatalf("loadOrder() error = %v", err)
	}

	o := snap.Order
	if o.Date != "2026-03-15" {
		t.Errorf("Date = %q, want today", o.Date)
	}
	if o.Items[0].Unit != entity.AreaUnit || o.Items[1].Unit != entity.DefaultUnit {
		t.Errorf("units = %q, %q", o.Items[0].Unit, o.Items[1].Unit)
	}
	if o.IsCommitted() {
		t.Error("a loaded file must not look committed")
	}
	if snap.Totals.Subtotal != 340000 || snap.Totals.GrandTotal != 306000 {
		t.Errorf("totals = %+v", snap.Totals)
	}
}

func TestLoadOrderRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "order"},
		{"no items", `{"customer_name": "A", "items": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadOrder(strings.NewReader(tt.input), nil, fixedToday()); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadOrderIgnoresFileMode(t *testing.T) {
	input := `{"items": [{"name": "Giấy in ảnh", "mode": "unit", "quantity": 2, "price_buy": 1000}]}`
	snap, err := loadOrder(strings.NewReader(input), pricing.NewClassifier(nil), fixedToday())
	if err != nil {
		t.Fatalf("loadOrder() error = %v", err)
	}

	item := snap.Order.Items[0]
	if item.Mode != enum.PricingModeArea || item.Unit != entity.AreaUnit {
		t.Errorf("item = mode %q unit %q, want area priced in rolls", item.Mode, item.Unit)
	}
	if !snap.Validation.HasBlockingError {
		t.Error("area line without width and length must block")
	}
	if snap.Totals.Subtotal != 0 {
		t.Errorf("Subtotal = %v, want 0", snap.Totals.Subtotal)
	}

	if _, _, err := run(t, input, "submit", "--dry-run"); err == nil {
		t.Error("submit must refuse the unsized area line")
	}
}

func TestQuote(t *testing.T) {
	out, _, err := run(t, sampleOrder, "quote")
	if err != nil {
		t.Fatalf("quote error = %v", err)
	}
	for _, want := range []string{"BÁO GIÁ VẬT TƯ", "Khách hàng: Chị Lan", "Chiết khấu (10%): 34.000", "TỔNG THANH TOÁN: 306.000"} {
		if !strings.Contains(out, want) {
			t.Errorf("quote output missing %q:\n%s", want, out)
		}
	}
}

func TestQuoteBlockedOrder(t *testing.T) {
	_, stderr, err := run(t, `{"items": [{"name": "Giấy decal", "quantity": 1, "price_buy": 5000}]}`, "quote")
	if err == nil {
		t.Fatal("an area line without size must not be quoted")
	}
	if !strings.Contains(stderr, "items[0]") {
		t.Errorf("stderr should name the failing line: %s", stderr)
	}
}

func TestSubmit(t *testing.T) {
	var hits atomic.Int32
	var received map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	t.Run("dry run", func(t *testing.T) {
		out, _, err := run(t, sampleOrder, "submit", "--dry-run", "--webhook", srv.URL)
		if err != nil {
			t.Fatalf("submit error = %v", err)
		}
		if hits.Load() != 0 || !strings.Contains(out, "Tổng thanh toán: 306.000") {
			t.Errorf("dry run posted or printed wrong totals: hits %d\n%s", hits.Load(), out)
		}
	})

	t.Run("posts order", func(t *testing.T) {
		out, _, err := run(t, sampleOrder, "submit", "--webhook", srv.URL)
		if err != nil {
			t.Fatalf("submit error = %v", err)
		}
		if hits.Load() != 1 || !strings.Contains(out, "Submitted order") {
			t.Fatalf("hits = %d, out = %s", hits.Load(), out)
		}
		totals, _ := received["totals"].(map[string]interface{})
		if received["customer_name"] != "Chị Lan" || totals["grand_total"] != float64(306000) {
			t.Errorf("payload = %v", received)
		}
	})

	t.Run("below cost needs confirmation", func(t *testing.T) {
		below := `{"items": [{"name": "Mực in", "quantity": 1, "price_buy": 1000, "price_import": 5000}]}`
		if _, _, err := run(t, below, "submit", "--webhook", srv.URL); err == nil {
			t.Fatal("below-cost submit without confirmation should fail")
		}
		if _, _, err := run(t, below, "submit", "--webhook", srv.URL, "--confirm-below-cost"); err != nil {
			t.Fatalf("confirmed submit error = %v", err)
		}
		if hits.Load() != 2 {
			t.Errorf("hits = %d, want 2", hits.Load())
		}
	})

	t.Run("no webhook", func(t *testing.T) {
		if _, _, err := run(t, sampleOrder, "submit"); err == nil {
			t.Error("submit without a web-hook should fail")
		}
	})
}
