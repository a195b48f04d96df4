package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/bacdepzai/orderdesk/internal/domain/enum"
)

func TestShareText(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	fillValidDraft(t, env.drafts)
	snap, _ := env.drafts.UpdateFields(ctx, &UpdateDraftInput{
		Address:            strPtr("12 Lê Lợi"),
		DiscountPercent:    floatPtr(10),
		ShippingCost:       floatPtr(30000),
		ShippingCollection: floatPtr(20000),
	})

	got, err := ShareText(snap)
	if err != nil {
		t.Fatalf("ShareText() error = %v", err)
	}

	want := "BÁO GIÁ VẬT TƯ\n" +
		"Ngày: 2026-03-15\n" +
		"Đơn số: N/A\n" +
		"Khách hàng: Chị Lan\n" +
		"SĐT: 0901234567\n" +
		"Địa chỉ: 12 Lê Lợi\n" +
		"\nDANH SÁCH HÀNG:\n" +
		"- Giấy in ảnh: 24.00 m² x 10.000 = 240.000\n" +
		"- Mực in: 5 Cái x 20.000 = 100.000\n" +
		"\n-------------------\n" +
		"Tạm tính: 340.000\n" +
		"Chiết khấu (10%): 34.000\n" +
		"Phí ship: 30.000\n" +
		"Tiền xe (thu hộ): 20.000\n" +
		"TỔNG THANH TOÁN: 356.000\n"
	if got != want {
		t.Errorf("ShareText() =\n%s\nwant\n%s", got, want)
	}
}

func TestShareTextRefusesBlocking(t *testing.T) {
	env := newTestEnv(t)
	snap, _ := env.drafts.Get(context.Background())

	_, err := ShareText(snap)
	assertAppError(t, err, http.StatusUnprocessableEntity)
}

func TestLineQuantity(t *testing.T) {
	tests := []struct {
		name string
		mode enum.PricingMode
		qty  float64
		unit string
		area float64
		want string
	}{
		{"area line", enum.PricingModeArea, 4, "Cuộn", 24, "24.00 m²"},
		{"unit line", enum.PricingModeUnit, 5, "Cái", 0, "5 Cái"},
		{"fractional quantity", enum.PricingModeUnit, 1.5, "Kg", 0, "1.5 Kg"},
		{"no unit", enum.PricingModeUnit, 2, "", 0, "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineQuantity(tt.mode, tt.qty, tt.unit, tt.area); got != tt.want {
				t.Errorf("LineQuantity() = %q, want %q", got, tt.want)
			}
		})
	}
}
