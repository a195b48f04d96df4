package service

import (
	"fmt"
	"strings"

	"github.com/bacdepzai/orderdesk/internal/domain/enum"
	"github.com/bacdepzai/orderdesk/internal/domain/pricing"
	"github.com/bacdepzai/orderdesk/pkg/apperror"
	"github.com/bacdepzai/orderdesk/pkg/utils"
)

// RequireFinalizable refuses orders that still have blocking errors.
func RequireFinalizable(snap *OrderSnapshot) error {
	if snap.Validation.HasBlockingError {
		return apperror.NewBlockingError(snap.Validation.FieldErrors())
	}
	return nil
}

// ShareText renders the quotation message pasted into chat apps.
func ShareText(snap *OrderSnapshot) (string, error) {
	if err := RequireFinalizable(snap); err != nil {
		return "", err
	}

	o, t := snap.Order, snap.Totals
	orderNo := o.OrderNo
	if orderNo == "" {
		orderNo = "N/A"
	}

	var b strings.Builder
	b.WriteString("BÁO GIÁ VẬT TƯ\n")
	fmt.Fprintf(&b, "Ngày: %s\n", o.Date)
	fmt.Fprintf(&b, "Đơn số: %s\n", orderNo)
	fmt.Fprintf(&b, "Khách hàng: %s\n", o.CustomerName)
	fmt.Fprintf(&b, "SĐT: %s\n", o.Phone)
	fmt.Fprintf(&b, "Địa chỉ: %s\n", o.Address)
	b.WriteString("\nDANH SÁCH HÀNG:\n")
	for _, item := range o.Items {
		fmt.Fprintf(&b, "- %s: %s x %s = %s\n",
			item.Name, LineQuantity(pricing.ModeOf(item), item.Quantity, item.Unit, pricing.Area(item)),
			utils.FormatVND(item.PriceBuy), utils.FormatVND(pricing.ItemTotal(item)))
	}
	b.WriteString("\n-------------------\n")
	fmt.Fprintf(&b, "Tạm tính: %s\n", utils.FormatVND(t.Subtotal))
	fmt.Fprintf(&b, "Chiết khấu (%s%%): %s\n", utils.FormatQty(o.DiscountPercent), utils.FormatVND(t.DiscountAmount))
	fmt.Fprintf(&b, "Phí ship: %s\n", utils.FormatVND(o.ShippingCost))
	fmt.Fprintf(&b, "Tiền xe (thu hộ): %s\n", utils.FormatVND(o.ShippingCollection))
	fmt.Fprintf(&b, "TỔNG THANH TOÁN: %s\n", utils.FormatVND(t.GrandTotal))
	return b.String(), nil
}

// LineQuantity is "24.00 m²" for area lines and "5 Cái" for unit lines.
func LineQuantity(mode enum.PricingMode, qty float64, unit string, area float64) string {
	if mode == enum.PricingModeArea {
		return utils.FormatArea(area) + " m²"
	}
	return strings.TrimSpace(utils.FormatQty(qty) + " " + unit)
}
