package pricing

import (
	"math"

	"github.com/bacdepzai/orderdesk/internal/domain/entity"
	"github.com/bacdepzai/orderdesk/internal/domain/enum"
)

// Totals is the derived money snapshot of an order. It is recomputed on every
// read and never stored. Values are unrounded.
type Totals struct {
	Subtotal        float64 `json:"subtotal"`
	DiscountAmount  float64 `json:"discount_amount"`
	AfterDiscount   float64 `json:"after_discount"`
	TotalImportCost float64 `json:"total_import_cost"`
	Profit          float64 `json:"profit"`
	ProfitMargin    float64 `json:"profit_margin"`
	GrandTotal      float64 `json:"grand_total"`
}

// ModeOf returns the mode the item is billed in. Items without an explicit
// mode are classified by name with the default keywords.
func ModeOf(item entity.OrderItem) enum.PricingMode {
	if item.Mode.IsValid() {
		return item.Mode
	}
	return defaultClassifier.Classify(item.Name)
}

// Area is width*length*quantity for area-priced items and 0 otherwise.
func Area(item entity.OrderItem) float64 {
	if ModeOf(item) != enum.PricingModeArea {
		return 0
	}
	return item.Width * item.Length * item.Quantity
}

// ItemTotal is the sale amount of one line.
func ItemTotal(item entity.OrderItem) float64 {
	return billed(item, item.PriceBuy)
}

// ItemImportCost is the import cost of one line.
func ItemImportCost(item entity.OrderItem) float64 {
	return billed(item, item.PriceImport)
}

func billed(item entity.OrderItem, price float64) float64 {
	if ModeOf(item) == enum.PricingModeArea {
		return Area(item) * price
	}
	return item.Quantity * price
}

// ComputeTotals aggregates the order. Every item counts toward the subtotal,
// valid or not. Shipping collection is a pass-through and never touches profit.
func ComputeTotals(order *entity.Order) Totals {
	var t Totals
	if order == nil {
		return t
	}

	for _, item := range order.Items {
		t.Subtotal += ItemTotal(item)
		t.TotalImportCost += ItemImportCost(item)
	}

	t.DiscountAmount = t.Subtotal * order.DiscountPercent / 100
	t.AfterDiscount = t.Subtotal - t.DiscountAmount
	t.Profit = t.AfterDiscount - (t.TotalImportCost + order.ShippingCost)
	if t.AfterDiscount > 0 {
		t.ProfitMargin = t.Profit / t.AfterDiscount * 100
	}
	t.GrandTotal = t.AfterDiscount + order.ShippingCost + order.ShippingCollection
	return t
}

// Coerce maps NaN and infinities to 0 so the engine only sees real numbers.
func Coerce(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// CoerceOrder applies Coerce to every numeric field of order in place.
func CoerceOrder(order *entity.Order) {
	if order == nil {
		return
	}
	order.ShippingCollection = Coerce(order.ShippingCollection)
	order.ShippingCost = Coerce(order.ShippingCost)
	order.DiscountPercent = Coerce(order.DiscountPercent)
	for i := range order.Items {
		it := &order.Items[i]
		it.Width = Coerce(it.Width)
		it.Length = Coerce(it.Length)
		it.Quantity = Coerce(it.Quantity)
		it.PriceBuy = Coerce(it.PriceBuy)
		it.PriceImport = Coerce(it.PriceImport)
	}
}
