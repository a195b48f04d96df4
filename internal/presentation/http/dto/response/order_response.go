package response

import (
	"time"

	"github.com/bacdepzai/orderdesk/internal/application/service"
	"github.com/bacdepzai/orderdesk/internal/domain/enum"
	"github.com/bacdepzai/orderdesk/internal/domain/pricing"
	"github.com/google/uuid"
)

// ItemView is an order line as the desk sees it. Cost fields are only set
// when the caller may see them.
type ItemView struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Mode        enum.PricingMode `json:"mode"`
	Width       float64          `json:"width"`
	Length      float64          `json:"length"`
	Quantity    float64          `json:"quantity"`
	Unit        string           `json:"unit"`
	PriceBuy    float64          `json:"price_buy"`
	PriceImport *float64         `json:"price_import,omitempty"`
	Area        float64          `json:"area"`
	Total       float64          `json:"total"`
	Cost        *float64         `json:"cost,omitempty"`

	PaperError   bool  `json:"paper_error"`
	ZeroTotal    bool  `json:"zero_total"`
	PriceWarning *bool `json:"price_warning,omitempty"`
}

// TotalsView holds the order figures. Cost and profit are owner only.
type TotalsView struct {
	Subtotal        float64  `json:"subtotal"`
	DiscountAmount  float64  `json:"discount_amount"`
	AfterDiscount   float64  `json:"after_discount"`
	GrandTotal      float64  `json:"grand_total"`
	TotalImportCost *float64 `json:"total_import_cost,omitempty"`
	Profit          *float64 `json:"profit,omitempty"`
	ProfitMargin    *float64 `json:"profit_margin,omitempty"`
}

// OrderView is the response shape of a draft or a history record.
type OrderView struct {
	ID                 *uuid.UUID      `json:"id,omitempty"`
	CustomerName       string          `json:"customer_name"`
	Phone              string          `json:"phone"`
	Address            string          `json:"address"`
	Notes              string          `json:"notes"`
	Date               string          `json:"date"`
	OrderNo            string          `json:"order_no"`
	ShippingCollection float64         `json:"shipping_collection"`
	ShippingCost       float64         `json:"shipping_cost"`
	DiscountPercent    float64         `json:"discount_percent"`
	CreatedAt          *time.Time      `json:"created_at,omitempty"`
	Items              []ItemView      `json:"items"`
	Totals             TotalsView      `json:"totals"`
	State              enum.OrderState `json:"state"`
	HasBlockingError   bool            `json:"has_blocking_error"`
	HasPriceWarning    *bool           `json:"has_price_warning,omitempty"`
}

// NewOrderView maps snap. showCost unlocks import prices, profit and price
// warnings.
func NewOrderView(snap *service.OrderSnapshot, showCost bool) *OrderView {
	o, t, v := snap.Order, snap.Totals, snap.Validation

	view := &OrderView{
		CustomerName:       o.CustomerName,
		Phone:              o.Phone,
		Address:            o.Address,
		Notes:              o.Notes,
		Date:               o.Date,
		OrderNo:            o.OrderNo,
		ShippingCollection: o.ShippingCollection,
		ShippingCost:       o.ShippingCost,
		DiscountPercent:    o.DiscountPercent,
		Items:              make([]ItemView, 0, len(o.Items)),
		Totals: TotalsView{
			Subtotal:       t.Subtotal,
			DiscountAmount: t.DiscountAmount,
			AfterDiscount:  t.AfterDiscount,
			GrandTotal:     t.GrandTotal,
		},
		State:            snap.State,
		HasBlockingError: v.HasBlockingError,
	}
	if o.IsCommitted() {
		id, createdAt := o.ID, o.CreatedAt
		view.ID = &id
		view.CreatedAt = &createdAt
	}

	for i, item := range o.Items {
		iv := ItemView{
			ID:       item.ID,
			Name:     item.Name,
			Mode:     pricing.ModeOf(item),
			Width:    item.Width,
			Length:   item.Length,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			PriceBuy: item.PriceBuy,
			Area:     pricing.Area(item),
			Total:    pricing.ItemTotal(item),
		}
		if i < len(v.Items) {
			iv.PaperError = v.Items[i].PaperError
			iv.ZeroTotal = v.Items[i].ZeroTotal
		}
		if showCost {
			priceImport, cost := item.PriceImport, pricing.ItemImportCost(item)
			iv.PriceImport = &priceImport
			iv.Cost = &cost
			if i < len(v.Items) {
				warn := v.Items[i].PriceWarning
				iv.PriceWarning = &warn
			}
		}
		view.Items = append(view.Items, iv)
	}

	if showCost {
		importCost, profit, margin := t.TotalImportCost, t.Profit, t.ProfitMargin
		view.Totals.TotalImportCost = &importCost
		view.Totals.Profit = &profit
		view.Totals.ProfitMargin = &margin
		warn := v.HasPriceWarning
		view.HasPriceWarning = &warn
	}
	return view
}

// NewOrderViews maps a list of snapshots.
func NewOrderViews(snaps []*service.OrderSnapshot, showCost bool) []*OrderView {
	views := make([]*OrderView, 0, len(snaps))
	for _, snap := range snaps {
		views = append(views, NewOrderView(snap, showCost))
	}
	return views
}
