package service

import (
	"time"

	"github.com/bacdepzai/orderdesk/internal/domain/entity"
	"github.com/bacdepzai/orderdesk/internal/domain/enum"
	"github.com/bacdepzai/orderdesk/internal/domain/pricing"
)

// OrderSnapshot is an order together with everything derived from it. Every
// surface that shows, shares, prints or saves an order reads these figures.
type OrderSnapshot struct {
	Order      *entity.Order
	Totals     pricing.Totals
	Validation pricing.Validation
	State      enum.OrderState
}

// NewSnapshot computes totals, validation and state for order.
func NewSnapshot(order *entity.Order) *OrderSnapshot {
	return &OrderSnapshot{
		Order:      order,
		Totals:     pricing.ComputeTotals(order),
		Validation: pricing.Validate(order),
		State:      pricing.StateOf(order),
	}
}

// Clock returns the current time; tests pin it.
type Clock func() time.Time

// SystemClock returns a clock in loc.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time { return time.Now().In(loc) }
}
