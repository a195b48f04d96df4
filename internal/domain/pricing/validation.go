package pricing

import (
	"fmt"

	"github.com/bacdepzai/orderdesk/internal/domain/entity"
	"github.com/bacdepzai/orderdesk/internal/domain/enum"
	"github.com/bacdepzai/orderdesk/pkg/apperror"
	"github.com/google/uuid"
)

// ItemValidation holds the flags of one line.
type ItemValidation struct {
	ItemID       uuid.UUID `json:"item_id"`
	Index        int       `json:"index"`
	PaperError   bool      `json:"paper_error"`
	ZeroTotal    bool      `json:"zero_total"`
	PriceWarning bool      `json:"price_warning"`
}

// Blocking reports whether the line prevents finalizing the order.
func (v ItemValidation) Blocking() bool {
	return v.PaperError || v.ZeroTotal
}

// Validation is the rolled-up result for an order.
type Validation struct {
	Items            []ItemValidation `json:"items"`
	HasBlockingError bool             `json:"has_blocking_error"`
	HasPriceWarning  bool             `json:"has_price_warning"`
}

// Validate evaluates every line. A below-cost price is a warning only.
func Validate(order *entity.Order) Validation {
	v := Validation{Items: []ItemValidation{}}
	if order == nil {
		return v
	}

	for i, item := range order.Items {
		iv := ItemValidation{
			ItemID:       item.ID,
			Index:        i,
			PaperError:   ModeOf(item) == enum.PricingModeArea && (item.Width <= 0 || item.Length <= 0),
			ZeroTotal:    ItemTotal(item) <= 0,
			PriceWarning: item.PriceBuy < item.PriceImport && item.PriceBuy > 0,
		}
		v.HasBlockingError = v.HasBlockingError || iv.Blocking()
		v.HasPriceWarning = v.HasPriceWarning || iv.PriceWarning
		v.Items = append(v.Items, iv)
	}
	return v
}

// State reports EDITING while any blocking error remains, FINALIZABLE otherwise.
// Committed orders are reported by the history layer.
func (v Validation) State() enum.OrderState {
	if v.HasBlockingError {
		return enum.OrderStateEditing
	}
	return enum.OrderStateFinalizable
}

// FieldErrors lists the blocking problems in the apperror shape.
func (v Validation) FieldErrors() []apperror.FieldError {
	var errs []apperror.FieldError
	for _, iv := range v.Items {
		if iv.PaperError {
			errs = append(errs, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].width", iv.Index),
				Message: "Width and length must be greater than 0 for area-priced items",
			})
		}
		if iv.ZeroTotal {
			errs = append(errs, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].price_buy", iv.Index),
				Message: "Line total must be greater than 0",
			})
		}
	}
	return errs
}

// StateOf is the validity state of order, COMMITTED for history records.
func StateOf(order *entity.Order) enum.OrderState {
	if order != nil && order.IsCommitted() {
		return enum.OrderStateCommitted
	}
	return Validate(order).State()
}
