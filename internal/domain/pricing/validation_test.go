package pricing

import (
	"testing"
	"time"

	"github.com/bacdepzai/orderdesk/internal/domain/entity"
	"github.com/bacdepzai/orderdesk/internal/domain/enum"
	"github.com/google/uuid"
)

func TestValidate_Items(t *testing.T) {
	tests := []struct {
		name         string
		item         entity.OrderItem
		paperError   bool
		zeroTotal    bool
		priceWarning bool
	}{
		{"valid area", areaItem(1, 2, 1, 10000), false, false, false},
		{"missing width", areaItem(0, 2, 1, 10000), true, true, false},
		{"missing length", areaItem(1, -1, 1, 10000), true, true, false},
		{"zero quantity", unitItem(0, 10000), false, true, false},
		{"zero price", unitItem(3, 0), false, true, false},
		{"below cost", entity.OrderItem{Name: "Mực", Mode: enum.PricingModeUnit, Quantity: 1, PriceBuy: 90, PriceImport: 100}, false, false, true},
		{"zero price is not a price warning", entity.OrderItem{Name: "Mực", Mode: enum.PricingModeUnit, Quantity: 1, PriceImport: 100}, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Validate(&entity.Order{Items: []entity.OrderItem{tt.item}})
			iv := v.Items[0]
			if iv.PaperError != tt.paperError || iv.ZeroTotal != tt.zeroTotal || iv.PriceWarning != tt.priceWarning {
				t.Errorf("Validate() = %+v, want paper=%v zero=%v warn=%v", iv, tt.paperError, tt.zeroTotal, tt.priceWarning)
			}
			if v.HasBlockingError != (tt.paperError || tt.zeroTotal) {
				t.Errorf("HasBlockingError = %v", v.HasBlockingError)
			}
			if v.HasPriceWarning != tt.priceWarning {
				t.Errorf("HasPriceWarning = %v", v.HasPriceWarning)
			}
		})
	}
}

func TestValidate_RollUp(t *testing.T) {
	id := uuid.New()
	good := unitItem(1, 100)
	bad := areaItem(0, 3, 1, 10000)
	bad.ID = id

	v := Validate(&entity.Order{Items: []entity.OrderItem{good, bad}})
	if !v.HasBlockingError {
		t.Fatal("width=0 on an area item must block")
	}
	if v.State() != enum.OrderStateEditing {
		t.Errorf("State() = %s, want EDITING", v.State())
	}
	if v.Items[1].ItemID != id || v.Items[1].Index != 1 {
		t.Errorf("item validation not tied to its line: %+v", v.Items[1])
	}

	errs := v.FieldErrors()
	if len(errs) != 2 || errs[0].Field != "items[1].width" {
		t.Errorf("FieldErrors() = %+v", errs)
	}
}

func TestValidate_StateTransitions(t *testing.T) {
	o := &entity.Order{Items: []entity.OrderItem{areaItem(1, 1, 1, 1000)}}
	if StateOf(o) != enum.OrderStateFinalizable {
		t.Fatalf("StateOf() = %s, want FINALIZABLE", StateOf(o))
	}

	o.Items[0].Width = 0
	if StateOf(o) != enum.OrderStateEditing {
		t.Errorf("edit reintroducing an error should go back to EDITING, got %s", StateOf(o))
	}

	o.Items[0].Width = 1
	o.ID = uuid.New()
	o.CreatedAt = time.Now()
	if StateOf(o) != enum.OrderStateCommitted {
		t.Errorf("StateOf(history record) = %s, want COMMITTED", StateOf(o))
	}
}

func TestValidate_Empty(t *testing.T) {
	v := Validate(nil)
	if v.HasBlockingError || v.HasPriceWarning || v.Items == nil {
		t.Errorf("Validate(nil) = %+v", v)
	}
}
