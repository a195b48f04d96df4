package request

// UpdateDraftRequest edits order-level fields. Omitted fields are left alone.
type UpdateDraftRequest struct {
	CustomerName       *string  `json:"customer_name" binding:"omitempty,max=255"`
	Phone              *string  `json:"phone" binding:"omitempty,max=50"`
	Address            *string  `json:"address" binding:"omitempty,max=500"`
	Notes              *string  `json:"notes"`
	Date               *string  `json:"date" binding:"omitempty,datetime=2006-01-02"`
	OrderNo            *string  `json:"order_no" binding:"omitempty,max=100"`
	ShippingCollection *float64 `json:"shipping_collection" binding:"omitempty,min=0"`
	ShippingCost       *float64 `json:"shipping_cost" binding:"omitempty,min=0"`
	DiscountPercent    *float64 `json:"discount_percent" binding:"omitempty,min=0,max=100"`
}

// ItemRequest adds or edits a line. Omitted fields are left alone.
type ItemRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=255"`
	Width       *float64 `json:"width" binding:"omitempty,min=0"`
	Length      *float64 `json:"length" binding:"omitempty,min=0"`
	Quantity    *float64 `json:"quantity" binding:"omitempty,min=0"`
	Unit        *string  `json:"unit" binding:"omitempty,max=50"`
	PriceBuy    *float64 `json:"price_buy" binding:"omitempty,min=0"`
	PriceImport *float64 `json:"price_import" binding:"omitempty,min=0"`
}

// SaveDraftRequest represents a save request. ConfirmBelowCost acknowledges
// lines sold below their import price.
type SaveDraftRequest struct {
	ConfirmBelowCost bool `json:"confirm_below_cost"`
}

// OrderFilterRequest represents the history list query
type OrderFilterRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
