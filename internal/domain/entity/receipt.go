package entity

// ReceiptHeader is printed at the top of a receipt.
type ReceiptHeader struct {
	ShopName string `json:"shop_name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// ReceiptLine is one item as printed: Detail carries "qty unit x price" or
// "area m2 x price".
type ReceiptLine struct {
	Name   string `json:"name"`
	Detail string `json:"detail"`
	Total  string `json:"total"`
}

// Receipt is composed from an order at print time and is never stored.
type Receipt struct {
	Header             ReceiptHeader `json:"header"`
	OrderNo            string        `json:"order_no"`
	Date               string        `json:"date"`
	Customer           string        `json:"customer"`
	Phone              string        `json:"phone,omitempty"`
	Lines              []ReceiptLine `json:"lines"`
	Subtotal           string        `json:"subtotal"`
	DiscountPercent    string        `json:"discount_percent"`
	DiscountAmount     string        `json:"discount_amount"`
	ShippingCost       string        `json:"shipping_cost"`
	ShippingCollection string        `json:"shipping_collection"`
	GrandTotal         string        `json:"grand_total"`
	Notes              string        `json:"notes,omitempty"`
}
