package entity

import (
	"time"

	"github.com/bacdepzai/orderdesk/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// DefaultUnit is the unit of a freshly added line.
	DefaultUnit = "Cái"
	// AreaUnit replaces the unit when a line becomes area-priced.
	AreaUnit = "Cuộn"
	// WalkInCustomer labels orders saved without a customer name.
	WalkInCustomer = "Khách lẻ"
	// DateLayout is the layout of Order.Date.
	DateLayout = "2006-01-02"
)

// Order is a quotation or invoice. A draft has a nil ID until it is
// committed to history.
type Order struct {
	ID                 uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	CustomerName       string      `gorm:"size:255;index" json:"customer_name"`
	Phone              string      `gorm:"size:50;index" json:"phone"`
	Address            string      `gorm:"size:500" json:"address"`
	Notes              string      `gorm:"type:text" json:"notes"`
	Date               string      `gorm:"size:10;index" json:"date"`
	OrderNo            string      `gorm:"size:100" json:"order_no"`
	ShippingCollection float64     `gorm:"default:0" json:"shipping_collection"`
	ShippingCost       float64     `gorm:"default:0" json:"shipping_cost"`
	DiscountPercent    float64     `gorm:"default:0" json:"discount_percent"`
	CreatedAt          time.Time   `gorm:"index" json:"created_at"`
	Items              []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// Clone returns a deep copy that shares no item storage with o.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	c.Items = make([]OrderItem, len(o.Items))
	copy(c.Items, o.Items)
	return &c
}

// IsCommitted reports whether o came from history.
func (o *Order) IsCommitted() bool {
	return o.ID != uuid.Nil && !o.CreatedAt.IsZero()
}

// DisplayCustomer returns the customer name or the walk-in label.
func (o *Order) DisplayCustomer() string {
	if o.CustomerName == "" {
		return WalkInCustomer
	}
	return o.CustomerName
}

// NewDraft returns an empty draft dated today with one blank line.
func NewDraft(today time.Time) *Order {
	return &Order{
		Date:  today.Format(DateLayout),
		Items: []OrderItem{NewBlankItem()},
	}
}

// OrderItem is a line of an order
type OrderItem struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"-"`
	Position    int              `gorm:"not null;default:0" json:"-"`
	Name        string           `gorm:"size:255" json:"name"`
	Mode        enum.PricingMode `gorm:"size:10" json:"mode"`
	Width       float64          `gorm:"default:0" json:"width"`
	Length      float64          `gorm:"default:0" json:"length"`
	Quantity    float64          `gorm:"default:0" json:"quantity"`
	Unit        string           `gorm:"size:50" json:"unit"`
	PriceBuy    float64          `gorm:"default:0" json:"price_buy"`
	PriceImport float64          `gorm:"default:0" json:"price_import"`
}

// BeforeCreate generates a UUID before creating a new order item
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// NewBlankItem returns a line with quantity 1 and the default unit.
func NewBlankItem() OrderItem {
	return OrderItem{
		ID:       uuid.New(),
		Mode:     enum.PricingModeUnit,
		Quantity: 1,
		Unit:     DefaultUnit,
	}
}
