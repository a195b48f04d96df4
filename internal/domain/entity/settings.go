package entity

import "time"

// ShopSettingsID is the primary key of the single settings row.
const ShopSettingsID = 1

// ShopSettings holds the owner PIN and owner preferences
type ShopSettings struct {
	ID               uint      `gorm:"primaryKey" json:"-"`
	OwnerPinHash     string    `gorm:"size:100" json:"-"`
	ShowCostOnScreen bool      `json:"show_cost_on_screen"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName returns the table name for the ShopSettings model
func (ShopSettings) TableName() string {
	return "shop_settings"
}

// HasPin reports whether an owner PIN was set.
func (s *ShopSettings) HasPin() bool {
	return s != nil && s.OwnerPinHash != ""
}
