package models

import "github.com/google/uuid"

// Cart is the server-side cart, one per account.
type Cart struct {
	BaseModel
	AccountID uuid.UUID  `gorm:"type:uuid;uniqueIndex" json:"account_id"`
	Items     []CartItem `json:"items,omitempty"`
}

// CartItem snapshots a menu item inside a cart. Name, price and image are
// copied at add time so the line survives later menu edits.
type CartItem struct {
	BaseModel
	CartID         uuid.UUID `gorm:"type:uuid;index" json:"cart_id"`
	MenuItemID     uuid.UUID `gorm:"type:uuid;index" json:"menu_item_id"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
	Image          string    `json:"image"`
}
