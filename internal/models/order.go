package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is an immutable record of a placed order, including the full pricing
// breakdown. All monetary columns are integer cents.
type Order struct {
	BaseModel
	AccountID   uuid.UUID `gorm:"type:uuid;index" json:"account_id"`
	OrderNumber string    `gorm:"uniqueIndex" json:"order_number"`
	Status      string    `json:"status"`
	PlacedAt    time.Time `json:"placed_at"`

	DeliveryMethod string `json:"delivery_method"` // standard|express
	DormDrop       bool   `json:"dorm_drop"`
	HostelName     string `json:"hostel_name"`
	RoomNumber     string `json:"room_number"`
	Address        string `json:"address"`
	PaymentMethod  string `json:"payment_method"` // card|cash

	SubtotalCents        int64 `json:"subtotal_cents"`
	BaseDeliveryFeeCents int64 `json:"base_delivery_fee_cents"`
	DormDropFeeCents     int64 `json:"dorm_drop_fee_cents"`
	TaxCents             int64 `json:"tax_cents"`
	CoinsUsed            int   `json:"coins_used"`
	CoinDiscountCents    int64 `json:"coin_discount_cents"`
	CoinsEarned          int   `json:"coins_earned"`
	IsPro                bool  `json:"is_pro"`
	ProDiscountCents     int64 `json:"pro_discount_cents"`
	TotalCents           int64 `json:"total_cents"`

	Items []OrderItem `json:"items,omitempty"`
}

// OrderItem is a cart line frozen at placement time.
type OrderItem struct {
	BaseModel
	OrderID        uuid.UUID `gorm:"type:uuid;index" json:"order_id"`
	MenuItemID     uuid.UUID `gorm:"type:uuid" json:"menu_item_id"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
	Image          string    `json:"image"`
	LineTotalCents int64     `json:"line_total_cents"`
}
