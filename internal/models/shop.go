package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Shop is a campus vendor: a restaurant, grocery store or pharmacy.
type Shop struct {
	BaseModel
	Name                string         `json:"name"`
	Slug                string         `gorm:"uniqueIndex" json:"slug"`
	Category            string         `json:"category"` // food|grocery|medicine
	Description         string         `json:"description"`
	Image               string         `json:"image"`
	Rating              float64        `json:"rating"`
	DeliveryTimeMinutes int            `json:"delivery_time_minutes"`
	IsOpen              bool           `json:"is_open"`
	Tags                pq.StringArray `gorm:"type:text[]" json:"tags"`
	MenuItems           []MenuItem     `json:"menu_items,omitempty"`
}

// MenuItem is a purchasable product listed by a shop. Prices are stored in
// integer cents.
type MenuItem struct {
	BaseModel
	ShopID      uuid.UUID `gorm:"type:uuid;index" json:"shop_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	IsAvailable bool      `json:"is_available"`
}
