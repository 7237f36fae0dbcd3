package models

import (
	"time"
)

// Category groups catalog products for display ordering.
type Category struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// Product is a catalog entry. Station decides which kitchen queue items
// of this product are routed to at order time.
type Product struct {
	ID          uint      `gorm:"primary_key" json:"id"`
	CategoryID  uint      `gorm:"index" json:"category_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `gorm:"not null" json:"price_cents"`
	Station     Station   `gorm:"not null" json:"station"`
	IsAvailable bool      `gorm:"default:true" json:"is_available"`
	ImageURL    string    `json:"image_url"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
