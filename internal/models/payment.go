package models

import (
	"time"
)

// Payment records one successful or attempted charge against an order.
// An order may accumulate several rows (webhook retries); only the first
// one marks the order PAID. RawJSON keeps the provider payload verbatim.
type Payment struct {
	ID          uint      `gorm:"primary_key" json:"id"`
	OrderID     uint      `gorm:"not null;index" json:"order_id"`
	AmountCents int64     `gorm:"not null" json:"amount_cents"`
	Method      string    `json:"method"`
	Provider    string    `json:"provider"`
	Status      string    `json:"status"`
	ExternalID  string    `json:"external_id"`
	Currency    string    `json:"currency"`
	RawJSON     string    `gorm:"type:text" json:"raw_json,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
