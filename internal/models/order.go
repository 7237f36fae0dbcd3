package models

import (
	"time"
)

// OrderType distinguishes how an order leaves the restaurant.
type OrderType string

const (
	OrderTypeDineIn   OrderType = "DINEIN"
	OrderTypeTakeout  OrderType = "TAKEOUT"
	OrderTypeDelivery OrderType = "DELIVERY"
)

// OrderStatus represents the possible states of an order. The forward
// pipeline for DINEIN/TAKEOUT skips EN_REPARTO; DELIVERY passes through it.
type OrderStatus string

const (
	OrderStatusReceived       OrderStatus = "RECIBIDO"
	OrderStatusInProgress     OrderStatus = "EN_PROCESO"
	OrderStatusReadyToPack    OrderStatus = "LISTO_PARA_EMPACAR"
	OrderStatusPacking        OrderStatus = "EMPACANDO"
	OrderStatusReadyToDeliver OrderStatus = "LISTO_PARA_ENTREGAR"
	OrderStatusOutForDelivery OrderStatus = "EN_REPARTO"
	OrderStatusDelivered      OrderStatus = "ENTREGADO"
)

// PaymentStatus is an axis independent of the workflow status.
type PaymentStatus string

const (
	PaymentStatusAwaiting  PaymentStatus = "AWAITING_PAYMENT"
	PaymentStatusPaid      PaymentStatus = "PAID"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

// Station is the kitchen sub-queue an item is routed to.
type Station string

const (
	StationGrill Station = "PLANCHA"
	StationFryer Station = "FREIDORA"
)

// ItemStatus represents the possible states of an order item.
// EN_COLA and PENDIENTE are both accepted as queued predecessors of
// EN_PREPARACION; LISTO is terminal.
type ItemStatus string

const (
	ItemStatusQueued    ItemStatus = "EN_COLA"
	ItemStatusPending   ItemStatus = "PENDIENTE"
	ItemStatusPreparing ItemStatus = "EN_PREPARACION"
	ItemStatusReady     ItemStatus = "LISTO"
)

// Order represents a customer order together with its owned items.
// OrderNumber is the business-facing sequence, unique per OrderDate and
// reset daily; monetary fields are integer cents, computed server-side.
type Order struct {
	ID                 uint          `gorm:"primary_key" json:"id"`
	OrderDate          string        `gorm:"not null;unique_index:idx_orders_date_number" json:"order_date"`
	OrderNumber        int           `gorm:"not null;unique_index:idx_orders_date_number" json:"order_number"`
	Type               OrderType     `gorm:"not null" json:"type"`
	Status             OrderStatus   `gorm:"not null;index" json:"status"`
	PaymentStatus      PaymentStatus `gorm:"not null" json:"payment_status"`
	PaidAt             *time.Time    `json:"paid_at"`
	CustomerName       string        `json:"customer_name"`
	CustomerPhone      string        `json:"customer_phone"`
	AddressJSON        string        `gorm:"type:text" json:"address_json,omitempty"`
	Notes              string        `json:"notes"`
	SubtotalCents      int64         `json:"subtotal_cents"`
	DeliveryFeeCents   int64         `json:"delivery_fee_cents"`
	TotalCents         int64         `json:"total_cents"`
	PrintedCustomerAt  *time.Time    `json:"printed_customer_at"`
	PrintedPackagingAt *time.Time    `json:"printed_packaging_at"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
	Items              []OrderItem   `gorm:"foreignkey:OrderID" json:"items"`
}

// OrderItem represents an item in an order. Name, price and station are
// snapshots taken at order time so later catalog edits never alter
// historical orders; ProductID is a weak back-reference.
type OrderItem struct {
	ID                 uint       `gorm:"primary_key" json:"id"`
	OrderID            uint       `gorm:"not null;index" json:"order_id"`
	ProductID          *uint      `json:"product_id"`
	NameSnapshot       string     `gorm:"not null" json:"name_snapshot"`
	PriceCentsSnapshot int64      `json:"price_cents_snapshot"`
	Qty                int        `gorm:"not null" json:"qty"`
	Station            Station    `gorm:"not null;index" json:"station"`
	Status             ItemStatus `gorm:"not null" json:"status"`
	Notes              string     `json:"notes"`
	GroupID            string     `json:"group_id"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
