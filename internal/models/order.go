// internal/models/order.go
package models

import (
	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// statusRank orders the forward chain. Cancelled and Delivered are terminal.
var statusRank = map[OrderStatus]int{
	OrderStatusProcessing: 0,
	OrderStatusConfirmed:  1,
	OrderStatusShipped:    2,
	OrderStatusDelivered:  3,
}

func (s OrderStatus) IsValid() bool {
	if s == OrderStatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo reports whether target is reachable from s. Forward jumps
// along processing -> confirmed -> shipped -> delivered are legal; backward
// moves and moves out of a terminal status are not. Cancellation is reachable
// from any non-terminal status.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if target == OrderStatusCancelled {
		return true
	}
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[target]
	if !ok {
		return false
	}
	return to > from
}

type Order struct {
	BaseModel
	OrderNumber string      `json:"order_number" gorm:"size:20;uniqueIndex;not null"`
	TotalAmount float64     `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Status      OrderStatus `json:"status" gorm:"type:varchar(20);default:'processing';index"`
	// Profit is populated if and only if the order is delivered.
	Profit *float64 `json:"profit,omitempty" gorm:"type:decimal(10,2)"`

	// Customer and address snapshots, frozen at checkout.
	CustomerName    string `json:"customer_name" gorm:"size:120;not null"`
	CustomerEmail   string `json:"customer_email" gorm:"size:255"`
	CustomerPhone   string `json:"customer_phone" gorm:"size:20"`
	ShippingAddress JSONB  `json:"shipping_address" gorm:"type:jsonb;not null"`

	// Reseller attribution, snapshotted at creation and never re-derived.
	StoreID           uuid.UUID `json:"store_id" gorm:"type:uuid;not null;index"`
	StoreOwnerID      uuid.UUID `json:"store_owner_id" gorm:"type:uuid;not null;index"`
	StoreContactEmail string    `json:"store_contact_email" gorm:"size:255"`

	PaymentReference string `json:"payment_reference,omitempty" gorm:"size:255"`

	// Relationships
	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	Store *Store      `json:"store,omitempty" gorm:"foreignKey:StoreID"`
}

// OrderItem is a line item carrying a product snapshot; live product price
// changes never affect an existing order.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	UnitPrice float64   `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Size      string    `json:"size,omitempty" gorm:"size:20"`
	Color     string    `json:"color,omitempty" gorm:"size:40"`
	ImageURL  string    `json:"image_url,omitempty" gorm:"size:500"`
}
