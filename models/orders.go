package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. Any status may be written over any other; the kitchen
// workflow is advisory, not a guarded state machine.
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusServed    = "served"
	OrderStatusCancelled = "cancelled"
)

// Order types.
const (
	OrderTypeDineIn   = "dine-in"
	OrderTypeTakeout  = "takeout"
	OrderTypeDelivery = "delivery"
)

// Payment statuses.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// ValidOrderStatus reports whether s belongs to the closed status set.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady,
		OrderStatusServed, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is an order header. After creation only Status and PaymentStatus
// change; the monetary fields and the line items are immutable.
type Order struct {
	ID            uint            `gorm:"primaryKey"`
	OrderNumber   string          `gorm:"uniqueIndex;not null"`
	Type          string          `gorm:"not null;default:dine-in"`
	TableNumber   string
	CustomerName  string
	CustomerPhone string
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Tax           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PaymentStatus string          `gorm:"not null;default:pending"`
	Status        string          `gorm:"index;not null;default:pending"`
	CreatedBy     string
	Items         []OrderItem     `gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time       `gorm:"index"`
	UpdatedAt     time.Time
}

func (o *Order) TableName() string {
	return "orders"
}

// OrderItem is one product line belonging to exactly one order.
// UnitPrice is a snapshot taken at order time and does not follow later
// product price edits.
type OrderItem struct {
	ID         uint            `gorm:"primaryKey"`
	OrderID    uint            `gorm:"index;not null"`
	ProductID  uint            `gorm:"index;not null"`
	Product    Product         `gorm:"foreignKey:ProductID"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt  time.Time
}

func (i *OrderItem) TableName() string {
	return "order_items"
}
