package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. An order starts unfulfilled; only the status may
// change afterwards.
const (
	OrderStatusUnfulfilled = "unfulfilled"
	OrderStatusCompleted   = "completed"
	OrderStatusCancelled   = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusUnfulfilled, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is the model for the 'orders' table
type Order struct {
	ID         int64     `json:"id" db:"id"`
	CustomerID int64     `json:"customerId" db:"customer_id"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`

	Customer *Customer   `json:"customer,omitempty" db:"-"`
	Items    []OrderItem `json:"items" db:"-"`
}

// Total sums quantity x unit_price over the snapshotted items. Unlike
// a cart total this never tracks later product price changes.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// OrderItem is the model for the 'order_items' table. UnitPrice is the
// product price captured at order time; rows are never mutated.
type OrderItem struct {
	ID        int64           `json:"id" db:"id"`
	OrderID   int64           `json:"orderId" db:"order_id"`
	ProductID int64           `json:"productId" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice" db:"unit_price"`

	ProductName string `json:"productName,omitempty" db:"-"`
}
