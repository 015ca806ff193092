package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart defines the struct for the 'carts' table. The ID is an opaque
// random UUID so cart URLs are not guessable; a cart only exists until
// it is consumed by order placement.
type Cart struct {
	ID        string    `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	Items      []CartItem      `json:"items" db:"-"`
	TotalPrice decimal.Decimal `json:"totalPrice" db:"-"`
}

// CartItem defines the struct for the 'cart_items' table.
// (cart_id, product_id) is unique; adding the same product again
// accumulates into the existing row.
type CartItem struct {
	ID        int64     `json:"id" db:"id"`
	CartID    string    `json:"-" db:"cart_id"`
	ProductID int64     `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Joined product fields for cart responses
	ProductName string          `json:"productName,omitempty" db:"-"`
	UnitPrice   decimal.Decimal `json:"unitPrice" db:"-"`
	ItemTotal   decimal.Decimal `json:"itemTotal" db:"-"`
}
