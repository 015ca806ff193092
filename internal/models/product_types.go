package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the model for the 'products' table.
type Product struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Slug        string          `json:"slug" db:"slug"`
	Description string          `json:"description" db:"description"`
	UnitPrice   decimal.Decimal `json:"unitPrice" db:"unit_price"`
	Inventory   int             `json:"inventory" db:"inventory"`
	CategoryID  int64           `json:"categoryId" db:"category_id"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// DiscountPrice is a derived representation field (9% of the current
// unit price), never persisted.
func (p *Product) DiscountPrice() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromFloat(0.09))
}

// ProductInput defines the JSON accepted when creating or updating a product.
// The slug is always derived from the name server-side, never accepted.
type ProductInput struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
	Inventory   int             `json:"inventory" binding:"gte=0"`
	CategoryID  int64           `json:"categoryId" binding:"required"`
}

// Validate enforces the product business rules.
func (in *ProductInput) Validate() error {
	if len(in.Name) < 6 {
		return &ValidationError{Msg: "the length of name must be at least 6 characters"}
	}
	if !in.UnitPrice.IsPositive() {
		return &ValidationError{Msg: "unit price must be greater than zero"}
	}
	return nil
}
