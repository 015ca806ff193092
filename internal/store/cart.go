package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/azadehm/bazaar-golang/internal/models"
)

// CreateCart inserts a new empty cart keyed by a random UUID.
func (s *Store) CreateCart(ctx context.Context) (*models.Cart, error) {
	cart := &models.Cart{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Items:     []models.CartItem{},
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO carts (id, created_at) VALUES (?, ?)",
		cart.ID, cart.CreatedAt)
	if err != nil {
		return nil, err
	}
	cart.TotalPrice = decimal.Zero
	return cart, nil
}

// GetCart loads a cart with its items joined against the current
// product prices. The total is computed live: it always reflects the
// price of the products right now, unlike order totals which are
// frozen at placement time.
func (s *Store) GetCart(ctx context.Context, cartID string) (*models.Cart, error) {
	cart := &models.Cart{ID: cartID}
	err := s.db.QueryRowContext(ctx,
		"SELECT created_at FROM carts WHERE id = ?", cartID).Scan(&cart.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	items, err := s.ListCartItems(ctx, cartID)
	if err != nil {
		return nil, err
	}
	cart.Items = items

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.ItemTotal)
	}
	cart.TotalPrice = total
	return cart, nil
}

// DeleteCart removes a cart; its items go with it (ON DELETE CASCADE).
func (s *Store) DeleteCart(ctx context.Context, cartID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM carts WHERE id = ?", cartID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListCartItems returns the items of a cart with product name, current
// unit price and line total.
func (s *Store) ListCartItems(ctx context.Context, cartID string) ([]models.CartItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
		       p.name, p.unit_price
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.cart_id = ?
		ORDER BY ci.id`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(
			&item.ID, &item.CartID, &item.ProductID, &item.Quantity,
			&item.CreatedAt, &item.UpdatedAt,
			&item.ProductName, &item.UnitPrice,
		); err != nil {
			return nil, err
		}
		item.ItemTotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetCartItem loads one cart item, scoped to its cart.
func (s *Store) GetCartItem(ctx context.Context, cartID string, itemID int64) (*models.CartItem, error) {
	var item models.CartItem
	err := s.db.QueryRowContext(ctx, `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
		       p.name, p.unit_price
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.cart_id = ? AND ci.id = ?`, cartID, itemID).Scan(
		&item.ID, &item.CartID, &item.ProductID, &item.Quantity,
		&item.CreatedAt, &item.UpdatedAt,
		&item.ProductName, &item.UnitPrice,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	item.ItemTotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
	return &item, nil
}

// AddCartItem adds quantity of a product to a cart. Repeated adds of
// the same product accumulate into the single (cart, product) row
// instead of inserting duplicates. The increment is a relative UPDATE,
// so two concurrent adds both land; neither overwrites the other.
func (s *Store) AddCartItem(ctx context.Context, cartID string, productID int64, quantity int) (*models.CartItem, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx,
		"SELECT 1 FROM carts WHERE id = ?", cartID).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := tx.QueryRowContext(ctx,
		"SELECT 1 FROM products WHERE id = ?", productID).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := time.Now()
	res, err := tx.ExecContext(ctx, `
		UPDATE cart_items
		SET quantity = quantity + ?, updated_at = ?
		WHERE cart_id = ? AND product_id = ?`,
		quantity, now, cartID, productID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO cart_items (cart_id, product_id, quantity, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)`,
			cartID, productID, quantity, now, now)
		if err != nil {
			return nil, err
		}
	}

	var itemID int64
	if err := tx.QueryRowContext(ctx,
		"SELECT id FROM cart_items WHERE cart_id = ? AND product_id = ?",
		cartID, productID).Scan(&itemID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.GetCartItem(ctx, cartID, itemID)
}

// SetCartItemQuantity overwrites the quantity of an existing cart
// item. Unlike AddCartItem this does not accumulate: PATCH means "set
// to exactly this".
func (s *Store) SetCartItemQuantity(ctx context.Context, cartID string, itemID int64, quantity int) (*models.CartItem, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE cart_items
		SET quantity = ?, updated_at = ?
		WHERE cart_id = ? AND id = ?`,
		quantity, time.Now(), cartID, itemID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.GetCartItem(ctx, cartID, itemID)
}

// DeleteCartItem removes one item from a cart.
func (s *Store) DeleteCartItem(ctx context.Context, cartID string, itemID int64) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM cart_items WHERE cart_id = ? AND id = ?", cartID, itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
