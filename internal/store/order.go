package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/azadehm/bazaar-golang/internal/models"
)

// PlaceOrder converts a cart into an order for the customer paired
// with userID. The whole workflow runs inside one serializable
// transaction: create the order, snapshot every cart item into an
// order item at the product's current price, then delete the cart.
// If anything fails the transaction rolls back and no partial state
// is observable. Two concurrent placements against the same cart
// cannot both succeed: the loser finds the cart row already gone.
func (s *Store) PlaceOrder(ctx context.Context, cartID string, userID int64) (*models.Order, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Preconditions, checked before any mutation.
	var exists int
	if err := tx.QueryRowContext(ctx,
		"SELECT 1 FROM carts WHERE id = ?", cartID).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return nil, &models.ValidationError{Msg: "no such cart"}
		}
		return nil, err
	}

	var customerID int64
	if err := tx.QueryRowContext(ctx,
		"SELECT id FROM customers WHERE user_id = ?", userID).Scan(&customerID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Consistent read of the cart contents together with the current
	// product prices. These prices are about to be captured; later
	// product updates must never reach back into this order.
	rows, err := tx.QueryContext(ctx, `
		SELECT ci.product_id, ci.quantity, p.unit_price, p.name
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.cart_id = ?
		ORDER BY ci.id`, cartID)
	if err != nil {
		return nil, err
	}

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.UnitPrice, &item.ProductName); err != nil {
			rows.Close()
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, &models.ValidationError{Msg: "cart is empty"}
	}

	order := &models.Order{
		CustomerID: customerID,
		Status:     models.OrderStatusUnfulfilled,
		CreatedAt:  time.Now(),
	}
	res, err := tx.ExecContext(ctx,
		"INSERT INTO orders (customer_id, status, created_at) VALUES (?, ?, ?)",
		order.CustomerID, order.Status, order.CreatedAt)
	if err != nil {
		return nil, err
	}
	order.ID, err = res.LastInsertId()
	if err != nil {
		return nil, err
	}

	// Single batch insert for the snapshots.
	placeholders := make([]string, 0, len(items))
	args := make([]interface{}, 0, len(items)*4)
	for _, item := range items {
		placeholders = append(placeholders, "(?, ?, ?, ?)")
		args = append(args, order.ID, item.ProductID, item.Quantity, item.UnitPrice)
	}
	_, err = tx.ExecContext(ctx, fmt.Sprintf(
		"INSERT INTO order_items (order_id, product_id, quantity, unit_price) VALUES %s",
		strings.Join(placeholders, ", ")), args...)
	if err != nil {
		return nil, err
	}

	// Retire the cart. Deleting zero cart rows means another placement
	// consumed this cart first; fail the whole transaction.
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM cart_items WHERE cart_id = ?", cartID); err != nil {
		return nil, err
	}
	res, err = tx.ExecContext(ctx, "DELETE FROM carts WHERE id = ?", cartID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, &models.ValidationError{Msg: "no such cart"}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.GetOrder(ctx, order.ID)
}

// GetOrder loads an order with its customer and item snapshots.
func (s *Store) GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	order := &models.Order{ID: orderID}
	err := s.db.QueryRowContext(ctx,
		"SELECT customer_id, status, created_at FROM orders WHERE id = ?",
		orderID).Scan(&order.CustomerID, &order.Status, &order.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	order.Items, err = s.listOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Customer, err = s.GetCustomer(ctx, order.CustomerID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders returns orders newest first. With onlyUserID > 0 the
// result is restricted to that user's own orders; staff callers pass 0
// to see everything.
func (s *Store) ListOrders(ctx context.Context, onlyUserID int64) ([]models.Order, error) {
	query := `
		SELECT o.id, o.customer_id, o.status, o.created_at
		FROM orders o`
	var args []interface{}
	if onlyUserID > 0 {
		query += `
		JOIN customers c ON o.customer_id = c.id
		WHERE c.user_id = ?`
		args = append(args, onlyUserID)
	}
	query += `
		ORDER BY o.created_at DESC, o.id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Items, err = s.listOrderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// OrderBelongsToUser reports whether the order's customer is paired
// with the given user.
func (s *Store) OrderBelongsToUser(ctx context.Context, orderID, userID int64) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM orders o
		JOIN customers c ON o.customer_id = c.id
		WHERE o.id = ? AND c.user_id = ?`, orderID, userID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateOrderStatus is the only permitted mutation on an order after
// creation.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	if !models.ValidOrderStatus(status) {
		return &models.ValidationError{Msg: "status must be one of unfulfilled, completed, cancelled"}
	}
	res, err := s.db.ExecContext(ctx,
		"UPDATE orders SET status = ? WHERE id = ?", status, orderID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish "missing" from "already at this status".
		var exists int
		if err := s.db.QueryRowContext(ctx,
			"SELECT 1 FROM orders WHERE id = ?", orderID).Scan(&exists); err != nil {
			if err == sql.ErrNoRows {
				return ErrNotFound
			}
			return err
		}
	}
	return nil
}

// DeleteOrder removes an order and its item snapshots (cascade).
func (s *Store) DeleteOrder(ctx context.Context, orderID int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM orders WHERE id = ?", orderID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) listOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.unit_price, p.name
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = ?
		ORDER BY oi.id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID,
			&item.Quantity, &item.UnitPrice, &item.ProductName); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
