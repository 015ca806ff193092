package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/azadehm/bazaar-golang/internal/models"
)

//
// --- Categories ---
//

// ListCategories returns all categories with their product counts.
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.title, c.description, COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		GROUP BY c.id, c.title, c.description
		ORDER BY c.title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Title, &cat.Description, &cat.NumberOfProducts); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

// GetCategory fetches a single category with its product count.
func (s *Store) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	var cat models.Category
	err := s.db.QueryRowContext(ctx, `
		SELECT c.id, c.title, c.description, COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		WHERE c.id = ?
		GROUP BY c.id, c.title, c.description`, id).Scan(
		&cat.ID, &cat.Title, &cat.Description, &cat.NumberOfProducts)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cat, nil
}

// CreateCategory inserts a new category.
func (s *Store) CreateCategory(ctx context.Context, in *models.CreateCategoryInput) (*models.Category, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (title, description) VALUES (?, ?)",
		in.Title, in.Description)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Category{ID: id, Title: in.Title, Description: in.Description}, nil
}

// UpdateCategory overwrites title and description.
func (s *Store) UpdateCategory(ctx context.Context, id int64, in *models.CreateCategoryInput) (*models.Category, error) {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return nil, err
	}
	_, err := s.db.ExecContext(ctx,
		"UPDATE categories SET title = ?, description = ? WHERE id = ?",
		in.Title, in.Description, id)
	if err != nil {
		return nil, err
	}
	return s.GetCategory(ctx, id)
}

// DeleteCategory removes a category unless products still reference
// it. Categorized products must be moved or deleted first.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	var refs int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM products WHERE category_id = ?", id).Scan(&refs)
	if err != nil {
		return err
	}
	if refs > 0 {
		return ErrConflict
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

//
// --- Products ---
//

// ProductFilter narrows and pages ListProducts.
type ProductFilter struct {
	Search     string // case-insensitive name substring
	CategoryID int64
	Limit      int
	Offset     int
}

// ListProducts returns products, optionally filtered by name search
// and category, with limit/offset paging.
func (s *Store) ListProducts(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	query := `
		SELECT id, name, slug, description, unit_price, inventory, category_id, created_at, updated_at
		FROM products
		WHERE 1=1`
	var args []interface{}
	if f.Search != "" {
		query += " AND LOWER(name) LIKE ?"
		args = append(args, "%"+strings.ToLower(f.Search)+"%")
	}
	if f.CategoryID > 0 {
		query += " AND category_id = ?"
		args = append(args, f.CategoryID)
	}
	query += " ORDER BY name"
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Description,
			&p.UnitPrice, &p.Inventory, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetProduct fetches one product.
func (s *Store) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, slug, description, unit_price, inventory, category_id, created_at, updated_at
		FROM products WHERE id = ?`, id).Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description,
		&p.UnitPrice, &p.Inventory, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// CreateProduct inserts a product. The slug is always derived from the
// name.
func (s *Store) CreateProduct(ctx context.Context, in *models.ProductInput) (*models.Product, error) {
	if _, err := s.GetCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	now := time.Now()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO products (name, slug, description, unit_price, inventory, category_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Name, slug.Make(in.Name), in.Description, in.UnitPrice,
		in.Inventory, in.CategoryID, now, now)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, id)
}

// UpdateProduct overwrites a product. The slug is recomputed from the
// (possibly new) name on every update.
func (s *Store) UpdateProduct(ctx context.Context, id int64, in *models.ProductInput) (*models.Product, error) {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.GetCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	_, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, slug = ?, description = ?, unit_price = ?, inventory = ?, category_id = ?, updated_at = ?
		WHERE id = ?`,
		in.Name, slug.Make(in.Name), in.Description, in.UnitPrice,
		in.Inventory, in.CategoryID, time.Now(), id)
	if err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, id)
}

// DeleteProduct removes a product unless an order item snapshot still
// references it; historical orders must keep resolving their products.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	var refs int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM order_items WHERE product_id = ?", id).Scan(&refs)
	if err != nil {
		return err
	}
	if refs > 0 {
		return ErrConflict
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

//
// --- Comments ---
//

// ListComments returns the comments of a product, newest first.
func (s *Store) ListComments(ctx context.Context, productID int64) ([]models.Comment, error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product_id, name, body, created_at
		FROM comments WHERE product_id = ?
		ORDER BY created_at DESC, id DESC`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var cm models.Comment
		if err := rows.Scan(&cm.ID, &cm.ProductID, &cm.Name, &cm.Body, &cm.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, cm)
	}
	return comments, rows.Err()
}

// CreateComment attaches a comment to a product.
func (s *Store) CreateComment(ctx context.Context, productID int64, in *models.CreateCommentInput) (*models.Comment, error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	cm := &models.Comment{
		ProductID: productID,
		Name:      in.Name,
		Body:      in.Body,
		CreatedAt: time.Now(),
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO comments (product_id, name, body, created_at) VALUES (?, ?, ?, ?)",
		cm.ProductID, cm.Name, cm.Body, cm.CreatedAt)
	if err != nil {
		return nil, err
	}
	cm.ID, err = res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return cm, nil
}
