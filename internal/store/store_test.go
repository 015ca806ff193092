package store

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/azadehm/bazaar-golang/internal/models"
)

// newTestStore opens an in-memory sqlite database with the test
// schema applied. A single connection keeps the shared in-memory
// database visible to every caller and serializes writers.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)

	_, err = db.Exec("PRAGMA foreign_keys=ON")
	require.NoError(t, err)

	schema, err := os.ReadFile("testdata/schema.sql")
	require.NoError(t, err)
	for _, stmt := range strings.Split(string(schema), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	return New(db)
}

func seedUser(t *testing.T, s *Store, email string) *models.User {
	t.Helper()
	user, err := s.CreateUser(context.Background(), &models.User{
		Email:        email,
		PasswordHash: "not-a-real-hash",
		FirstName:    "Test",
		LastName:     "Shopper",
	})
	require.NoError(t, err)
	return user
}

func seedCategory(t *testing.T, s *Store, title string) *models.Category {
	t.Helper()
	cat, err := s.CreateCategory(context.Background(), &models.CreateCategoryInput{
		Title:       title,
		Description: "seeded",
	})
	require.NoError(t, err)
	return cat
}

func seedProduct(t *testing.T, s *Store, categoryID int64, name, price string) *models.Product {
	t.Helper()
	product, err := s.CreateProduct(context.Background(), &models.ProductInput{
		Name:       name,
		UnitPrice:  decimal.RequireFromString(price),
		Inventory:  100,
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return product
}

func seedCart(t *testing.T, s *Store) *models.Cart {
	t.Helper()
	cart, err := s.CreateCart(context.Background())
	require.NoError(t, err)
	return cart
}

// productInputFrom rebuilds an input from an existing product with a
// new price, for update calls in tests.
func productInputFrom(p *models.Product, price string) *models.ProductInput {
	return &models.ProductInput{
		Name:        p.Name,
		Description: p.Description,
		UnitPrice:   decimal.RequireFromString(price),
		Inventory:   p.Inventory,
		CategoryID:  p.CategoryID,
	}
}

// requireDecimalEqual compares by numeric value so "100" and "100.00"
// don't spuriously differ.
func requireDecimalEqual(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(want).Equal(got),
		"expected %s, got %s", want, got)
}
