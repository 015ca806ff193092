package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCartItemAccumulates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cat := seedCategory(t, s, "Books")
	product := seedProduct(t, s, cat.ID, "Paper Novel", "15.50")
	cart := seedCart(t, s)

	first, err := s.AddCartItem(ctx, cart.ID, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)

	second, err := s.AddCartItem(ctx, cart.ID, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "duplicate add must reuse the existing row")
	assert.Equal(t, 4, second.Quantity)

	items, err := s.ListCartItems(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)
}

func TestAddCartItemUnknownCartOrProduct(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cat := seedCategory(t, s, "Books")
	product := seedProduct(t, s, cat.ID, "Paper Novel", "15.50")
	cart := seedCart(t, s)

	_, err := s.AddCartItem(ctx, "00000000-0000-0000-0000-000000000000", product.ID, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.AddCartItem(ctx, cart.ID, 9999, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentAddsBothLand(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cat := seedCategory(t, s, "Books")
	product := seedProduct(t, s, cat.ID, "Paper Novel", "15.50")
	cart := seedCart(t, s)

	_, err := s.AddCartItem(ctx, cart.ID, product.ID, 1)
	require.NoError(t, err)

	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := s.AddCartItem(ctx, cart.ID, product.ID, 3)
			done <- err
		}()
	}
	require.NoError(t, <-done)
	require.NoError(t, <-done)

	items, err := s.ListCartItems(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity, "neither increment may be lost")
}

func TestSetCartItemQuantityOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cat := seedCategory(t, s, "Books")
	product := seedProduct(t, s, cat.ID, "Paper Novel", "15.50")
	cart := seedCart(t, s)

	item, err := s.AddCartItem(ctx, cart.ID, product.ID, 5)
	require.NoError(t, err)

	// PATCH semantics: set, don't accumulate.
	updated, err := s.SetCartItemQuantity(ctx, cart.ID, item.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Quantity)

	_, err = s.SetCartItemQuantity(ctx, cart.ID, 9999, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCartItem(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cat := seedCategory(t, s, "Books")
	product := seedProduct(t, s, cat.ID, "Paper Novel", "15.50")
	cart := seedCart(t, s)

	item, err := s.AddCartItem(ctx, cart.ID, product.ID, 1)
	require.NoError(t, err)

	require.NoError(t, s.DeleteCartItem(ctx, cart.ID, item.ID))
	assert.ErrorIs(t, s.DeleteCartItem(ctx, cart.ID, item.ID), ErrNotFound)

	items, err := s.ListCartItems(ctx, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDeleteCartCascadesItems(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cat := seedCategory(t, s, "Books")
	product := seedProduct(t, s, cat.ID, "Paper Novel", "15.50")
	cart := seedCart(t, s)

	_, err := s.AddCartItem(ctx, cart.ID, product.ID, 1)
	require.NoError(t, err)

	require.NoError(t, s.DeleteCart(ctx, cart.ID))

	_, err = s.GetCart(ctx, cart.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var orphans int
	err = s.db.QueryRow("SELECT COUNT(*) FROM cart_items WHERE cart_id = ?", cart.ID).Scan(&orphans)
	require.NoError(t, err)
	assert.Zero(t, orphans)
}

func TestCartTotalTracksCurrentPrices(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cat := seedCategory(t, s, "Books")
	novel := seedProduct(t, s, cat.ID, "Paper Novel", "100")
	atlas := seedProduct(t, s, cat.ID, "World Atlas", "40")
	cart := seedCart(t, s)

	_, err := s.AddCartItem(ctx, cart.ID, novel.ID, 2)
	require.NoError(t, err)
	_, err = s.AddCartItem(ctx, cart.ID, atlas.ID, 1)
	require.NoError(t, err)

	loaded, err := s.GetCart(ctx, cart.ID)
	require.NoError(t, err)
	requireDecimalEqual(t, "240", loaded.TotalPrice)

	// A price change is immediately visible in the live cart total.
	_, err = s.UpdateProduct(ctx, novel.ID, productInputFrom(novel, "200"))
	require.NoError(t, err)

	loaded, err = s.GetCart(ctx, cart.ID)
	require.NoError(t, err)
	requireDecimalEqual(t, "440", loaded.TotalPrice)
}
