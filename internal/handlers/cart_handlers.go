package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

//
// --- Cart Handlers ---
//
// Carts are addressed by their opaque UUID; no authentication is
// required to build one. The id is the capability.
//

// CreateCart is the handler for POST /v1/carts.
func (h *Handlers) CreateCart(c *gin.Context) {
	cart, err := h.Store.CreateCart(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"cart": cart})
}

// GetCart is the handler for GET /v1/carts/:cart_id. The total is
// computed from the products' current prices, so it can drift as
// prices change; only order placement freezes them.
func (h *Handlers) GetCart(c *gin.Context) {
	cart, err := h.Store.GetCart(c, c.Param("cart_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

// DeleteCart is the handler for DELETE /v1/carts/:cart_id.
func (h *Handlers) DeleteCart(c *gin.Context) {
	if err := h.Store.DeleteCart(c, c.Param("cart_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddToCartInput defines the JSON for adding an item to a cart.
type AddToCartInput struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// AddToCart is the handler for POST /v1/carts/:cart_id/items. Adding a
// product already in the cart accumulates its quantity instead of
// inserting a second row.
func (h *Handlers) AddToCart(c *gin.Context) {
	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	item, err := h.Store.AddCartItem(c, c.Param("cart_id"), input.ProductID, input.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// GetCartItems is the handler for GET /v1/carts/:cart_id/items.
func (h *Handlers) GetCartItems(c *gin.Context) {
	cartID := c.Param("cart_id")
	if _, err := h.Store.GetCart(c, cartID); err != nil {
		respondError(c, err)
		return
	}
	items, err := h.Store.ListCartItems(c, cartID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// UpdateCartItemInput defines the JSON for setting an item's quantity.
type UpdateCartItemInput struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// UpdateCartItem is the handler for PATCH /v1/carts/:cart_id/items/:item_id.
// PATCH sets the quantity exactly; only POST accumulates.
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("item_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	var input UpdateCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.Store.SetCartItemQuantity(c, c.Param("cart_id"), itemID, input.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteCartItem is the handler for DELETE /v1/carts/:cart_id/items/:item_id.
func (h *Handlers) DeleteCartItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("item_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}
	if err := h.Store.DeleteCartItem(c, c.Param("cart_id"), itemID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
