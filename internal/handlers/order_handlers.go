package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

//
// --- Order Handlers ---
//

// CreateOrderInput defines the JSON for POST /v1/orders.
type CreateOrderInput struct {
	CartID string `json:"cartId" binding:"required,uuid"`
}

// CreateOrder is the handler for POST /v1/orders. It consumes the
// submitted cart: order items snapshot the cart contents at today's
// prices and the cart is deleted, all inside one transaction.
func (h *Handlers) CreateOrder(c *gin.Context) {
	userID := c.MustGet("userID").(int64)

	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.Store.PlaceOrder(c, input.CartID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// GetOrders is the handler for GET /v1/orders. Staff see every order;
// other callers only their own.
func (h *Handlers) GetOrders(c *gin.Context) {
	userID := c.MustGet("userID").(int64)
	isStaff := c.MustGet("isStaff").(bool)

	onlyUserID := userID
	if isStaff {
		onlyUserID = 0
	}
	orders, err := h.Store.ListOrders(c, onlyUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrder is the handler for GET /v1/orders/:id, restricted to the
// order's owner or staff.
func (h *Handlers) GetOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	userID := c.MustGet("userID").(int64)
	isStaff := c.MustGet("isStaff").(bool)
	if !isStaff {
		mine, err := h.Store.OrderBelongsToUser(c, orderID, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		if !mine {
			// 404, not 403: don't leak other customers' order ids.
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
	}

	order, err := h.Store.GetOrder(c, orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdateOrderInput defines the JSON for PATCH /v1/orders/:id. Status
// is the only mutable field of an order.
type UpdateOrderInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrder is the handler for PATCH /v1/orders/:id (staff only).
func (h *Handlers) UpdateOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var input UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Store.UpdateOrderStatus(c, orderID, input.Status); err != nil {
		respondError(c, err)
		return
	}
	order, err := h.Store.GetOrder(c, orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// DeleteOrder is the handler for DELETE /v1/orders/:id (staff only).
func (h *Handlers) DeleteOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}
	if err := h.Store.DeleteOrder(c, orderID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
