package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/azadehm/bazaar-golang/internal/models"
)

// GetMe is the handler for GET /v1/customers/me.
func (h *Handlers) GetMe(c *gin.Context) {
	userID := c.MustGet("userID").(int64)

	customer, err := h.Store.GetCustomerByUserID(c, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

// UpdateMe is the handler for PUT /v1/customers/me.
func (h *Handlers) UpdateMe(c *gin.Context) {
	userID := c.MustGet("userID").(int64)

	var input models.UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	birthDate, err := input.ParseBirthDate()
	if err != nil {
		respondError(c, err)
		return
	}

	customer, err := h.Store.GetCustomerByUserID(c, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	customer, err = h.Store.UpdateCustomerBirthDate(c, customer.ID, birthDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

// GetAllCustomers is the handler for GET /v1/customers (staff only).
func (h *Handlers) GetAllCustomers(c *gin.Context) {
	customers, err := h.Store.ListCustomers(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}
