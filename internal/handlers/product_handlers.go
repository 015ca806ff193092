package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/azadehm/bazaar-golang/internal/models"
	"github.com/azadehm/bazaar-golang/internal/store"
)

// productResponse flattens a product with its derived discount price.
type productResponse struct {
	*models.Product
	DiscountPrice string `json:"discountPrice"`
}

func newProductResponse(p *models.Product) productResponse {
	return productResponse{Product: p, DiscountPrice: p.DiscountPrice().StringFixed(2)}
}

// GetAllProducts is the handler for GET /v1/products. Supports
// ?search=, ?category=, ?limit= and ?offset=.
func (h *Handlers) GetAllProducts(c *gin.Context) {
	var filter store.ProductFilter
	filter.Search = c.Query("search")
	filter.CategoryID, _ = strconv.ParseInt(c.Query("category"), 10, 64)
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	products, err := h.Store.ListProducts(c, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]productResponse, 0, len(products))
	for i := range products {
		out = append(out, newProductResponse(&products[i]))
	}
	c.JSON(http.StatusOK, gin.H{"products": out})
}

// GetProduct is the handler for GET /v1/products/:id.
func (h *Handlers) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}
	product, err := h.Store.GetProduct(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": newProductResponse(product)})
}

// CreateProduct is the handler for POST /v1/products. The slug is
// derived from the name server-side.
func (h *Handlers) CreateProduct(c *gin.Context) {
	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := input.Validate(); err != nil {
		respondError(c, err)
		return
	}

	product, err := h.Store.CreateProduct(c, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": newProductResponse(product)})
}

// UpdateProduct is the handler for PUT /v1/products/:id. The slug is
// recomputed from the submitted name.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := input.Validate(); err != nil {
		respondError(c, err)
		return
	}

	product, err := h.Store.UpdateProduct(c, id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": newProductResponse(product)})
}

// DeleteProduct is the handler for DELETE /v1/products/:id. Deletion
// is refused while any historical order item references the product.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}
	if err := h.Store.DeleteProduct(c, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

//
// --- Comments (nested under products) ---
//

// GetProductComments is the handler for GET /v1/products/:id/comments.
func (h *Handlers) GetProductComments(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}
	comments, err := h.Store.ListComments(c, productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// CreateProductComment is the handler for POST /v1/products/:id/comments.
func (h *Handlers) CreateProductComment(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var input models.CreateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.Store.CreateComment(c, productID, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}
