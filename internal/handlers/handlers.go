package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/azadehm/bazaar-golang/internal/models"
	"github.com/azadehm/bazaar-golang/internal/store"
)

// Handlers holds all dependencies for the HTTP layer. The store is
// injected here once and passed explicitly; there is no package-level
// connection state.
type Handlers struct {
	Store     *store.Store
	JWTSecret []byte
}

// respondError maps store errors onto the HTTP taxonomy: business-rule
// violations 400, missing entities 404, blocked deletes 409,
// everything else 500. Nothing is swallowed.
func respondError(c *gin.Context, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Msg})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
