package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/azadehm/bazaar-golang/internal/handlers"
	"github.com/azadehm/bazaar-golang/internal/middleware"
)

// SetupRouter assembles the full REST surface.
func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	v1 := router.Group("/v1")
	{
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/auth/register", h.Register)
		v1.POST("/auth/login", h.Login)

		// --- Catalog Routes (Public reads; product writes open like
		// the storefront admin UI expects, category writes staff-only) ---
		v1.GET("/products", h.GetAllProducts)
		v1.POST("/products", h.CreateProduct)
		v1.GET("/products/:id", h.GetProduct)
		v1.PUT("/products/:id", h.UpdateProduct)
		v1.DELETE("/products/:id", h.DeleteProduct)
		v1.GET("/products/:id/comments", h.GetProductComments)
		v1.POST("/products/:id/comments", h.CreateProductComment)

		v1.GET("/categories", h.GetAllCategories)
		v1.GET("/categories/:id", h.GetCategory)

		// --- Cart Routes (Public; the UUID is the capability) ---
		v1.POST("/carts", h.CreateCart)
		v1.GET("/carts/:cart_id", h.GetCart)
		v1.DELETE("/carts/:cart_id", h.DeleteCart)
		v1.POST("/carts/:cart_id/items", h.AddToCart)
		v1.GET("/carts/:cart_id/items", h.GetCartItems)
		v1.PATCH("/carts/:cart_id/items/:item_id", h.UpdateCartItem)
		v1.DELETE("/carts/:cart_id/items/:item_id", h.DeleteCartItem)

		// --- Protected Routes (Login Required) ---
		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware(h.Store.DB(), h.JWTSecret))
		{
			auth.POST("/orders", h.CreateOrder)
			auth.GET("/orders", h.GetOrders)
			auth.GET("/orders/:id", h.GetOrder)

			auth.GET("/customers/me", h.GetMe)
			auth.PUT("/customers/me", h.UpdateMe)
		}

		// --- Staff-Only Routes ---
		staff := v1.Group("/")
		staff.Use(middleware.AuthMiddleware(h.Store.DB(), h.JWTSecret))
		staff.Use(middleware.StaffMiddleware())
		{
			staff.POST("/categories", h.CreateCategory)
			staff.PUT("/categories/:id", h.UpdateCategory)
			staff.DELETE("/categories/:id", h.DeleteCategory)

			staff.PATCH("/orders/:id", h.UpdateOrder)
			staff.DELETE("/orders/:id", h.DeleteOrder)

			staff.GET("/customers", h.GetAllCustomers)
		}
	}

	return router
}
