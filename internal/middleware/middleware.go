package middleware

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/azadehm/bazaar-golang/internal/auth"
)

// AuthMiddleware validates the Bearer token and loads the caller's
// staff flag into the context. Handlers downstream read "userID" and
// "isStaff".
func AuthMiddleware(db *sql.DB, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format (must be Bearer)"})
			c.Abort()
			return
		}

		userID, err := auth.ValidateToken(parts[1], secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		var isStaff bool
		if err := db.QueryRow("SELECT is_staff FROM users WHERE id = ?", userID).Scan(&isStaff); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Set("isStaff", isStaff)
		c.Next()
	}
}

// StaffMiddleware rejects non-staff callers. Must run after
// AuthMiddleware.
func StaffMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		isStaff, exists := c.Get("isStaff")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context (AuthMiddleware must run first)"})
			c.Abort()
			return
		}
		if !isStaff.(bool) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied: staff role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
