package middleware

import (
	"net/http"
	"strings"

	"dulceria_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware creates a Gin middleware for JWT authentication. On success
// the employee's identity from the token claims is attached to the request
// context for downstream handlers.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format. Use Bearer <token>"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			c.Abort()
			return
		}

		c.Set("employeeID", claims.EmployeeID)
		c.Set("employeeName", claims.EmployeeName)
		c.Set("employeeCode", claims.Code)

		c.Next()
	}
}

// EmployeeID extracts the authenticated employee's id from the gin context.
// The boolean is false when AuthMiddleware did not run or did not set it.
func EmployeeID(c *gin.Context) (int64, bool) {
	raw, exists := c.Get("employeeID")
	if !exists {
		return 0, false
	}
	id, ok := raw.(int64)
	return id, ok
}
