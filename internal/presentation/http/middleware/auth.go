package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-pos/internal/presentation/http/handler"
	"github.com/sangkips/retail-pos/pkg/utils"
)

// OptionalAuthMiddleware reads a bearer session token when present and puts
// the cashier identity in the context. Requests without a valid token pass
// through unchanged.
func OptionalAuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Next()
			return
		}

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			c.Next()
			return
		}

		c.Set(handler.ContextUserID, claims.UserID)
		c.Set(handler.ContextUsername, claims.Username)
		c.Set(handler.ContextFullName, claims.FullName)
		c.Set(handler.ContextRole, claims.Role)

		c.Next()
	}
}
