package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles пропускает только пользователей с одной из перечисленных ролей.
// Должен стоять после AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(ContextRoleKey)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
			return
		}

		current, _ := role.(string)
		for _, allowed := range roles {
			if current == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "недостаточно прав"})
	}
}
