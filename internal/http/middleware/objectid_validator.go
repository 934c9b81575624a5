package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prokvartiru/review-backend/internal/validation"
)

// ObjectIDValidator проверяет, что параметр с указанным именем является
// валидным ObjectID, до обращения к базе.
// Использование: router.GET("/reviews/:id", ObjectIDValidator("id"), handler.Get)
func ObjectIDValidator(paramNames ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, name := range paramNames {
			idStr := c.Param(name)
			if idStr == "" {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": "параметр " + name + " обязателен",
				})
				c.Abort()
				return
			}

			if !validation.ValidObjectID(idStr) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": "параметр " + name + " должен быть валидным идентификатором",
				})
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
