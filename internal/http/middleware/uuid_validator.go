package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-backend/internal/interface/http/response"
)

// UUIDValidator проверяет, что перечисленные параметры пути являются валидными UUID.
// Использование: router.GET("/proposals/:id", UUIDValidator("id"), handler.GetProposal)
func UUIDValidator(paramNames ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, name := range paramNames {
			idStr := c.Param(name)
			if idStr == "" {
				response.BadRequest(c, "параметр "+name+" обязателен")
				c.Abort()
				return
			}

			if _, err := uuid.Parse(idStr); err != nil {
				response.BadRequest(c, "параметр "+name+" должен быть валидным UUID")
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
