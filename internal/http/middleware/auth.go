package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
	"github.com/ignatzorin/marketplace-backend/internal/interface/http/response"
	"github.com/ignatzorin/marketplace-backend/internal/service"
)

// ContextRecipientKey хранит в gin.Context участника, предъявившего токен.
const ContextRecipientKey = "recipient"

// AuthMiddleware проверяет JWT access токен и кладёт участника в контекст.
func AuthMiddleware(tokens *service.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			response.Unauthorized(c, "требуется авторизация")
			c.Abort()
			return
		}

		raw := strings.TrimPrefix(auth, "Bearer ")
		to, err := tokens.ParseRecipient(raw)
		if err != nil {
			response.Unauthorized(c, "токен невалиден")
			c.Abort()
			return
		}

		c.Set(ContextRecipientKey, to)
		c.Next()
	}
}

// RecipientFrom возвращает участника, установленного AuthMiddleware.
func RecipientFrom(c *gin.Context) (entity.Recipient, bool) {
	v, ok := c.Get(ContextRecipientKey)
	if !ok {
		return entity.Recipient{}, false
	}
	to, ok := v.(entity.Recipient)
	return to, ok
}
