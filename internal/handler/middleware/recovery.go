package middleware

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"athlete-app/internal/handler/response"
)

// Recovery middleware для обработки паник и предотвращения краша приложения.
// Ошибка возвращается в едином формате ответа API.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		// Логируем панику с контекстом запроса
		log.Printf("[PANIC] %s %s from %s: %v\n",
			c.Request.Method, c.Request.URL.Path, c.ClientIP(), recovered)

		// В production режиме не показываем детали ошибки
		message := "An unexpected error occurred. Please try again later."
		if gin.Mode() == gin.DebugMode {
			message = fmt.Sprintf("%v", recovered)
		}

		response.Error(c, http.StatusInternalServerError, response.CodeInternalError, message, nil)
		c.Abort()
	})
}
