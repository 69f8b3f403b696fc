package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"athlete-app/pkg/logger"
)

// Logger middleware для логирования HTTP запросов
func Logger() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	})
}

// LoggerStructured логирует запросы через общий интерфейс logger.Logger.
func LoggerStructured(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Начало запроса
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// Обрабатываем запрос
		c.Next()

		// Вычисляем время выполнения
		latency := time.Since(start)
		if raw != "" {
			path = path + "?" + raw
		}

		fields := map[string]any{
			"method":  c.Request.Method,
			"path":    path,
			"status":  c.Writer.Status(),
			"latency": latency.String(),
			"ip":      c.ClientIP(),
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			fields["errors"] = errs
		}

		if c.Writer.Status() >= 500 {
			log.Error("http request", fields)
			return
		}
		log.Info("http request", fields)
	}
}
