package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"athlete-app/internal/config"
)

// CORS настраивает Cross-Origin Resource Sharing по конфигурации приложения.
// В debug-режиме при пустом списке источников разрешены любые источники;
// в production пустой список означает запрет кросс-доменных запросов.
func CORS(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	switch {
	case len(cfg.AllowedOrigins) > 0:
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	case gin.Mode() == gin.DebugMode:
		corsConfig.AllowAllOrigins = true
	default:
		corsConfig.AllowOrigins = []string{}
	}

	return cors.New(corsConfig)
}
