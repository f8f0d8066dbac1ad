package middleware

import (
	"time"

	"github.com/chaatgpt/till/internal/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the till front end to call the API from the browser
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins:  cfg.AllowedOrigins,
		AllowMethods:  cfg.AllowedMethods,
		AllowHeaders:  cfg.AllowedHeaders,
		ExposeHeaders: []string{"Content-Length", "Content-Type", "Content-Disposition", RequestIDHeader, IdempotencyReplayHeader},
		MaxAge:        12 * time.Hour,
	}

	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		}
	}

	if len(corsConfig.AllowMethods) == 0 {
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}

	if len(corsConfig.AllowHeaders) == 0 {
		corsConfig.AllowHeaders = []string{
			"Accept",
			"Content-Type",
			"Origin",
			RequestIDHeader,
			IdempotencyKeyHeader,
		}
	} else if !contains(corsConfig.AllowHeaders, IdempotencyKeyHeader) {
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, IdempotencyKeyHeader)
	}

	return cors.New(corsConfig)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
