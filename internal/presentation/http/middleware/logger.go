package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID in and out
const RequestIDHeader = "X-Request-ID"

// LoggerMiddleware logs one line per request, tagged with its request ID.
// Paths in skip are served without a log line.
func LoggerMiddleware(skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if _, ok := skipped[path]; ok {
			return
		}
		if raw != "" {
			path = path + "?" + raw
		}

		tag := shortID(requestID)
		log.Printf("[%s] %s | %d | %v | %s | %s",
			tag,
			c.Request.Method,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
			path,
		)

		for _, e := range c.Errors {
			log.Printf("[%s] Error: %v", tag, e.Err)
		}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
