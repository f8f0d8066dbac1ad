package middleware

import (
	"bytes"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/chaatgpt/till/internal/domain/entity"
	"github.com/chaatgpt/till/internal/domain/repository"
	"github.com/gin-gonic/gin"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayHeader marks a response served from the cache
	IdempotencyReplayHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	Now  func() time.Time
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// keyLocks serializes requests that carry the same key, so a concurrent
// retry waits for the first attempt and then replays it.
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func (l *keyLocks) lock(key string) (unlock func()) {
	l.mu.Lock()
	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{}
		l.locks[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	kl.mu.Lock()
	return func() {
		kl.mu.Unlock()
		l.mu.Lock()
		kl.refs--
		if kl.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

// Idempotency replays the stored response when a request repeats an
// Idempotency-Key, so a retried "process payment" never books a second
// bill. Requests without the header pass through. Only 2xx responses are
// stored.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	now := config.Now
	if now == nil {
		now = time.Now
	}
	locks := &keyLocks{locks: make(map[string]*keyLock)}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		endpoint := c.Request.Method + " " + c.FullPath()

		unlock := locks.lock(key)
		defer unlock()

		existing, err := config.Repo.GetByKey(c.Request.Context(), key)
		if err != nil {
			log.Printf("Failed to check idempotency key: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to check idempotency key",
			})
			return
		}

		if existing != nil && !existing.IsExpired(now()) {
			if existing.Endpoint != endpoint {
				c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
					"success": false,
					"message": "Idempotency-Key was already used for a different request",
				})
				return
			}
			c.Header(IdempotencyReplayHeader, "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		ikey := &entity.IdempotencyKey{
			Key:          key,
			Endpoint:     endpoint,
			ResponseCode: status,
			ResponseBody: blw.body.String(),
			ExpiresAt:    now().Add(IdempotencyKeyTTL),
		}
		if err := config.Repo.Create(c.Request.Context(), ikey); err != nil {
			log.Printf("Failed to store idempotency key: %v", err)
		}
	}
}
