package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/chaatgpt/till/internal/domain/entity"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memIdempotencyRepo struct {
	mu   sync.Mutex
	keys map[string]entity.IdempotencyKey
}

func newMemIdempotencyRepo() *memIdempotencyRepo {
	return &memIdempotencyRepo{keys: make(map[string]entity.IdempotencyKey)}
}

func (r *memIdempotencyRepo) GetByKey(ctx context.Context, key string) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ikey, ok := r.keys[key]
	if !ok {
		return nil, nil
	}
	return &ikey, nil
}

func (r *memIdempotencyRepo) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[ikey.Key] = *ikey
	return nil
}

func (r *memIdempotencyRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	return nil
}

func newIdempotentRouter(repo *memIdempotencyRepo, booked *int32) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	idempotent := Idempotency(IdempotencyConfig{Repo: repo})
	r.POST("/bills/process", idempotent, func(c *gin.Context) {
		n := atomic.AddInt32(booked, 1)
		time.Sleep(20 * time.Millisecond)
		c.JSON(http.StatusCreated, gin.H{"success": true, "bill": n})
	})
	r.POST("/bills/save", idempotent, func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"success": true})
	})
	return r
}

func postWithKey(r http.Handler, path, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ConcurrentRetriesBookOnce(t *testing.T) {
	var booked int32
	r := newIdempotentRouter(newMemIdempotencyRepo(), &booked)

	const attempts = 10
	results := make([]*httptest.ResponseRecorder, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = postWithKey(r, "/bills/process", "sale-1")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&booked))
	replayed := 0
	for _, w := range results {
		require.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"success":true,"bill":1}`, w.Body.String())
		if w.Header().Get(IdempotencyReplayHeader) == "true" {
			replayed++
		}
	}
	assert.Equal(t, attempts-1, replayed)
}

func TestIdempotency_DistinctKeysRunIndependently(t *testing.T) {
	var booked int32
	r := newIdempotentRouter(newMemIdempotencyRepo(), &booked)

	assert.Equal(t, http.StatusCreated, postWithKey(r, "/bills/process", "a").Code)
	assert.Equal(t, http.StatusCreated, postWithKey(r, "/bills/process", "b").Code)
	assert.Equal(t, http.StatusCreated, postWithKey(r, "/bills/process", "").Code)
	assert.Equal(t, int32(3), atomic.LoadInt32(&booked))
}

func TestIdempotency_KeyReusedOnOtherEndpoint(t *testing.T) {
	var booked int32
	r := newIdempotentRouter(newMemIdempotencyRepo(), &booked)

	require.Equal(t, http.StatusCreated, postWithKey(r, "/bills/process", "k").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, postWithKey(r, "/bills/save", "k").Code)
}
