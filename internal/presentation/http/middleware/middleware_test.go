package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	calls := 0
	status := http.StatusCreated

	router := gin.New()
	router.POST("/pay", Idempotency(NewReplayCache(time.Minute)), func(c *gin.Context) {
		calls++
		c.JSON(status, gin.H{"call": strconv.Itoa(calls)})
	})

	first := serve(router, http.MethodPost, "/pay", map[string]string{IdempotencyKeyHeader: "k1"})
	require.Equal(t, http.StatusCreated, first.Code)

	again := serve(router, http.MethodPost, "/pay", map[string]string{IdempotencyKeyHeader: "k1"})
	assert.Equal(t, http.StatusCreated, again.Code)
	assert.Equal(t, "true", again.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), again.Body.String())
	assert.Equal(t, 1, calls)

	serve(router, http.MethodPost, "/pay", map[string]string{IdempotencyKeyHeader: "k2"})
	assert.Equal(t, 2, calls)

	serve(router, http.MethodPost, "/pay", nil)
	serve(router, http.MethodPost, "/pay", nil)
	assert.Equal(t, 4, calls)

	t.Run("failed replies are not stored", func(t *testing.T) {
		status = http.StatusConflict
		serve(router, http.MethodPost, "/pay", map[string]string{IdempotencyKeyHeader: "k3"})
		w := serve(router, http.MethodPost, "/pay", map[string]string{IdempotencyKeyHeader: "k3"})
		assert.Empty(t, w.Header().Get("X-Idempotency-Replayed"))
		assert.Equal(t, 6, calls)
	})
}

func TestReplayCache_Expiry(t *testing.T) {
	rc := NewReplayCache(time.Minute)
	rc.put("a", http.StatusOK, []byte(`{}`))

	_, ok := rc.get("a")
	assert.True(t, ok)

	rc.entries["a"] = storedReply{code: http.StatusOK, expiresAt: time.Now().Add(-time.Second)}
	_, ok = rc.get("a")
	assert.False(t, ok)
	assert.Empty(t, rc.entries)
}

func TestClientRateLimiter(t *testing.T) {
	rl := NewClientRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2})
	defer rl.Stop()

	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/ping", nil).Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/ping", nil).Code)

	w := serve(router, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
}

func TestClientRateLimiter_Cleanup(t *testing.T) {
	rl := NewClientRateLimiter(RateLimiterConfig{EntryTTL: time.Minute})
	defer rl.Stop()

	rl.getLimiter("10.0.0.1")
	rl.limiters["10.0.0.1"].lastSeen = time.Now().Add(-2 * time.Minute)
	rl.getLimiter("10.0.0.2")

	rl.cleanup()
	assert.Len(t, rl.limiters, 1)
	assert.Contains(t, rl.limiters, "10.0.0.2")
}
