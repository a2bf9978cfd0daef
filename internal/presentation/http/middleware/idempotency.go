package middleware

import (
	"bytes"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

type storedReply struct {
	code      int
	body      []byte
	expiresAt time.Time
}

// ReplayCache remembers successful replies by endpoint and idempotency key.
type ReplayCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]storedReply
}

// NewReplayCache creates a cache whose entries live for ttl
func NewReplayCache(ttl time.Duration) *ReplayCache {
	if ttl <= 0 {
		ttl = IdempotencyKeyTTL
	}
	return &ReplayCache{ttl: ttl, entries: make(map[string]storedReply)}
}

func (rc *ReplayCache) get(key string) (storedReply, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	reply, ok := rc.entries[key]
	if !ok {
		return storedReply{}, false
	}
	if time.Now().After(reply.expiresAt) {
		delete(rc.entries, key)
		return storedReply{}, false
	}
	return reply, true
}

func (rc *ReplayCache) put(key string, code int, body []byte) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	now := time.Now()
	for k, reply := range rc.entries {
		if now.After(reply.expiresAt) {
			delete(rc.entries, k)
		}
	}
	rc.entries[key] = storedReply{code: code, body: body, expiresAt: now.Add(rc.ttl)}
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

// Idempotency replays the stored reply when a request repeats an
// Idempotency-Key already answered with 2xx. Requests without the header
// run normally. Settlement routes use it so a retried confirm does not
// ring up the sale twice.
func Idempotency(cache *ReplayCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		cacheKey := c.Request.Method + " " + c.FullPath() + " " + key

		if reply, ok := cache.get(cacheKey); ok {
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(reply.code, "application/json; charset=utf-8", reply.body)
			c.Abort()
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		if status := c.Writer.Status(); status >= 200 && status < 300 {
			cache.put(cacheKey, status, blw.body.Bytes())
		}
	}
}
