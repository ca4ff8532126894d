package middleware

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog/log"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// ReplayedHeader marks a response served from the idempotency cache
	ReplayedHeader = "X-Idempotency-Replayed"
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Size int
	TTL  time.Duration
}

type cachedResponse struct {
	status      int
	contentType string
	body        []byte
}

// IdempotencyStore remembers responses by key. Entries live in an LRU bounded
// by size and expire after the TTL.
type IdempotencyStore struct {
	cache *expirable.LRU[string, cachedResponse]

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewIdempotencyStore creates an in-memory idempotency store
func NewIdempotencyStore(cfg IdempotencyConfig) *IdempotencyStore {
	if cfg.Size <= 0 {
		cfg.Size = 512
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return &IdempotencyStore{
		cache:    expirable.NewLRU[string, cachedResponse](cfg.Size, nil, cfg.TTL),
		inFlight: make(map[string]struct{}),
	}
}

// Len reports the number of cached responses
func (s *IdempotencyStore) Len() int {
	return s.cache.Len()
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

// Idempotency replays the stored response when a mutating request repeats an
// Idempotency-Key. A key that is still being processed gets 409. Server
// errors are not cached so the client may retry.
func Idempotency(store *IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodDelete {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		cacheKey := c.Request.Method + " " + c.FullPath() + " " + key

		store.mu.Lock()
		if cached, ok := store.cache.Get(cacheKey); ok {
			store.mu.Unlock()
			c.Header(ReplayedHeader, "true")
			c.Data(cached.status, cached.contentType, cached.body)
			c.Abort()
			return
		}
		if _, busy := store.inFlight[cacheKey]; busy {
			store.mu.Unlock()
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"success": false,
				"message": "A request with this Idempotency-Key is already in progress",
			})
			return
		}
		store.inFlight[cacheKey] = struct{}{}
		store.mu.Unlock()

		defer func() {
			store.mu.Lock()
			delete(store.inFlight, cacheKey)
			store.mu.Unlock()
		}()

		blw := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusInternalServerError {
			return
		}
		store.cache.Add(cacheKey, cachedResponse{
			status:      status,
			contentType: c.Writer.Header().Get("Content-Type"),
			body:        bytes.Clone(blw.body.Bytes()),
		})
		log.Debug().Str("key", key).Int("status", status).Msg("idempotent response stored")
	}
}
