package redis

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyTTL is how long a replayable response is kept.
const IdempotencyTTL = 24 * time.Hour

const idempotencyPrefix = "idempotency:"

// CachedResponse is a stored HTTP response keyed by an Idempotency-Key.
type CachedResponse struct {
	StatusCode int         `json:"status_code"`
	Body       []byte      `json:"body"`
	Headers    http.Header `json:"headers"`
}

// IdempotencyStore keeps responses of mutating requests in Redis.
type IdempotencyStore struct {
	cache *CacheStore
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{cache: NewCacheStore(client)}
}

// GetResponse returns the cached response for key, or nil on a miss.
func (s *IdempotencyStore) GetResponse(ctx context.Context, key string) (*CachedResponse, error) {
	var resp CachedResponse
	ok, err := s.cache.get(ctx, idempotencyPrefix+key, &resp)
	if err != nil || !ok {
		return nil, err
	}
	return &resp, nil
}

// SetResponse stores resp under key for IdempotencyTTL.
func (s *IdempotencyStore) SetResponse(ctx context.Context, key string, resp *CachedResponse) error {
	return s.cache.set(ctx, idempotencyPrefix+key, resp, IdempotencyTTL)
}
