// README: Itinerary cache backed by Redis; stores validated itinerary JSON keyed by prompt digest.
package itinerary

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix = "itinerary:prompt:%s"
	// DefaultCacheTTL bounds how long a model answer is reused for an identical prompt.
	DefaultCacheTTL = time.Hour
)

type CacheStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCacheStore(redis *redis.Client, ttl time.Duration) *CacheStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CacheStore{redis: redis, ttl: ttl}
}

// Get returns the cached JSON for prompt and whether it was present. The payload is
// raw text; callers run it through Validate again before using it.
func (s *CacheStore) Get(ctx context.Context, prompt string) (string, bool, error) {
	val, err := s.redis.Get(ctx, cacheKey(prompt)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Put stores an itinerary that already passed Validate.
func (s *CacheStore) Put(ctx context.Context, prompt string, it Itinerary) error {
	raw, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("encode itinerary: %w", err)
	}
	return s.redis.Set(ctx, cacheKey(prompt), raw, s.ttl).Err()
}

func cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return fmt.Sprintf(cacheKeyPrefix, hex.EncodeToString(sum[:]))
}
