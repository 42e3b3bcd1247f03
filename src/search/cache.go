package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCacheTTL = time.Hour

// Cache stores raw retrieval responses in redis so repeated evaluations of
// the same domain do not burn search quota. Evaluation results themselves are
// never cached here.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context, query string, maxResults int) ([]Result, bool) {
	raw, err := c.rdb.Get(ctx, cacheKey(query, maxResults)).Bytes()
	if err != nil {
		return nil, false
	}
	var results []Result
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, false
	}
	return results, true
}

func (c *Cache) Set(ctx context.Context, query string, maxResults int, results []Result) {
	raw, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(query, maxResults), raw, c.ttl).Err(); err != nil {
		log.Printf("search: cache write failed: %v", err)
	}
}

func cacheKey(query string, maxResults int) string {
	sum := sha256.Sum256([]byte(query))
	return fmt.Sprintf("search:%s:%d", hex.EncodeToString(sum[:8]), maxResults)
}
