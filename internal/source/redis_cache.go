package source

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"schoolscout-engine/internal/domain"
)

const catalogCacheKey = "schoolscout:catalog"

// Cached is a read-through redis cache in front of a slower source. Cache
// failures degrade to a direct fetch; a cache miss populates the key.
type Cached struct {
	Next Source
	RDB  *redis.Client
	TTL  time.Duration
}

func (c Cached) Name() string { return "cached:" + c.Next.Name() }

func (c Cached) Fetch(ctx context.Context) ([]domain.School, error) {
	if c.RDB != nil {
		raw, err := c.RDB.Get(ctx, catalogCacheKey).Result()
		if err == nil {
			var schools []domain.School
			if jerr := json.Unmarshal([]byte(raw), &schools); jerr == nil && len(schools) > 0 {
				return schools, nil
			}
			// unreadable cache entry: fall through and refetch
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("[source:cache] read failed: %v", err)
		}
	}

	schools, err := c.Next.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if c.RDB != nil && len(schools) > 0 {
		if b, jerr := json.Marshal(schools); jerr == nil {
			if serr := c.RDB.Set(ctx, catalogCacheKey, b, c.TTL).Err(); serr != nil {
				log.Printf("[source:cache] write failed: %v", serr)
			}
		}
	}
	return schools, nil
}
