package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"eventboard/internal/models"
)

const catalogKey = "catalog:listings"

// Cache holds the full ordered catalog as one JSON blob in redis. Mutations
// invalidate it; readers fall back to the store on a miss.
type Cache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{Client: client, TTL: ttl}
}

// Get returns the cached listing and whether it was present. Any redis or
// decode failure counts as a miss; the catalog must stay readable when redis
// is down.
func (c *Cache) Get(ctx context.Context) ([]models.Event, bool) {
	raw, err := c.Client.Get(ctx, catalogKey).Result()
	if err != nil {
		return nil, false
	}
	var listings []models.Event
	if err := json.Unmarshal([]byte(raw), &listings); err != nil {
		return nil, false
	}
	return listings, true
}

func (c *Cache) Set(ctx context.Context, listings []models.Event) error {
	raw, err := json.Marshal(listings)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, catalogKey, raw, c.TTL).Err()
}

func (c *Cache) Invalidate(ctx context.Context) error {
	return c.Client.Del(ctx, catalogKey).Err()
}
