package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"ms-booking/internal/models"
)

const destinationKeyPrefix = "destination:"

// Cache is a read-through redis cache over destination lookups. A cache miss
// or redis failure falls back to the store; failures never fail the request.
type Cache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{Client: client, TTL: ttl}
}

// GetDestination returns the cached destination, or nil on a miss.
func (c *Cache) GetDestination(ctx context.Context, id string) (*models.Destination, error) {
	data, err := c.Client.Get(ctx, destinationKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var dest models.Destination
	if err := json.Unmarshal(data, &dest); err != nil {
		return nil, err
	}
	return &dest, nil
}

// SetDestination caches a destination for the configured TTL.
func (c *Cache) SetDestination(ctx context.Context, dest *models.Destination) error {
	data, err := json.Marshal(dest)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, destinationKeyPrefix+dest.ID, data, c.TTL).Err()
}

// InvalidateDestination removes a destination from the cache.
func (c *Cache) InvalidateDestination(ctx context.Context, id string) error {
	return c.Client.Del(ctx, destinationKeyPrefix+id).Err()
}
