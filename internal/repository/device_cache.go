package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/night-assist/assist-service/internal/domain"
)

const deviceCachePrefix = "device:"

// DeviceCache caches device-id to citizen lookups in Redis. Timestamp
// creation and accident reporting are public hot paths that resolve a
// device id on every request; the cache keeps them off the database.
// All methods degrade to a miss or no-op when Redis is unavailable.
type DeviceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDeviceCache wraps a redis client. A nil client disables the cache.
func NewDeviceCache(client *redis.Client, ttl time.Duration) *DeviceCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &DeviceCache{client: client, ttl: ttl}
}

// Get returns the cached citizen for a device id, if present.
func (c *DeviceCache) Get(ctx context.Context, deviceID string) (*domain.Citizen, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, deviceCachePrefix+deviceID).Bytes()
	if err != nil {
		return nil, false
	}
	var citizen domain.Citizen
	if err := json.Unmarshal(payload, &citizen); err != nil {
		return nil, false
	}
	return &citizen, true
}

// Set stores the citizen under its device id with the configured TTL.
func (c *DeviceCache) Set(ctx context.Context, citizen *domain.Citizen) {
	if c == nil || c.client == nil || citizen == nil || citizen.DeviceID == "" {
		return
	}
	payload, err := json.Marshal(citizen)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, deviceCachePrefix+citizen.DeviceID, payload, c.ttl).Err()
}

// Invalidate drops the cache entry for a device id. Called when a
// citizen record is patched or deleted.
func (c *DeviceCache) Invalidate(ctx context.Context, deviceID string) {
	if c == nil || c.client == nil || deviceID == "" {
		return
	}
	_ = c.client.Del(ctx, deviceCachePrefix+deviceID).Err()
}
