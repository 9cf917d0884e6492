package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles provider response caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	WeatherCacheTTL = 10 * time.Minute // Current conditions drift slowly
	RouteCacheTTL   = 24 * time.Hour   // Road distances barely change
)

// Key prefixes
const (
	weatherCachePrefix = "cache:weather:"
	routeCachePrefix   = "cache:route:"
)

// CachedWeather represents cached current weather for a coordinate.
type CachedWeather struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	WindSpeed   float64 `json:"wind_speed"`
}

// CachedRoute represents a cached driving route between two coordinates.
type CachedRoute struct {
	DistanceKm    float64 `json:"distance_km"`
	DurationHours int     `json:"duration_hours"`
}

// coordKey rounds to ~100m so nearby lookups share an entry.
func coordKey(lat, lon float64) string {
	return fmt.Sprintf("%.3f:%.3f", lat, lon)
}

// GetWeather retrieves weather from cache.
func (s *CacheStore) GetWeather(ctx context.Context, lat, lon float64) (*CachedWeather, error) {
	var weather CachedWeather
	ok, err := s.get(ctx, weatherCachePrefix+coordKey(lat, lon), &weather)
	if err != nil || !ok {
		return nil, err
	}
	return &weather, nil
}

// SetWeather stores weather in cache.
func (s *CacheStore) SetWeather(ctx context.Context, lat, lon float64, weather *CachedWeather) error {
	return s.set(ctx, weatherCachePrefix+coordKey(lat, lon), weather, WeatherCacheTTL)
}

// GetRoute retrieves a route from cache.
func (s *CacheStore) GetRoute(ctx context.Context, fromLat, fromLon, toLat, toLon float64) (*CachedRoute, error) {
	var route CachedRoute
	key := routeCachePrefix + coordKey(fromLat, fromLon) + ":" + coordKey(toLat, toLon)
	ok, err := s.get(ctx, key, &route)
	if err != nil || !ok {
		return nil, err
	}
	return &route, nil
}

// SetRoute stores a route in cache.
func (s *CacheStore) SetRoute(ctx context.Context, fromLat, fromLon, toLat, toLon float64, route *CachedRoute) error {
	key := routeCachePrefix + coordKey(fromLat, fromLon) + ":" + coordKey(toLat, toLon)
	return s.set(ctx, key, route, RouteCacheTTL)
}

func (s *CacheStore) get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil // Cache miss
		}
		return false, err
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (s *CacheStore) set(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}
