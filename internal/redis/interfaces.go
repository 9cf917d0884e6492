package redis

import "context"

// ProviderCacheInterface defines the cache used by the weather and routing providers.
type ProviderCacheInterface interface {
	GetWeather(ctx context.Context, lat, lon float64) (*CachedWeather, error)
	SetWeather(ctx context.Context, lat, lon float64, weather *CachedWeather) error
	GetRoute(ctx context.Context, fromLat, fromLon, toLat, toLon float64) (*CachedRoute, error)
	SetRoute(ctx context.Context, fromLat, fromLon, toLat, toLon float64, route *CachedRoute) error
}

// ResponseCacheInterface defines the store behind idempotent requests.
type ResponseCacheInterface interface {
	GetResponse(ctx context.Context, key string) (*CachedResponse, error)
	SetResponse(ctx context.Context, key string, resp *CachedResponse) error
}

// Ensure concrete types implement interfaces.
var (
	_ ProviderCacheInterface = (*CacheStore)(nil)
	_ ResponseCacheInterface = (*IdempotencyStore)(nil)
)
