package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"rideshare/internal/redis"
)

// DefaultRoutingURL is the OpenRouteService driving directions endpoint.
const DefaultRoutingURL = "https://api.openrouteservice.org/v2/directions/driving-car"

// Point is a geographic coordinate.
type Point struct {
	Lat float64
	Lon float64
}

// Route is the driving distance and duration between two points.
// The zero value means no data.
type Route struct {
	DistanceKm    float64 `json:"distance_km"`
	DurationHours int     `json:"duration_hours"`
}

// Available reports whether the route carries data.
func (r Route) Available() bool {
	return r.DistanceKm > 0 && r.DurationHours > 0
}

// RouteClient queries OpenRouteService.
type RouteClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cache      redis.ProviderCacheInterface // Optional
}

// NewRouteClient creates a RouteClient. cache may be nil.
func NewRouteClient(baseURL, apiKey string, timeout time.Duration, cache redis.ProviderCacheInterface) *RouteClient {
	if baseURL == "" {
		baseURL = DefaultRoutingURL
	}
	return &RouteClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		cache:      cache,
	}
}

type directionsRequest struct {
	Coordinates  [][2]float64 `json:"coordinates"` // [lon, lat]
	Instructions bool         `json:"instructions"`
	Geometry     bool         `json:"geometry"`
	Units        string       `json:"units"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"` // km
			Duration float64 `json:"duration"` // seconds
		} `json:"summary"`
	} `json:"routes"`
}

// Route returns the driving route between from and to. Without an API key
// no request is made and the zero Route is returned.
func (c *RouteClient) Route(ctx context.Context, from, to Point) Route {
	if c.apiKey == "" {
		return Route{}
	}

	if c.cache != nil {
		if cached, err := c.cache.GetRoute(ctx, from.Lat, from.Lon, to.Lat, to.Lon); err == nil && cached != nil {
			return Route(*cached)
		}
	}

	route, err := c.fetch(ctx, from, to)
	if err != nil {
		log.Printf("[PROVIDER] route lookup failed: %v", err)
		return Route{}
	}
	if !route.Available() {
		return Route{}
	}

	if c.cache != nil {
		cached := redis.CachedRoute(route)
		if err := c.cache.SetRoute(ctx, from.Lat, from.Lon, to.Lat, to.Lon, &cached); err != nil {
			log.Printf("[PROVIDER] route cache write failed: %v", err)
		}
	}
	return route
}

func (c *RouteClient) fetch(ctx context.Context, from, to Point) (Route, error) {
	payload, err := json.Marshal(directionsRequest{
		Coordinates: [][2]float64{{from.Lon, from.Lat}, {to.Lon, to.Lat}},
		Units:       "km",
	})
	if err != nil {
		return Route{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return Route{}, err
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Route{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Route{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Route{}, fmt.Errorf("decode response: %w", err)
	}
	if len(body.Routes) == 0 {
		return Route{}, nil
	}

	summary := body.Routes[0].Summary
	if summary.Distance <= 0 || summary.Duration <= 0 {
		return Route{}, nil
	}

	hours := int(math.Round(summary.Duration / 3600))
	if hours < 1 {
		hours = 1
	}
	return Route{
		DistanceKm:    math.Round(summary.Distance*100) / 100,
		DurationHours: hours,
	}, nil
}
