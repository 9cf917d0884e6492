// Package provider holds the HTTP clients for the external weather and
// routing services. Every failure degrades to "no data": callers never see
// an error from this package.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"rideshare/internal/redis"
)

// DefaultWeatherURL is the OpenWeatherMap current weather endpoint.
const DefaultWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// Weather is the current weather at a location.
type Weather struct {
	Temperature float64 `json:"temperature"` // Celsius
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"` // Percent
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	WindSpeed   float64 `json:"wind_speed"` // m/s
}

// WeatherClient queries OpenWeatherMap.
type WeatherClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	lang       string
	cache      redis.ProviderCacheInterface // Optional
}

// NewWeatherClient creates a WeatherClient. cache may be nil.
func NewWeatherClient(baseURL, apiKey, lang string, timeout time.Duration, cache redis.ProviderCacheInterface) *WeatherClient {
	if baseURL == "" {
		baseURL = DefaultWeatherURL
	}
	return &WeatherClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		lang:       lang,
		cache:      cache,
	}
}

type openWeatherResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Current returns the current weather at lat/lon, or nil when unavailable.
func (c *WeatherClient) Current(ctx context.Context, lat, lon float64) *Weather {
	if c.apiKey == "" {
		return nil
	}

	if c.cache != nil {
		if cached, err := c.cache.GetWeather(ctx, lat, lon); err == nil && cached != nil {
			w := Weather(*cached)
			return &w
		}
	}

	w, err := c.fetch(ctx, lat, lon)
	if err != nil {
		log.Printf("[PROVIDER] weather lookup failed: %v", err)
		return nil
	}

	if c.cache != nil {
		cached := redis.CachedWeather(*w)
		if err := c.cache.SetWeather(ctx, lat, lon, &cached); err != nil {
			log.Printf("[PROVIDER] weather cache write failed: %v", err)
		}
	}
	return w
}

func (c *WeatherClient) fetch(ctx context.Context, lat, lon float64) (*Weather, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	if c.lang != "" {
		q.Set("lang", c.lang)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	w := &Weather{
		Temperature: body.Main.Temp,
		FeelsLike:   body.Main.FeelsLike,
		Humidity:    body.Main.Humidity,
		WindSpeed:   body.Wind.Speed,
	}
	if len(body.Weather) > 0 {
		w.Description = body.Weather[0].Description
		w.Icon = body.Weather[0].Icon
	}
	return w, nil
}
