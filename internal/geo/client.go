// Package geo provides best-effort IP geolocation lookups with an injected
// bounded cache. Results are advisory; nothing downstream depends on them
// for correctness.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"leadchat_backend/platform/cache"
	"leadchat_backend/platform/config"
	"leadchat_backend/platform/logger"
)

// Location is one resolved IP.
type Location struct {
	IP          string `json:"ip"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	City        string `json:"city"`
}

// Client looks up IPs against an ip-api compatible endpoint. Concurrent
// lookups for the same IP are collapsed into one upstream request.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *cache.TTL[Location]
	group   singleflight.Group
	log     *logger.Logger
}

// NewClient creates a geolocation client with its own bounded result cache.
func NewClient(cfg config.GeoConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL: cfg.GetGeoAPIURL(),
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   cache.NewTTL[Location](cfg.GetGeoCacheSize(), cfg.GetGeoCacheTTL()),
		log:     log,
	}
}

// apiResponse matches the ip-api JSON shape.
type apiResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	City        string `json:"city"`
	Query       string `json:"query"`
}

// Lookup resolves one IP, serving from cache when possible.
func (c *Client) Lookup(ctx context.Context, ip string) (Location, error) {
	if loc, ok := c.cache.Get(ip); ok {
		return loc, nil
	}

	result, err, _ := c.group.Do(ip, func() (any, error) {
		return c.fetch(ctx, ip)
	})
	if err != nil {
		return Location{}, err
	}

	loc := result.(Location)
	c.cache.Set(ip, loc)
	return loc, nil
}

func (c *Client) fetch(ctx context.Context, ip string) (Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+ip, nil)
	if err != nil {
		return Location{}, fmt.Errorf("build geo request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Location{}, fmt.Errorf("geo request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("geo lookup status %d", resp.StatusCode)
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Location{}, fmt.Errorf("decode geo response: %w", err)
	}
	if parsed.Status != "success" {
		return Location{}, fmt.Errorf("geo lookup failed: %s", parsed.Message)
	}

	return Location{
		IP:          parsed.Query,
		Country:     parsed.Country,
		CountryCode: parsed.CountryCode,
		City:        parsed.City,
	}, nil
}
