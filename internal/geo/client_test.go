package geo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"leadchat_backend/platform/logger"
)

type staticGeoConfig struct {
	url string
}

func (c staticGeoConfig) GetGeoAPIURL() string          { return c.url }
func (c staticGeoConfig) GetGeoCacheSize() int          { return 8 }
func (c staticGeoConfig) GetGeoCacheTTL() time.Duration { return time.Minute }

func TestLookupParsesAndCaches(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":      "success",
			"country":     "Canada",
			"countryCode": "CA",
			"city":        "Vancouver",
			"query":       "24.48.0.1",
		})
	}))
	defer server.Close()

	client := NewClient(staticGeoConfig{url: server.URL}, logger.New("development"))
	ctx := context.Background()

	loc, err := client.Lookup(ctx, "24.48.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.CountryCode != "CA" || loc.City != "Vancouver" {
		t.Fatalf("unexpected location %+v", loc)
	}

	if _, err := client.Lookup(ctx, "24.48.0.1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := atomic.LoadInt64(&hits); got != 1 {
		t.Fatalf("second lookup must be served from cache, upstream hits=%d", got)
	}
}

func TestLookupSurfacesUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "fail",
			"message": "private range",
		})
	}))
	defer server.Close()

	client := NewClient(staticGeoConfig{url: server.URL}, logger.New("development"))
	if _, err := client.Lookup(context.Background(), "10.0.0.1"); err == nil {
		t.Fatal("expected an error for a failed lookup")
	}
}
