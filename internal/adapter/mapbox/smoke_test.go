//go:build mapbox

package mapbox

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/fire-map-etl/internal/observability"
)

// These tests hit the real Mapbox API and require a valid MAPBOX_TOKEN env var.
// Run with: go test -tags=mapbox ./internal/adapter/mapbox/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	token := os.Getenv("MAPBOX_TOKEN")
	if token == "" {
		t.Fatal("MAPBOX_TOKEN must be set to run smoke tests")
	}
	return &Client{
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://api.mapbox.com/geocoding/v5/mapbox.places",
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestSmoke_ReverseGeocode(t *testing.T) {
	c := smokeClient(t)

	// Woolsey fire origin near Simi Valley.
	result, err := c.ReverseGeocode(context.Background(), 34.2352, -118.7018)
	require.NoError(t, err)

	assert.NotEmpty(t, result.FormattedAddress)
	assert.Contains(t, result.FormattedAddress, "California")
	assert.Greater(t, result.Confidence, 0.0)
}

func TestSmoke_ReverseGeocode_Ocean(t *testing.T) {
	c := smokeClient(t)

	// Open Pacific: may return nothing, must not error.
	_, err := c.ReverseGeocode(context.Background(), 20.0, -150.0)
	require.NoError(t, err)
}

func TestSmoke_CachedGeocoder(t *testing.T) {
	c := smokeClient(t)
	cached := NewCachedGeocoder(c, 10, observability.NewMetricsForTesting())

	// First call: cache miss, real API call.
	r1, err := cached.ReverseGeocode(context.Background(), 34.1425, -118.2551)
	require.NoError(t, err)
	require.NotEmpty(t, r1.FormattedAddress)

	// Second call: cache hit, no API call.
	r2, err := cached.ReverseGeocode(context.Background(), 34.1425, -118.2551)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}
