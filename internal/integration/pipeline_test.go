//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/couchcryptid/fire-map-etl/internal/adapter/leaflet"
	"github.com/couchcryptid/fire-map-etl/internal/adapter/mapbox"
	"github.com/couchcryptid/fire-map-etl/internal/adapter/table"
	"github.com/couchcryptid/fire-map-etl/internal/domain"
	"github.com/couchcryptid/fire-map-etl/internal/observability"
	"github.com/couchcryptid/fire-map-etl/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockIncidents mirrors a small slice of the LA incident export, including
// rows the loader must drop.
func mockIncidents() domain.Table {
	return domain.Table{
		Header: []string{
			"incident_name",
			domain.ColumnDate,
			domain.ColumnAcres,
			domain.ColumnLongitude,
			domain.ColumnLatitude,
		},
		Rows: [][]string{
			{"Palisades", "2025-01-07 10:30:00", "23707", "-118.54", "34.07"},
			{"Bobcat", "2020-09-06 12:21:00", "115796", "-117.96", "34.24"},
			{"Woolsey", "2018-11-08 14:24:00", "96949", "-118.70", "34.24"},
			{"Lake", "2020-08-12 15:40:00", "31089", "-118.45", "34.68"},
			{"Station", "2009-08-26 15:30:00", "160577", "-118.19", "34.25"},
			{"No Date", "", "10", "-118.2", "34.1"},
			{"No Latitude", "2019-10-10 01:00:00", "10", "-118.2", ""},
		},
	}
}

func runPipeline(ctx context.Context, t *testing.T, input string, geocoder domain.Geocoder) (pipeline.Result, string) {
	t.Helper()
	out := filepath.Join(t.TempDir(), "interactive_fire_map_with_years.html")

	p := pipeline.New(
		table.NewReader(input, table.Options{}, logger()),
		leaflet.NewRenderer(out, logger()),
		pipeline.Options{Title: "LA wildfires"},
		logger(),
		observability.NewMetricsForTesting(),
	)
	if geocoder != nil {
		p.WithGeocoder(geocoder)
	}

	res, err := p.Run(ctx)
	require.NoError(t, err)

	page, err := os.ReadFile(out)
	require.NoError(t, err)
	return res, string(page)
}

// TestPipelineEndToEnd writes the mock incidents in every supported input
// format and checks the rendered map for each.
func TestPipelineEndToEnd(t *testing.T) {
	for _, ext := range []string{".csv", ".xlsx", ".db"} {
		t.Run(ext, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			input := filepath.Join(t.TempDir(), "LA_fires"+ext)
			require.NoError(t, table.Write(ctx, input, table.Options{}, mockIncidents()))

			res, page := runPipeline(ctx, t, input, nil)

			assert.Equal(t, 7, res.RowsRead)
			assert.Equal(t, 5, res.Records)
			assert.Equal(t, []int{2009, 2018, 2020, 2025}, res.Years)
			assert.Equal(t, domain.DropStats{domain.DropMissingDate: 1, domain.DropMissingCoords: 1}, res.Dropped)

			for _, year := range []string{`"name":"2009"`, `"name":"2018"`, `"name":"2020"`, `"name":"2025"`} {
				assert.Contains(t, page, year)
			}
			assert.NotContains(t, page, `"show":true`)
			assert.Contains(t, page, `"collapsed":false`)
			assert.Contains(t, page, `"period":"P1D"`)
			assert.Contains(t, page, `"2025-01-07T10:30:00Z","2025-01-10T00:00:00Z"`)
			assert.Contains(t, page, `"2009-08-26T15:30:00Z","2009-12-31T00:00:00Z"`)
			assert.Contains(t, page, `"color":"gray"`)
		})
	}
}

// TestPipelineWithMapbox runs enrichment against a stub Mapbox endpoint
// through the cached client.
func TestPipelineWithMapbox(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		place := "Los Angeles County, California"
		if strings.Contains(r.URL.Path, "-117.96") {
			place = "Azusa, California"
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"features": []map[string]any{{"place_name": place, "text": "LA", "relevance": 1}},
		})
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	incidents := mockIncidents()
	incidents.Rows = append(incidents.Rows, []string{"Bobcat Flare", "2020-09-07", "10", "-117.96", "34.24"})
	input := filepath.Join(t.TempDir(), "LA_fires.csv")
	require.NoError(t, table.Write(ctx, input, table.Options{}, incidents))

	metrics := observability.NewMetricsForTesting()
	client := mapbox.NewClient("pk.integration", 5*time.Second, metrics, logger()).WithBaseURL(srv.URL)
	geocoder := mapbox.NewCachedGeocoder(client, 100, metrics)

	res, page := runPipeline(ctx, t, input, geocoder)

	assert.Equal(t, 6, res.Geocoded.Resolved)
	assert.Equal(t, int32(5), calls.Load(), "repeated coordinates are served from the cache")
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.GeocodeCache.WithLabelValues("hit")), 0)
	assert.Contains(t, page, "Place: Azusa, California")
}
