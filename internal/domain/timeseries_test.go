package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTimeFeatures_SingleRecordScenario(t *testing.T) {
	records := []FireRecord{record(2020, 6, 1, 100, 34.0, -118.0)}

	features := BuildTimeFeatures(records, DefaultHorizon)

	require.Len(t, features, 1)
	f := features[0]
	assert.Equal(t, "2020-06-01T00:00:00Z", FormatTimestamp(f.Start))
	assert.Equal(t, "2020-12-31T00:00:00Z", FormatTimestamp(f.End))
	assert.Equal(t, ColorYellow, f.Color)
	assert.InDelta(t, 2.0, f.Radius, 1e-9)
	assert.Equal(t, "Date: 2020-06-01, Acres Burned: 100", f.Label)
}

func TestBuildTimeFeatures_RadiusIsUnclamped(t *testing.T) {
	records := []FireRecord{
		record(2018, 1, 1, 0, 34, -118),
		record(2018, 1, 2, 1, 34, -118),
		record(2018, 1, 3, 410203, 34, -118),
	}

	features := BuildTimeFeatures(records, DefaultHorizon)

	assert.Equal(t, 0.0, features[0].Radius)
	assert.InDelta(t, 0.2, features[1].Radius, 1e-9)
	assert.Greater(t, features[2].Radius, MaxRadius)
}

func TestBuildTimeFeatures_PreservesOrder(t *testing.T) {
	records := []FireRecord{
		record(2018, 1, 1, 1, 34, -118),
		record(2018, 5, 1, 2, 34, -118),
		record(2019, 2, 1, 3, 34, -118),
	}

	features := BuildTimeFeatures(records, DefaultHorizon)

	require.Len(t, features, len(records))
	for i, f := range features {
		assert.True(t, records[i].Date.Equal(f.Start))
		if i > 0 {
			assert.False(t, f.Start.Before(features[i-1].Start))
		}
	}
}

func TestTimeWindow(t *testing.T) {
	horizon := DefaultHorizon

	tests := []struct {
		name  string
		date  time.Time
		start string
		end   string
	}{
		{
			name:  "mid year",
			date:  time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
			start: "2020-06-01T00:00:00Z",
			end:   "2020-12-31T00:00:00Z",
		},
		{
			name:  "December 31 is zero width",
			date:  time.Date(2019, 12, 31, 0, 0, 0, 0, time.UTC),
			start: "2019-12-31T00:00:00Z",
			end:   "2019-12-31T00:00:00Z",
		},
		{
			name:  "late on December 31 never ends before start",
			date:  time.Date(2019, 12, 31, 18, 30, 0, 0, time.UTC),
			start: "2019-12-31T18:30:00Z",
			end:   "2019-12-31T18:30:00Z",
		},
		{
			name:  "capped by horizon",
			date:  time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC),
			start: "2025-01-02T08:00:00Z",
			end:   "2025-01-10T00:00:00Z",
		},
		{
			name:  "after horizon collapses to start",
			date:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			start: "2025-03-01T00:00:00Z",
			end:   "2025-03-01T00:00:00Z",
		},
		{
			name:  "offset input normalized to UTC",
			date:  time.Date(2021, 7, 4, 20, 0, 0, 0, time.FixedZone("PDT", -7*3600)),
			start: "2021-07-05T03:00:00Z",
			end:   "2021-12-31T00:00:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := TimeWindow(tt.date, horizon)
			assert.Equal(t, tt.start, FormatTimestamp(start))
			assert.Equal(t, tt.end, FormatTimestamp(end))
			assert.False(t, end.Before(start))
		})
	}
}

func TestTimeWindow_ZeroHorizonIgnored(t *testing.T) {
	_, end := TimeWindow(time.Date(2030, 2, 1, 0, 0, 0, 0, time.UTC), time.Time{})
	assert.Equal(t, "2030-12-31T00:00:00Z", FormatTimestamp(end))
}

func TestTimeFeature_GeoJSON(t *testing.T) {
	f := BuildTimeFeatures([]FireRecord{record(2020, 6, 1, 100, 34.0, -118.0)}, DefaultHorizon)[0]

	gj := f.GeoJSON()

	assert.Equal(t, "Feature", gj.Type)
	assert.Equal(t, "Point", gj.Geometry.Type)
	assert.Equal(t, []float64{-118.0, 34.0}, gj.Geometry.Coordinates)
	assert.Equal(t, []string{"2020-06-01T00:00:00Z", "2020-12-31T00:00:00Z"}, gj.Properties.Times)
	assert.Equal(t, "circle", gj.Properties.Icon)
	assert.Equal(t, f.Label, gj.Properties.Popup)
	assert.Equal(t, IconStyle{Color: ColorYellow, FillOpacity: 0.6, Radius: 2.0}, gj.Properties.IconStyle)

	fc := NewFeatureCollection([]TimeFeature{f, f})
	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.Len(t, fc.Features, 2)
}
