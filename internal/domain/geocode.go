package domain

import (
	"context"
	"log/slog"
)

// EnrichStats summarizes one EnrichWithGeocoding pass.
type EnrichStats struct {
	Resolved int
	Empty    int
	Failed   int
}

// EnrichWithGeocoding fills Place on each record from reverse geocoding.
// A nil geocoder returns the input unchanged. Lookup failures are logged and
// leave Place empty (graceful degradation); records are never dropped here.
// The input slice is not modified.
func EnrichWithGeocoding(ctx context.Context, records []FireRecord, geocoder Geocoder, logger *slog.Logger) ([]FireRecord, EnrichStats) {
	var stats EnrichStats
	if geocoder == nil {
		return records, stats
	}

	out := make([]FireRecord, len(records))
	for i, rec := range records {
		out[i] = rec
		if ctx.Err() != nil {
			stats.Failed++
			continue
		}

		result, err := geocoder.ReverseGeocode(ctx, rec.Geo.Lat, rec.Geo.Lon)
		if err != nil {
			logger.Warn("reverse geocoding failed",
				"date", FormatDate(rec.Date),
				"lat", rec.Geo.Lat,
				"lon", rec.Geo.Lon,
				"error", err,
			)
			stats.Failed++
			continue
		}

		place := result.FormattedAddress
		if place == "" {
			place = result.PlaceName
		}
		if place == "" {
			stats.Empty++
			continue
		}
		out[i].Place = place
		stats.Resolved++
	}
	return out, stats
}
