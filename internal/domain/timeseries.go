package domain

import "time"

// DefaultHorizon is the end of the incident dataset's coverage. No time
// window extends past it.
var DefaultHorizon = time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)

// BuildTimeFeatures builds one time-windowed feature per record, preserving
// input order.
func BuildTimeFeatures(records []FireRecord, horizon time.Time) []TimeFeature {
	features := make([]TimeFeature, 0, len(records))
	for _, rec := range records {
		start, end := TimeWindow(rec.Date, horizon)
		features = append(features, TimeFeature{
			Position: rec.Geo,
			Start:    start,
			End:      end,
			Color:    ColorFor(rec.Year()),
			Radius:   RawRadius(rec.AcresBurned),
			Label:    rec.Label(),
			Place:    rec.Place,
		})
	}
	return features
}

// TimeWindow returns the display interval of an incident: from its creation
// time to December 31 (00:00 UTC) of the same year, capped at horizon. The
// end never precedes the start, so an incident created late on December 31
// or after the horizon gets a zero-width window.
func TimeWindow(date, horizon time.Time) (start, end time.Time) {
	start = date.UTC()
	end = time.Date(start.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	if h := horizon.UTC(); !h.IsZero() && h.Before(end) {
		end = h
	}
	if end.Before(start) {
		end = start
	}
	return start, end
}
