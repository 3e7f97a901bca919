package domain

import "sort"

// BuildYearLayers partitions records by calendar year and builds one static
// marker per record. The set of years is collected from the whole input
// before any bucket is filled, so bucket existence does not depend on input
// order. Every bucket starts hidden.
func BuildYearLayers(records []FireRecord) YearLayers {
	years := distinctYears(records)

	buckets := make(map[int]*YearBucket, len(years))
	for _, y := range years {
		buckets[y] = &YearBucket{Year: y}
	}

	for _, rec := range records {
		b := buckets[rec.Year()]
		b.Records = append(b.Records, rec)
		b.Markers = append(b.Markers, NewMarker(rec))
	}

	return YearLayers{Years: years, Buckets: buckets}
}

// NewMarker derives the static marker for one record.
func NewMarker(rec FireRecord) MarkerDescriptor {
	return MarkerDescriptor{
		Position: rec.Geo,
		Radius:   RadiusFor(rec.AcresBurned),
		Color:    ColorFor(rec.Year()),
		Label:    rec.Label(),
		Place:    rec.Place,
	}
}

// Ordered returns the buckets in ascending year order.
func (l YearLayers) Ordered() []*YearBucket {
	out := make([]*YearBucket, 0, len(l.Years))
	for _, y := range l.Years {
		out = append(out, l.Buckets[y])
	}
	return out
}

// MarkerCount returns the number of markers across all buckets.
func (l YearLayers) MarkerCount() int {
	n := 0
	for _, b := range l.Buckets {
		n += len(b.Markers)
	}
	return n
}

func distinctYears(records []FireRecord) []int {
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, rec := range records {
		y := rec.Year()
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
