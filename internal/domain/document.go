package domain

import (
	"fmt"
	"time"
)

// DefaultZoom is the initial zoom level of the base map.
const DefaultZoom = 6

// LayerControl configures the layer selection widget.
type LayerControl struct {
	Collapsed bool
}

// TimeLayer is the animated layer built from the time features.
type TimeLayer struct {
	Features []TimeFeature
	// Period is the ISO 8601 duration the slider advances per step.
	Period       string
	AddLastPoint bool
}

// MapDocument is the composed map, ready to be rendered.
type MapDocument struct {
	Title       string
	Center      Geo
	Zoom        int
	Layers      []*YearBucket
	Control     LayerControl
	TimeLayer   TimeLayer
	GeneratedAt time.Time
}

// MapOptions are the presentation settings for AssembleMap.
type MapOptions struct {
	Title string
	Zoom  int
}

// Center returns the arithmetic mean of all latitudes and longitudes.
func Center(records []FireRecord) (Geo, error) {
	if len(records) == 0 {
		return Geo{}, ErrEmptyDataset
	}
	var sumLat, sumLon float64
	for _, rec := range records {
		sumLat += rec.Geo.Lat
		sumLon += rec.Geo.Lon
	}
	n := float64(len(records))
	return Geo{Lat: sumLat / n, Lon: sumLon / n}, nil
}

// AssembleMap composes the year layers and time features into one document
// centered on the mean position of records.
func AssembleMap(records []FireRecord, layers YearLayers, features []TimeFeature, opts MapOptions) (MapDocument, error) {
	center, err := Center(records)
	if err != nil {
		return MapDocument{}, fmt.Errorf("compute center: %w", err)
	}

	zoom := opts.Zoom
	if zoom <= 0 {
		zoom = DefaultZoom
	}

	return MapDocument{
		Title:   opts.Title,
		Center:  center,
		Zoom:    zoom,
		Layers:  layers.Ordered(),
		Control: LayerControl{Collapsed: false},
		TimeLayer: TimeLayer{
			Features:     features,
			Period:       "P1D",
			AddLastPoint: false,
		},
		GeneratedAt: Now(),
	}, nil
}
