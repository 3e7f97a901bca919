package domain

// FeatureCollection is the GeoJSON payload consumed by the time slider.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single timestamped GeoJSON point.
type Feature struct {
	Type       string            `json:"type"`
	Geometry   Geometry          `json:"geometry"`
	Properties FeatureProperties `json:"properties"`
}

// Geometry is a GeoJSON Point; Coordinates are [lon, lat].
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// FeatureProperties carries the time window and icon style read by the
// timestamped GeoJSON layer.
type FeatureProperties struct {
	Times     []string  `json:"times"`
	Popup     string    `json:"popup"`
	Icon      string    `json:"icon"`
	IconStyle IconStyle `json:"iconstyle"`
}

// IconStyle describes the circle drawn for a feature.
type IconStyle struct {
	Color       Color   `json:"color"`
	FillOpacity float64 `json:"fillOpacity"`
	Radius      float64 `json:"radius"`
}

// FillOpacity is shared by static markers and time features.
const FillOpacity = 0.6

// GeoJSON converts the feature to its GeoJSON form. The popup is the plain
// label; renderers may replace it with formatted HTML.
func (f TimeFeature) GeoJSON() Feature {
	return Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "Point",
			Coordinates: []float64{f.Position.Lon, f.Position.Lat},
		},
		Properties: FeatureProperties{
			Times: []string{FormatTimestamp(f.Start), FormatTimestamp(f.End)},
			Popup: f.Label,
			Icon:  "circle",
			IconStyle: IconStyle{
				Color:       f.Color,
				FillOpacity: FillOpacity,
				Radius:      f.Radius,
			},
		},
	}
}

// NewFeatureCollection converts features in order.
func NewFeatureCollection(features []TimeFeature) FeatureCollection {
	fc := FeatureCollection{Type: "FeatureCollection", Features: make([]Feature, 0, len(features))}
	for _, f := range features {
		fc.Features = append(fc.Features, f.GeoJSON())
	}
	return fc
}
