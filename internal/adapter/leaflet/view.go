package leaflet

import (
	"github.com/couchcryptid/fire-map-etl/internal/domain"
	"github.com/microcosm-cc/bluemonday"
)

// pageData is the template input. JSON fields are read by the page script.
type pageData struct {
	Title       string
	GeneratedAt string
	Config      mapConfig
	Layers      []yearLayer
	TimeData    domain.FeatureCollection
}

type mapConfig struct {
	Center       [2]float64 `json:"center"`
	Zoom         int        `json:"zoom"`
	Collapsed    bool       `json:"collapsed"`
	Period       string     `json:"period"`
	AddLastPoint bool       `json:"addLastPoint"`
	FillOpacity  float64    `json:"fillOpacity"`
}

type yearLayer struct {
	Name    string   `json:"name"`
	Show    bool     `json:"show"`
	Markers []marker `json:"markers"`
}

type marker struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
	Popup  string  `json:"popup"`
}

func newPageData(doc domain.MapDocument, policy *bluemonday.Policy) pageData {
	layers := make([]yearLayer, 0, len(doc.Layers))
	for _, b := range doc.Layers {
		yl := yearLayer{Name: b.Name(), Show: b.Show, Markers: make([]marker, 0, len(b.Markers))}
		for _, m := range b.Markers {
			yl.Markers = append(yl.Markers, marker{
				Lat:    m.Position.Lat,
				Lon:    m.Position.Lon,
				Radius: m.Radius,
				Color:  string(m.Color),
				Popup:  PopupHTML(policy, m.Label, m.Place),
			})
		}
		layers = append(layers, yl)
	}

	fc := domain.NewFeatureCollection(doc.TimeLayer.Features)
	for i, f := range doc.TimeLayer.Features {
		fc.Features[i].Properties.Popup = PopupHTML(policy, f.Label, f.Place)
	}

	return pageData{
		Title:       doc.Title,
		GeneratedAt: domain.FormatTimestamp(doc.GeneratedAt),
		Config: mapConfig{
			Center:       [2]float64{doc.Center.Lat, doc.Center.Lon},
			Zoom:         doc.Zoom,
			Collapsed:    doc.Control.Collapsed,
			Period:       doc.TimeLayer.Period,
			AddLastPoint: doc.TimeLayer.AddLastPoint,
			FillOpacity:  domain.FillOpacity,
		},
		Layers:   layers,
		TimeData: fc,
	}
}
