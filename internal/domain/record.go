package domain

import (
	"math"
	"strconv"
	"time"

	"github.com/golang/geo/s2"
)

// Source column names in incident exports.
const (
	ColumnDate      = "incident_date_created"
	ColumnAcres     = "incident_acres_burned"
	ColumnLongitude = "incident_longitude"
	ColumnLatitude  = "incident_latitude"
)

// RequiredColumns lists the source columns a table must carry, in the order
// they are renamed to date, acres_burned, longitude, latitude.
var RequiredColumns = []string{ColumnDate, ColumnAcres, ColumnLongitude, ColumnLatitude}

// Table is a raw tabular input: a header row plus string cells. Rows may be
// shorter than the header; missing trailing cells read as empty.
type Table struct {
	Source string
	Header []string
	Rows   [][]string
}

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// LatLng converts the pair to an s2 coordinate.
func (g Geo) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(g.Lat, g.Lon)
}

// Valid reports whether both coordinates are finite and inside
// [-90, 90] x [-180, 180].
func (g Geo) Valid() bool {
	if math.IsNaN(g.Lat) || math.IsNaN(g.Lon) || math.IsInf(g.Lat, 0) || math.IsInf(g.Lon, 0) {
		return false
	}
	return g.LatLng().IsValid()
}

// FireRecord is a single validated wildfire incident.
type FireRecord struct {
	Date        time.Time `json:"date"`
	AcresBurned float64   `json:"acres_burned"`
	Geo         Geo       `json:"geo"`

	// Place is filled by optional geocoding enrichment.
	Place string `json:"place,omitempty"`
}

// Year returns the calendar year of the incident date.
func (r FireRecord) Year() int {
	return r.Date.Year()
}

// Label is the popup text shared by static markers and time features.
func (r FireRecord) Label() string {
	return FormatLabel(r.Date, r.AcresBurned)
}

// MarkerDescriptor holds the visual parameters of one static circle marker.
type MarkerDescriptor struct {
	Position Geo     `json:"position"`
	Radius   float64 `json:"radius"`
	Color    Color   `json:"color"`
	Label    string  `json:"label"`
	Place    string  `json:"place,omitempty"`
}

// YearBucket groups the records and markers of one calendar year. Show is
// false for every bucket built by BuildYearLayers.
type YearBucket struct {
	Year    int
	Records []FireRecord
	Markers []MarkerDescriptor
	Show    bool
}

// Name is the layer name shown in the layer control.
func (b *YearBucket) Name() string {
	return strconv.Itoa(b.Year)
}

// YearLayers is the output of BuildYearLayers.
type YearLayers struct {
	// Years holds every distinct year in strictly ascending order.
	Years   []int
	Buckets map[int]*YearBucket
}

// TimeFeature is one entry of the animated layer.
type TimeFeature struct {
	Position Geo
	Start    time.Time
	End      time.Time
	Color    Color
	Radius   float64
	Label    string
	Place    string
}
