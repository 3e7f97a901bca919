package domain

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Reasons a row is dropped during loading.
const (
	DropMissingDate   = "missing_date"
	DropInvalidDate   = "invalid_date"
	DropMissingCoords = "missing_coordinates"
	DropInvalidCoords = "invalid_coordinates"
	DropMissingAcres  = "missing_acres"
	DropInvalidAcres  = "invalid_acres"
)

// DropStats counts rows excluded by LoadRecords, keyed by drop reason.
type DropStats map[string]int

// Total returns the number of dropped rows.
func (s DropStats) Total() int {
	n := 0
	for _, c := range s {
		n += c
	}
	return n
}

// columnIndex maps the four required columns to their header positions.
type columnIndex struct {
	date, acres, lon, lat int
}

// resolveColumns locates the required columns in the header. Header cells
// are compared after trimming whitespace and a UTF-8 byte order mark.
func resolveColumns(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, seen := pos[h]; !seen {
			pos[h] = i
		}
	}

	var missing []string
	lookup := func(name string) int {
		i, ok := pos[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}

	idx := columnIndex{
		date:  lookup(ColumnDate),
		acres: lookup(ColumnAcres),
		lon:   lookup(ColumnLongitude),
		lat:   lookup(ColumnLatitude),
	}
	if len(missing) > 0 {
		return columnIndex{}, fmt.Errorf("%w: missing columns %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return idx, nil
}

// LoadRecords selects the incident columns from a raw table, drops rows with
// missing or unparsable values and returns the survivors sorted by date.
// It fails with ErrSchemaMismatch when a required column is absent and with
// ErrEmptyDataset when no row survives.
func LoadRecords(table Table) ([]FireRecord, DropStats, error) {
	idx, err := resolveColumns(table.Header)
	if err != nil {
		return nil, nil, err
	}

	stats := DropStats{}
	records := make([]FireRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		rec, reason := parseRow(row, idx)
		if reason != "" {
			stats[reason]++
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, stats, fmt.Errorf("%w: %d rows read, %d dropped", ErrEmptyDataset, len(table.Rows), stats.Total())
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records, stats, nil
}

// parseRow converts one raw row. A non-empty reason means the row is dropped.
func parseRow(row []string, idx columnIndex) (FireRecord, string) {
	rawDate := cell(row, idx.date)
	if rawDate == "" {
		return FireRecord{}, DropMissingDate
	}
	date, ok := ParseDate(rawDate)
	if !ok {
		return FireRecord{}, DropInvalidDate
	}

	rawLon, rawLat := cell(row, idx.lon), cell(row, idx.lat)
	if rawLon == "" || rawLat == "" {
		return FireRecord{}, DropMissingCoords
	}
	lon, errLon := parseFloat(rawLon)
	lat, errLat := parseFloat(rawLat)
	geo := Geo{Lat: lat, Lon: lon}
	if errLon != nil || errLat != nil || !geo.Valid() {
		return FireRecord{}, DropInvalidCoords
	}

	rawAcres := cell(row, idx.acres)
	if rawAcres == "" {
		return FireRecord{}, DropMissingAcres
	}
	acres, err := parseFloat(rawAcres)
	if err != nil || acres < 0 || math.IsInf(acres, 0) {
		return FireRecord{}, DropInvalidAcres
	}

	return FireRecord{Date: date, AcresBurned: acres, Geo: geo}, ""
}

// cell returns the trimmed value at i, or "" when the row is too short.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseFloat parses a numeric cell, tolerating thousands separators.
// NaN spellings are rejected so they count as missing data.
func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}
