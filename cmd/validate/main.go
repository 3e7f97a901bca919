// Command validate loads an incident table, runs the map builders and checks
// the properties every generated map must satisfy: each record appears once
// in the year layers and once in the time layer, radii stay in bounds, years
// ascend, features stay chronological and every time window is well formed.
//
// Usage:
//
//	go run ./cmd/validate -input data/mock/LA_fires.xlsx [-horizon 2025-01-10]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/fire-map-etl/internal/adapter/table"
	"github.com/couchcryptid/fire-map-etl/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	input := flag.String("input", "", "incident table (.xlsx, .csv or .db)")
	horizon := flag.String("horizon", domain.FormatDate(domain.DefaultHorizon), "time layer horizon (YYYY-MM-DD)")
	sheet := flag.String("sheet", "", "workbook sheet; empty means the first sheet")
	sqliteTable := flag.String("table", table.DefaultSQLiteTable, "SQLite table name")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(1)
	}
	h, err := time.Parse("2006-01-02", *horizon)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: invalid -horizon: %v\n", err)
		os.Exit(1)
	}

	os.Exit(run(*input, table.Options{Sheet: *sheet, SQLiteTable: *sqliteTable}, h))
}

func run(input string, opts table.Options, horizon time.Time) int {
	fmt.Println("=== Fire Map Integrity Validation ===")
	fmt.Println()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tbl, err := table.NewReader(input, opts, logger).Extract(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}
	records, dropped, err := domain.LoadRecords(tbl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	layers := domain.BuildYearLayers(records)
	features := domain.BuildTimeFeatures(records, horizon)
	doc, err := domain.AssembleMap(records, layers, features, domain.MapOptions{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: assemble map: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateRecords(records),
		validateYearLayers(records, layers),
		validateTimeFeatures(records, features, horizon),
		validateDocument(records, doc),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d read, %d valid, %d dropped; %d year layers, %d time features\n",
		len(tbl.Rows), len(records), dropped.Total(), len(layers.Years), len(features))

	// Print detailed errors.
	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phases ──

func validateRecords(records []domain.FireRecord) *phase {
	p := &phase{name: "Phase 1: Cleaned records"}
	for i, r := range records {
		if !r.Geo.Valid() {
			p.errorf("record %d: coordinates out of range (%v, %v)", i, r.Geo.Lat, r.Geo.Lon)
		}
		if r.AcresBurned < 0 {
			p.errorf("record %d: negative acres %v", i, r.AcresBurned)
		}
		if r.Date.Location() != time.UTC {
			p.errorf("record %d: date %s not in UTC", i, r.Date)
		}
		if i > 0 && r.Date.Before(records[i-1].Date) {
			p.errorf("record %d: date %s before previous %s", i, domain.FormatTimestamp(r.Date), domain.FormatTimestamp(records[i-1].Date))
		}
	}
	return p
}

func validateYearLayers(records []domain.FireRecord, layers domain.YearLayers) *phase {
	p := &phase{name: "Phase 2: Year layers"}

	for i := 1; i < len(layers.Years); i++ {
		if layers.Years[i] <= layers.Years[i-1] {
			p.errorf("years not strictly ascending: %d after %d", layers.Years[i], layers.Years[i-1])
		}
	}
	if len(layers.Years) != len(layers.Buckets) {
		p.errorf("%d years listed but %d buckets", len(layers.Years), len(layers.Buckets))
	}

	want := labelCounts(records)
	got := map[string]int{}
	for _, b := range layers.Ordered() {
		if b.Show {
			p.errorf("year %d: layer shown by default", b.Year)
		}
		if len(b.Markers) != len(b.Records) {
			p.errorf("year %d: %d markers for %d records", b.Year, len(b.Markers), len(b.Records))
		}
		for _, r := range b.Records {
			if r.Year() != b.Year {
				p.errorf("year %d: holds record dated %s", b.Year, domain.FormatDate(r.Date))
			}
		}
		for _, m := range b.Markers {
			got[m.Label]++
			if m.Radius < domain.MinRadius || m.Radius > domain.MaxRadius {
				p.errorf("year %d: marker %q radius %v outside [%v, %v]", b.Year, m.Label, m.Radius, domain.MinRadius, domain.MaxRadius)
			}
			if m.Color != domain.ColorFor(b.Year) {
				p.errorf("year %d: marker %q color %s, want %s", b.Year, m.Label, m.Color, domain.ColorFor(b.Year))
			}
		}
	}
	compareCounts(p, "markers", want, got)
	return p
}

func validateTimeFeatures(records []domain.FireRecord, features []domain.TimeFeature, horizon time.Time) *phase {
	p := &phase{name: "Phase 3: Time slider features"}
	if len(features) != len(records) {
		p.errorf("%d features for %d records", len(features), len(records))
		return p
	}

	for i, f := range features {
		r := records[i]
		if f.Label != r.Label() {
			p.errorf("feature %d: label %q, want %q", i, f.Label, r.Label())
		}
		if !f.Start.Equal(r.Date) {
			p.errorf("feature %d: start %s, want %s", i, domain.FormatTimestamp(f.Start), domain.FormatTimestamp(r.Date))
		}
		if f.End.Before(f.Start) {
			p.errorf("feature %d: end %s before start %s", i, domain.FormatTimestamp(f.End), domain.FormatTimestamp(f.Start))
		}
		yearEnd := time.Date(f.Start.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
		if f.End.After(f.Start) && (f.End.After(yearEnd) || f.End.After(horizon)) {
			p.errorf("feature %d: end %s past year end or horizon", i, domain.FormatTimestamp(f.End))
		}
		if f.Radius != domain.RawRadius(r.AcresBurned) {
			p.errorf("feature %d: radius %v, want %v", i, f.Radius, domain.RawRadius(r.AcresBurned))
		}
		if i > 0 && f.Start.Before(features[i-1].Start) {
			p.errorf("feature %d: not chronological", i)
		}
	}
	return p
}

func validateDocument(records []domain.FireRecord, doc domain.MapDocument) *phase {
	p := &phase{name: "Phase 4: Map document"}
	if doc.Control.Collapsed {
		p.errorf("layer control is collapsed")
	}
	if doc.TimeLayer.Period != "P1D" {
		p.errorf("time layer period %q, want P1D", doc.TimeLayer.Period)
	}
	if doc.TimeLayer.AddLastPoint {
		p.errorf("time layer adds a last point")
	}
	if !doc.Center.Valid() {
		p.errorf("center (%v, %v) invalid", doc.Center.Lat, doc.Center.Lon)
	}

	minLat, maxLat, minLon, maxLon := 90.0, -90.0, 180.0, -180.0
	for _, r := range records {
		minLat, maxLat = min(minLat, r.Geo.Lat), max(maxLat, r.Geo.Lat)
		minLon, maxLon = min(minLon, r.Geo.Lon), max(maxLon, r.Geo.Lon)
	}
	if doc.Center.Lat < minLat || doc.Center.Lat > maxLat || doc.Center.Lon < minLon || doc.Center.Lon > maxLon {
		p.errorf("center (%v, %v) outside the data bounds", doc.Center.Lat, doc.Center.Lon)
	}
	return p
}

// ── Helpers ──

func labelCounts(records []domain.FireRecord) map[string]int {
	out := make(map[string]int, len(records))
	for _, r := range records {
		out[r.Label()]++
	}
	return out
}

func compareCounts(p *phase, what string, want, got map[string]int) {
	for label, n := range want {
		if got[label] != n {
			p.errorf("%s: %q appears %d times, want %d", what, label, got[label], n)
		}
	}
	for label, n := range got {
		if _, ok := want[label]; !ok {
			p.errorf("%s: unexpected %q (%d times)", what, label, n)
		}
	}
}
