// Command genmock writes a deterministic synthetic wildfire incident table
// for demos and tests. The output format follows the file extension
// (.xlsx, .csv or .db). It uses the domain package to report what the
// generated table will produce when mapped.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/LA_fires.xlsx -n 500 -invalid 10
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"time"

	"github.com/couchcryptid/fire-map-etl/internal/adapter/table"
	"github.com/couchcryptid/fire-map-etl/internal/domain"
)

// Bounding box of the synthetic incidents (Los Angeles region).
const (
	minLat, maxLat = 33.70, 34.80
	minLon, maxLon = -119.00, -117.60
)

var (
	firstDate = time.Date(2013, time.January, 1, 0, 0, 0, 0, time.UTC)
	lastDate  = time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
)

var header = []string{
	"incident_name",
	"incident_county",
	domain.ColumnDate,
	domain.ColumnAcres,
	domain.ColumnLongitude,
	domain.ColumnLatitude,
}

var counties = []string{"Los Angeles", "Ventura", "Orange", "San Bernardino", "Riverside"}

var names = []string{"Canyon", "Ridge", "Creek", "Peak", "Hills", "Valley", "Mesa", "Grove"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path (.xlsx, .csv or .db)")
	n := flag.Int("n", 500, "number of valid incidents")
	invalid := flag.Int("invalid", 0, "number of additional rows with missing or bad values")
	seed := flag.Uint64("seed", 20250110, "random seed")
	sheet := flag.String("sheet", "", "sheet name for workbook output")
	sqliteTable := flag.String("table", table.DefaultSQLiteTable, "table name for SQLite output")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *n < 0 || *invalid < 0 {
		return fmt.Errorf("-n and -invalid must not be negative")
	}

	t := generate(*n, *invalid, *seed)
	opts := table.Options{Sheet: *sheet, SQLiteTable: *sqliteTable}
	if err := table.Write(context.Background(), *out, opts, t); err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}
	log.Printf("wrote %d rows to %s", len(t.Rows), *out)

	return printStats(t)
}

// generate builds n valid rows followed by invalid rows, each invalid row
// exercising a different drop reason in turn.
func generate(n, invalid int, seed uint64) domain.Table {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	span := lastDate.Sub(firstDate)

	rows := make([][]string, 0, n+invalid)
	for i := range n {
		date := firstDate.Add(time.Duration(rng.Int64N(int64(span)))).Truncate(time.Minute)
		rows = append(rows, []string{
			fmt.Sprintf("%s Fire %d", names[rng.IntN(len(names))], i+1),
			counties[rng.IntN(len(counties))],
			date.Format("2006-01-02 15:04:05"),
			acres(rng),
			coord(minLon + rng.Float64()*(maxLon-minLon)),
			coord(minLat + rng.Float64()*(maxLat-minLat)),
		})
	}

	broken := []func(row []string){
		func(row []string) { row[2] = "" },
		func(row []string) { row[2] = "not a date" },
		func(row []string) { row[5] = "" },
		func(row []string) { row[5] = "123.4" },
		func(row []string) { row[3] = "" },
		func(row []string) { row[3] = "-5" },
	}
	for i := range invalid {
		row := []string{
			fmt.Sprintf("Invalid Fire %d", i+1),
			counties[i%len(counties)],
			"2020-06-01",
			"10",
			"-118.25",
			"34.05",
		}
		broken[i%len(broken)](row)
		rows = append(rows, row)
	}

	return domain.Table{Header: slices.Clone(header), Rows: rows}
}

// acres draws a heavy-tailed burn size: most incidents are small, a few large.
func acres(rng *rand.Rand) string {
	v := math.Exp(rng.NormFloat64()*2 + 3)
	v = math.Round(min(v, 250000)*10) / 10
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 5, 64)
}

// printStats runs the loader over the generated table and reports the
// per-year counts the map will show.
func printStats(t domain.Table) error {
	records, dropped, err := domain.LoadRecords(t)
	if err != nil {
		return fmt.Errorf("generated table does not load: %w", err)
	}
	layers := domain.BuildYearLayers(records)

	fmt.Println("\n=== Generated dataset ===")
	fmt.Printf("Rows: %d, valid: %d, dropped: %d\n", len(t.Rows), len(records), dropped.Total())
	reasons := make([]string, 0, len(dropped))
	for r := range dropped {
		reasons = append(reasons, r)
	}
	slices.Sort(reasons)
	for _, r := range reasons {
		fmt.Printf("  dropped %s: %d\n", r, dropped[r])
	}
	fmt.Println("By year:")
	for _, b := range layers.Ordered() {
		fmt.Printf("  %s %-8s %d\n", b.Name(), domain.ColorFor(b.Year), len(b.Records))
	}
	return nil
}
