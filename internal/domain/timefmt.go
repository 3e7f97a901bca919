package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Output layouts. Every timestamp and label date goes through
// FormatTimestamp / FormatDate so markers and time features never drift.
const (
	TimestampLayout = "2006-01-02T15:04:05Z"
	DateLayout      = "2006-01-02"
)

// dateLayouts are tried in order by ParseDate. Layouts without a zone are
// parsed as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
}

// FormatTimestamp renders t in UTC with second precision and a Z designator.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// FormatDate renders the UTC calendar date of t.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// FormatAcres renders an acreage in its shortest round-trip decimal form.
func FormatAcres(acres float64) string {
	return strconv.FormatFloat(acres, 'f', -1, 64)
}

// FormatLabel builds the popup label "Date: <date>, Acres Burned: <acres>".
func FormatLabel(date time.Time, acres float64) string {
	return fmt.Sprintf("Date: %s, Acres Burned: %s", FormatDate(date), FormatAcres(acres))
}

// ParseDate parses an incident timestamp in any supported shape and
// normalizes it to UTC. The boolean is false when the value is empty or
// unparsable.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}

	return parseExcelSerial(value)
}

// parseExcelSerial accepts Excel 1900-system day numbers. Four-digit
// integers are read as a bare year instead, so "2020" means 2020-01-01.
func parseExcelSerial(value string) (time.Time, bool) {
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(serial) || math.IsInf(serial, 0) || serial <= 0 {
		return time.Time{}, false
	}

	if serial == math.Trunc(serial) && serial >= 1000 && serial <= 9999 {
		return time.Date(int(serial), time.January, 1, 0, 0, 0, 0, time.UTC), true
	}

	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC().Round(time.Second), true
}
