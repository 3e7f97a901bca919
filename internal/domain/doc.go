// Package domain models wildfire incident records and the map layers built
// from them.
//
// # Data Source
//
// Incident tables come from CAL FIRE style exports: one row per incident with
// (among many others) the columns
//
//	incident_date_created   creation timestamp of the incident
//	incident_acres_burned   final or current burned area in acres
//	incident_longitude      WGS-84 longitude in degrees
//	incident_latitude       WGS-84 latitude in degrees
//
// Only these four columns are read. Rows missing any of them, or carrying
// values that cannot be parsed, are dropped silently; see [LoadRecords].
//
// # Date Formats
//
// Creation timestamps arrive in several shapes depending on the export tool:
//
//	2019-10-24T23:32:00Z     RFC 3339, normalized to UTC
//	2019-10-24 23:32:00      naive, taken as UTC
//	10/24/2019 23:32         US month/day/year
//	43762.98                 Excel serial day number (1900 date system)
//
// # Year Layers
//
// Every distinct calendar year becomes one hidden map layer. Colors come from
// a fixed palette ([ColorFor]) with gray for years outside it. Marker radius
// is sqrt(acres)/5 clamped to [2, 20] for the static layers ([RadiusFor]).
//
// # Time Slider
//
// The animated layer shows each incident from its creation time until the
// end of that calendar year, but never beyond the dataset horizon. Its radius
// is the unclamped sqrt(acres)/5 ([RawRadius]); the two layers have always
// been drawn with different scales and are kept that way.
package domain
