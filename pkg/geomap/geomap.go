// Package geomap turns dataset rows with coordinate columns into
// interactive point maps.
//
// Facility-level datasets carry latitude and longitude columns alongside
// their values. [FromTable] locates those columns and extracts one
// [Point] per usable row; [Render] and [Export] produce a self-contained
// Leaflet HTML document from the points.
package geomap

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/openeia/eiascout/pkg/table"
)

// Point is one mappable row.
type Point struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label,omitempty"`
}

// Candidate column names, matched case-insensitively in order.
var (
	latColumns  = []string{"latitude", "lat"}
	lonColumns  = []string{"longitude", "lon", "lng"}
	nameColumns = []string{"plantName", "name", "stateDescription", "seriesDescription"}
)

// ColumnError reports that a required coordinate column could not be
// located in the table.
type ColumnError struct {
	Kind    string
	Columns []string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("geomap: no %s column among %v", e.Kind, e.Columns)
}

// FromTable extracts mappable points from dataset rows.
//
// The latitude and longitude columns are discovered from the candidate
// names unless overridden in opts. Rows whose coordinates are missing,
// unparsable, or outside the valid ranges are skipped; the second return
// is the skip count. Labels come from the first matching name column
// when one exists.
func FromTable(t *table.Table, opts Options) ([]Point, int, error) {
	latCol, ok := findColumn(t, opts.LatColumn, latColumns)
	if !ok {
		return nil, 0, &ColumnError{Kind: "latitude", Columns: t.Columns()}
	}
	lonCol, ok := findColumn(t, opts.LonColumn, lonColumns)
	if !ok {
		return nil, 0, &ColumnError{Kind: "longitude", Columns: t.Columns()}
	}
	nameCol, _ := findColumn(t, opts.NameColumn, nameColumns)

	var points []Point
	skipped := 0
	for _, row := range t.Rows() {
		lat, ok1 := parseCoord(row[latCol])
		lon, ok2 := parseCoord(row[lonCol])
		if !ok1 || !ok2 || !validCoords(lat, lon) {
			skipped++
			continue
		}
		p := Point{Lat: lat, Lon: lon}
		if nameCol != "" {
			if s, ok := row[nameCol].(string); ok {
				p.Label = s
			}
		}
		points = append(points, p)
	}
	return points, skipped, nil
}

// findColumn resolves a column by explicit override first, then by the
// candidate list. Matching is case-insensitive either way.
func findColumn(t *table.Table, override string, candidates []string) (string, bool) {
	if override != "" {
		candidates = []string{override}
	}
	for _, want := range candidates {
		for _, col := range t.Columns() {
			if strings.EqualFold(col, want) {
				return col, true
			}
		}
	}
	return "", false
}

func parseCoord(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		return x, true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// validCoords bounds latitude to [-90, 90] and longitude to [-180, 180].
// The exact origin is excluded: sites with unknown locations are reported
// at (0, 0).
func validCoords(lat, lon float64) bool {
	if lat == 0 && lon == 0 {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
