package geomap

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openeia/eiascout/pkg/table"
)

func facilityTable() *table.Table {
	t := table.New()
	cols := []string{"period", "plantName", "latitude", "longitude", "capacity"}
	t.Append(cols, table.Row{
		"period": "2024-01", "plantName": "Mystic", "latitude": json.Number("42.3875"),
		"longitude": json.Number("-71.0519"), "capacity": json.Number("1413.3"),
	})
	t.Append(cols, table.Row{
		"period": "2024-01", "plantName": "Diablo Canyon", "latitude": json.Number("35.2107"),
		"longitude": json.Number("-120.8558"), "capacity": json.Number("2256.0"),
	})
	return t
}

func TestFromTable(t *testing.T) {
	points, skipped, err := FromTable(facilityTable(), Options{})
	if err != nil {
		t.Fatalf("FromTable: %v", err)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
	if len(points) != 2 {
		t.Fatalf("points = %d, want 2", len(points))
	}
	if points[0].Label != "Mystic" {
		t.Errorf("label = %q, want Mystic", points[0].Label)
	}
	if points[0].Lat != 42.3875 || points[0].Lon != -71.0519 {
		t.Errorf("point 0 = (%v, %v)", points[0].Lat, points[0].Lon)
	}
}

func TestFromTableSkipsUnusableRows(t *testing.T) {
	tbl := facilityTable()
	cols := []string{"period", "plantName", "latitude", "longitude"}
	// Missing latitude.
	tbl.Append(cols, table.Row{"plantName": "no-lat", "longitude": json.Number("-71.0")})
	// Unparsable.
	tbl.Append(cols, table.Row{"plantName": "bad", "latitude": "n/a", "longitude": json.Number("-71.0")})
	// Out of range.
	tbl.Append(cols, table.Row{"plantName": "range", "latitude": json.Number("91.5"), "longitude": json.Number("-71.0")})
	// Null island placeholder.
	tbl.Append(cols, table.Row{"plantName": "unknown", "latitude": json.Number("0"), "longitude": json.Number("0")})

	points, skipped, err := FromTable(tbl, Options{})
	if err != nil {
		t.Fatalf("FromTable: %v", err)
	}
	if len(points) != 2 {
		t.Errorf("points = %d, want 2", len(points))
	}
	if skipped != 4 {
		t.Errorf("skipped = %d, want 4", skipped)
	}
}

func TestFromTableColumnOverrides(t *testing.T) {
	tbl := table.New()
	cols := []string{"site", "y_coord", "x_coord"}
	tbl.Append(cols, table.Row{"site": "A", "y_coord": json.Number("40.0"), "x_coord": json.Number("-100.0")})

	points, _, err := FromTable(tbl, Options{LatColumn: "y_coord", LonColumn: "x_coord", NameColumn: "site"})
	if err != nil {
		t.Fatalf("FromTable: %v", err)
	}
	if len(points) != 1 || points[0].Label != "A" {
		t.Errorf("points = %v", points)
	}
}

func TestFromTableCaseInsensitiveDiscovery(t *testing.T) {
	tbl := table.New()
	cols := []string{"Latitude", "LONGITUDE"}
	tbl.Append(cols, table.Row{"Latitude": json.Number("40.0"), "LONGITUDE": json.Number("-100.0")})

	points, _, err := FromTable(tbl, Options{})
	if err != nil {
		t.Fatalf("FromTable: %v", err)
	}
	if len(points) != 1 {
		t.Errorf("points = %d, want 1", len(points))
	}
}

func TestFromTableMissingColumns(t *testing.T) {
	tbl := table.New("period", "value")

	_, _, err := FromTable(tbl, Options{})
	var colErr *ColumnError
	if !errors.As(err, &colErr) {
		t.Fatalf("expected ColumnError, got %v", err)
	}
	if colErr.Kind != "latitude" {
		t.Errorf("kind = %q, want latitude", colErr.Kind)
	}

	tbl = table.New("latitude", "value")
	_, _, err = FromTable(tbl, Options{})
	if !errors.As(err, &colErr) || colErr.Kind != "longitude" {
		t.Errorf("expected longitude ColumnError, got %v", err)
	}
}

func TestParseCoord(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   float64
		wantOK bool
	}{
		{"number", json.Number("42.5"), 42.5, true},
		{"float", -71.05, -71.05, true},
		{"string", "  35.2 ", 35.2, true},
		{"empty string", "", 0, false},
		{"garbage", "n/a", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseCoord(tt.value)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("parseCoord(%v) = (%v, %v), want (%v, %v)", tt.value, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRender(t *testing.T) {
	points := []Point{{Lat: 42.3875, Lon: -71.0519, Label: "Mystic"}}

	var buf strings.Builder
	err := Render(&buf, points, Options{Title: "Plants", TileKey: "tile-secret"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "<title>Plants</title>") {
		t.Errorf("title missing")
	}
	if !strings.Contains(out, "leaflet.js") {
		t.Errorf("leaflet script missing")
	}
	if !strings.Contains(out, "key=tile-secret") {
		t.Errorf("tile key not substituted into tile URL")
	}
	if !strings.Contains(out, `"lat":42.3875`) || !strings.Contains(out, `"label":"Mystic"`) {
		t.Errorf("point data missing from document:\n%s", out)
	}
}

func TestRenderWithoutTileKey(t *testing.T) {
	err := Render(&strings.Builder{}, nil, Options{})
	if !errors.Is(err, ErrNoTileKey) {
		t.Fatalf("expected ErrNoTileKey, got %v", err)
	}

	// A keyless tile URL renders without a key.
	var buf strings.Builder
	err = Render(&buf, nil, Options{TileURL: "https://tile.openstreetmap.org/{z}/{x}/{y}.png"})
	if err != nil {
		t.Fatalf("Render with keyless URL: %v", err)
	}
	if !strings.Contains(buf.String(), "tile.openstreetmap.org") {
		t.Errorf("custom tile URL missing")
	}
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maps", "plants.html")
	points := []Point{{Lat: 40, Lon: -100}}

	if err := Export(points, Options{TileKey: "k"}, path); err != nil {
		t.Fatalf("Export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.Contains(string(data), "<!DOCTYPE html>") {
		t.Errorf("exported file is not an HTML document")
	}
}
