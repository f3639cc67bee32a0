package geomap

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoTileKey indicates that the tile URL requires a MapTiler API key
// and none was configured.
var ErrNoTileKey = errors.New("geomap: no MapTiler API key configured")

// DefaultTileURL is the MapTiler raster tile endpoint. The {key}
// placeholder is replaced by the configured tile key at render time.
const DefaultTileURL = "https://api.maptiler.com/maps/streets-v2/{z}/{x}/{y}.png?key={key}"

// Options configures point extraction and map rendering.
type Options struct {
	// Title heads the rendered document.
	Title string

	// TileKey authenticates against the tile service.
	TileKey string

	// TileURL overrides the tile endpoint. A {key} placeholder, if
	// present, is replaced by TileKey; without one no key is needed.
	TileURL string

	// LatColumn, LonColumn, and NameColumn override column discovery.
	LatColumn  string
	LonColumn  string
	NameColumn string
}

var mapTemplate = template.Must(template.New("geomap").Parse(mapHTML))

type mapData struct {
	Title   string
	TileURL string
	Points  template.JS
}

// Render writes a self-contained Leaflet HTML document for the points.
// An empty point slice still renders, centered on the continental US.
func Render(w io.Writer, points []Point, opts Options) error {
	tileURL := opts.TileURL
	if tileURL == "" {
		tileURL = DefaultTileURL
	}
	if strings.Contains(tileURL, "{key}") {
		if opts.TileKey == "" {
			return ErrNoTileKey
		}
		tileURL = strings.ReplaceAll(tileURL, "{key}", opts.TileKey)
	}

	title := opts.Title
	if title == "" {
		title = "eiascout map"
	}

	if points == nil {
		points = []Point{}
	}
	encoded, err := json.Marshal(points)
	if err != nil {
		return fmt.Errorf("encode points: %w", err)
	}
	return mapTemplate.Execute(w, mapData{
		Title:   title,
		TileURL: tileURL,
		Points:  template.JS(encoded),
	})
}

// Export renders the map to a file, creating parent directories as
// needed.
func Export(points []Point, opts Options, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()
	return Render(f, points, opts)
}

const mapHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
const points = {{.Points}};
const map = L.map('map');
L.tileLayer({{.TileURL}}, {
  attribution: '&copy; <a href="https://www.maptiler.com/copyright/">MapTiler</a> &copy; OpenStreetMap contributors',
  maxZoom: 19
}).addTo(map);
const markers = [];
for (const p of points) {
  const m = L.marker([p.lat, p.lon]).addTo(map);
  m.bindPopup(p.label ? p.label : p.lat.toFixed(4) + ", " + p.lon.toFixed(4));
  markers.push(m);
}
if (markers.length > 0) {
  map.fitBounds(L.featureGroup(markers).getBounds().pad(0.2));
} else {
  map.setView([39.8, -98.6], 4);
}
</script>
</body>
</html>
`
