package eia

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

// treeServer serves a small fixed route tree and records every path it
// was asked for, in order. The client traverses sequentially, so the
// slice needs no locking.
//
//	/                          electricity, natural-gas
//	/electricity               retail-sales, prices
//	/electricity/retail-sales  leaf
//	/electricity/prices        leaf
//	/natural-gas               no children
func treeServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var paths []string
	fixtures := map[string]string{
		"/": `{"response": {
			"id": null, "name": "EIA Open Data",
			"routes": [{"id": "electricity", "name": "Electricity"}, {"id": "natural-gas", "name": "Natural Gas"}]
		}}`,
		"/electricity": `{"response": {
			"id": "electricity", "name": "Electricity",
			"routes": [{"id": "retail-sales", "name": "Retail Sales"}, {"id": "prices", "name": "Prices"}]
		}}`,
		"/electricity/retail-sales": `{"response": {
			"id": "retail-sales", "name": "Retail Sales",
			"facets": [{"id": "stateid"}, {"id": "sectorid"}],
			"frequency": [{"id": "monthly"}, {"id": "annual"}],
			"data": {"revenue": {"units": "million dollars"}, "sales": {"units": "GWh"}}
		}}`,
		"/electricity/prices": `{"response": {
			"id": "prices", "name": "Prices",
			"facets": [{"id": "area"}],
			"frequency": [{"id": "annual"}],
			"data": {"price": {"units": "cents/kWh"}}
		}}`,
		"/natural-gas": `{"response": {"id": "natural-gas", "name": "Natural Gas", "routes": []}}`,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		body, ok := fixtures[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &paths
}

func TestClient_MapTree(t *testing.T) {
	server, paths := treeServer(t)
	client := testClient(t, server.URL)

	entries, err := client.MapTree(context.Background(), Route{})
	if err != nil {
		t.Fatalf("MapTree: %v", err)
	}

	wantPaths := []string{"/", "/electricity", "/electricity/retail-sales", "/electricity/prices", "/natural-gas"}
	if !reflect.DeepEqual(*paths, wantPaths) {
		t.Errorf("visit order = %v, want %v", *paths, wantPaths)
	}

	wantRoutes := []string{"electricity/retail-sales", "electricity/prices"}
	if len(entries) != len(wantRoutes) {
		t.Fatalf("entries = %d, want %d", len(entries), len(wantRoutes))
	}
	for i, want := range wantRoutes {
		if got := entries[i].Route.String(); got != want {
			t.Errorf("entry %d route = %q, want %q", i, got, want)
		}
	}

	first := entries[0]
	if !reflect.DeepEqual(first.Facets, []string{"stateid", "sectorid"}) {
		t.Errorf("facets = %v", first.Facets)
	}
	if !reflect.DeepEqual(first.Frequencies, []string{"monthly", "annual"}) {
		t.Errorf("frequencies = %v", first.Frequencies)
	}
	if !reflect.DeepEqual(first.Columns, []string{"revenue", "sales"}) {
		t.Errorf("columns = %v", first.Columns)
	}
}

func TestClient_MapTreeSubtreeMatchesFullMap(t *testing.T) {
	server, _ := treeServer(t)
	client := testClient(t, server.URL)

	full, err := client.MapTree(context.Background(), Route{})
	if err != nil {
		t.Fatalf("MapTree(root): %v", err)
	}
	sub, err := client.MapTree(context.Background(), ParseRoute("electricity"))
	if err != nil {
		t.Fatalf("MapTree(electricity): %v", err)
	}

	var want []RouteEntry
	for _, e := range full {
		if strings.HasPrefix(e.Route.String(), "electricity/") {
			want = append(want, e)
		}
	}
	if !reflect.DeepEqual(sub, want) {
		t.Errorf("subtree map = %v, want the electricity slice of the full map %v", sub, want)
	}
}

func TestClient_MapTreeLeafRoot(t *testing.T) {
	server, _ := treeServer(t)
	client := testClient(t, server.URL)

	entries, err := client.MapTree(context.Background(), ParseRoute("electricity/prices"))
	if err != nil {
		t.Fatalf("MapTree: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if got := entries[0].Route.String(); got != "electricity/prices" {
		t.Errorf("route = %q", got)
	}
}

func TestClient_MapTreeChildlessBranch(t *testing.T) {
	server, _ := treeServer(t)
	client := testClient(t, server.URL)

	entries, err := client.MapTree(context.Background(), ParseRoute("natural-gas"))
	if err != nil {
		t.Fatalf("MapTree: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %v, want none under a childless branch", entries)
	}
}

func TestClient_MapTreeAbortsOnFailure(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/":
			w.Write([]byte(`{"response": {"routes": [{"id": "electricity"}, {"id": "natural-gas"}]}}`))
		case "/electricity":
			w.Write([]byte(`{"response": {"routes": [{"id": "retail-sales"}, {"id": "prices"}]}}`))
		case "/electricity/retail-sales":
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		default:
			t.Errorf("unexpected request after failure: %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	entries, err := client.MapTree(context.Background(), Route{})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Route.String() != "electricity/retail-sales" {
		t.Errorf("failing route = %q, want electricity/retail-sales", statusErr.Route)
	}
	if entries != nil {
		t.Errorf("expected no entries after an aborted traversal, got %v", entries)
	}

	// The failing node ends the walk; its siblings are never visited.
	want := []string{"/", "/electricity", "/electricity/retail-sales"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("visited = %v, want %v", paths, want)
	}
}

func TestClient_MapTreeAbortsOnUnrecognizedShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.Write([]byte(`{"response": {"routes": [{"id": "odd"}]}}`))
			return
		}
		w.Write([]byte(`{"response": {"id": "odd", "data": null}}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	_, err := client.MapTree(context.Background(), Route{})

	var shapeErr *ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected ShapeError, got %v", err)
	}
	if shapeErr.Route.String() != "odd" {
		t.Errorf("route = %q, want odd", shapeErr.Route)
	}
}

func TestRouteMapTable(t *testing.T) {
	entries := []RouteEntry{
		{
			Route:       ParseRoute("electricity/retail-sales"),
			Facets:      []string{"stateid", "sectorid"},
			Frequencies: []string{"monthly", "annual"},
			Columns:     []string{"revenue", "sales"},
		},
		{
			Route:       ParseRoute("electricity/prices"),
			Facets:      []string{"area"},
			Frequencies: []string{"annual"},
			Columns:     []string{},
		},
	}

	var buf strings.Builder
	if err := RouteMapTable(entries).WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	want := "route,facet_list,freq_list,data_cols\n" +
		"electricity/retail-sales,\"['stateid', 'sectorid']\",\"['monthly', 'annual']\",\"['revenue', 'sales']\"\n" +
		"electricity/prices,['area'],['annual'],[]\n"
	if buf.String() != want {
		t.Errorf("csv = %q, want %q", buf.String(), want)
	}
}

func TestRouteMapTableEmpty(t *testing.T) {
	var buf strings.Builder
	if err := RouteMapTable(nil).WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if got := buf.String(); got != "route,facet_list,freq_list,data_cols\n" {
		t.Errorf("csv = %q, want header only", got)
	}
}

func TestRouteMapTableRoundTrip(t *testing.T) {
	server, _ := treeServer(t)
	client := testClient(t, server.URL)

	entries, err := client.MapTree(context.Background(), Route{})
	if err != nil {
		t.Fatalf("MapTree: %v", err)
	}
	tbl := RouteMapTable(entries)
	if tbl.Len() != len(entries) {
		t.Errorf("table rows = %d, want %d", tbl.Len(), len(entries))
	}
	if !tbl.HasColumn("route") {
		t.Errorf("missing route column")
	}
}
