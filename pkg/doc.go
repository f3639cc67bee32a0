// Package pkg provides the core libraries for exploring the EIA Open Data API.
//
// # Overview
//
// Eiascout walks the API's hierarchical route tree (v2), inventories its
// datasets, and downloads dataset rows. The pkg directory is organized into
// five main areas:
//
//  1. [eia] - API client (route model, metadata classification, tree mapping, data retrieval)
//  2. [table] - Ordered tabular results and CSV export
//  3. [cache] - Pluggable response caching (file, Redis, null)
//  4. [render] / [geomap] - Output rendering (Graphviz route trees, Leaflet facility maps)
//  5. [creds] / [observability] / [buildinfo] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow through eiascout:
//
//	EIA Open Data API (api.eia.gov/v2)
//	         ↓
//	    [eia] package (describe / map / get)
//	         ↓
//	    [table] package (ordered rows and columns)
//	         ↓
//	    CSV, Graphviz SVG, or Leaflet HTML output
//
// # Quick Start
//
// Map a category and download one of its datasets:
//
//	import (
//	    "context"
//	    "github.com/openeia/eiascout/pkg/eia"
//	    "github.com/openeia/eiascout/pkg/table"
//	)
//
//	client, _ := eia.NewClient(eia.Config{APIKey: key})
//
//	// 1. Inventory every dataset under a category
//	entries, _ := client.MapTree(ctx, eia.ParseRoute("electricity"))
//
//	// 2. Fetch rows from one dataset
//	q := eia.DataQuery{
//	    Columns:     []string{"revenue"},
//	    Facets:      map[string][]string{"stateid": {"MA"}},
//	    Frequencies: []string{"monthly"},
//	}
//	tbl, _ := client.GetData(ctx, eia.ParseRoute("electricity/retail-sales"), q)
//
//	// 3. Export as CSV
//	_ = table.ExportCSV(tbl, "retail-sales.csv")
//
// # Main Packages
//
// [eia] - The API client. Routes are immutable segment lists; metadata
// responses classify into intermediate (folder) and leaf (dataset) nodes.
// MapTree crawls a subtree depth-first at a fixed request pace, GetData
// pages through a dataset's rows repeating the full filter set. Failures
// surface as typed errors (StatusError, DecodeError, ShapeError) and abort
// whole operations; there are no retries and no partial results.
//
// [table] - Column-ordered tables independent of Go map iteration order.
// Rows carry heterogeneous values (json.Number preserves numeric text);
// the column set is the union of row columns in first-seen order.
//
// [cache] - Opt-in storage for raw response bodies keyed by route and
// query (the API key never enters a cache key). FileCache shards JSON
// entries under a hash-addressed directory tree, RedisCache namespaces
// keys in a shared instance, NullCache disables caching and is the
// default.
//
// [render] - Graphviz rendering of mapped route trees: DOT generation
// plus SVG (in-process via goccy/go-graphviz) and PDF/PNG conversion.
//
// [geomap] - Extracts coordinate columns from dataset rows and writes
// self-contained Leaflet HTML maps with a marker per row.
//
// [creds] - Credential resolution from the environment, .env files, the
// user config file, and a legacy key file, with fixed precedence.
//
// [observability] - Process-wide hook registry for traversal, cache, and
// HTTP events. Defaults are no-ops; the CLI installs counters for its
// run summaries.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/eia/...                # Specific package
//	go test -tags integration ./pkg/...  # Include live API tests (needs EIA_API_KEY)
//
// [eia]: https://pkg.go.dev/github.com/openeia/eiascout/pkg/eia
// [table]: https://pkg.go.dev/github.com/openeia/eiascout/pkg/table
// [cache]: https://pkg.go.dev/github.com/openeia/eiascout/pkg/cache
// [render]: https://pkg.go.dev/github.com/openeia/eiascout/pkg/render
// [geomap]: https://pkg.go.dev/github.com/openeia/eiascout/pkg/geomap
// [creds]: https://pkg.go.dev/github.com/openeia/eiascout/pkg/creds
// [observability]: https://pkg.go.dev/github.com/openeia/eiascout/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/openeia/eiascout/pkg/buildinfo
package pkg
