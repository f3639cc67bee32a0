// Package eia is a client for the U.S. Energy Information Administration's
// Open Data API v2.
//
// # Overview
//
// The API publishes its statistical holdings as a tree. Interior nodes are
// folders that list child routes ("electricity", "electricity/rto");
// leaves describe one dataset: the facets it can be filtered by, the
// frequencies it is reported at, and the value columns it serves. Data
// rows live one level below a leaf, at its /data endpoint.
//
// The package mirrors that structure:
//
//   - [Route] addresses a node as an ordered segment path
//   - [Client.Describe] fetches and classifies one node into a [Node]
//   - [Client.MapTree] walks a subtree and collects one [RouteEntry] per leaf
//   - [Client.GetData] pages through a leaf's rows into a [table.Table]
//
// # Client Pattern
//
//	client, err := eia.NewClient(eia.Config{APIKey: key})
//	if err != nil { ... }
//
//	entries, err := client.MapTree(ctx, eia.ParseRoute("electricity"))
//	tbl, err := client.GetData(ctx, eia.ParseRoute("electricity/retail-sales"), eia.DataQuery{
//	    Columns:     []string{"revenue", "sales"},
//	    Facets:      map[string][]string{"stateid": {"MA"}},
//	    Frequencies: []string{"monthly"},
//	})
//
// # Request Pacing
//
// Every network call waits a fixed delay first (default one second), with
// no adaptive logic and no retries. The client keeps at most one request
// in flight; failures surface to the caller unchanged, as [StatusError],
// [DecodeError], or [ShapeError]. Cancellation is honored between calls
// and during the delay, never mid-transfer.
//
// # Caching
//
// Responses are never cached unless a [cache.Cache] backend is configured,
// so repeated traversals observe the live API by default.
//
// [table.Table]: github.com/openeia/eiascout/pkg/table.Table
// [cache.Cache]: github.com/openeia/eiascout/pkg/cache.Cache
package eia
