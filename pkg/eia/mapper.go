package eia

import (
	"context"
	"strings"
	"time"

	"github.com/openeia/eiascout/pkg/observability"
	"github.com/openeia/eiascout/pkg/table"
)

// RouteEntry is one row of a route map: a leaf route and its dataset
// descriptors.
type RouteEntry struct {
	Route       Route
	Facets      []string
	Frequencies []string
	Columns     []string
}

// MapTree walks the dataset tree under root depth-first and returns one
// entry per leaf, in discovery order. Intermediate nodes contribute no
// entries, so mapping an empty folder succeeds with an empty map.
//
// The walk trusts the API's tree contract and applies no cycle or depth
// guards. Any failed call or unclassifiable node aborts the whole walk;
// no partial map is returned. Cancellation is honored between calls.
//
// Mapping a subtree yields exactly the entries of a full map that fall
// under that subtree, in the same relative order.
func (c *Client) MapTree(ctx context.Context, root Route) ([]RouteEntry, error) {
	start := time.Now()
	observability.Traversal().OnMapStart(ctx, root.String())

	var entries []RouteEntry
	err := c.walk(ctx, root, 0, &entries)
	observability.Traversal().OnMapComplete(ctx, root.String(), len(entries), time.Since(start), err)

	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) walk(ctx context.Context, route Route, depth int, entries *[]RouteEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	node, err := c.Describe(ctx, route)
	if err != nil {
		return err
	}

	indent := strings.Repeat("  ", depth)
	if node.Kind == KindIntermediate {
		c.log("%s%s: %d child routes", indent, displayRoute(route), len(node.Children))
		for _, child := range node.Children {
			if err := c.walk(ctx, route.Child(child.ID), depth+1, entries); err != nil {
				return err
			}
		}
		return nil
	}

	c.log("%s%s: leaf (%d facets, %d frequencies, %d columns)",
		indent, displayRoute(route), len(node.Facets), len(node.Frequencies), len(node.Columns))
	*entries = append(*entries, RouteEntry{
		Route:       node.Route,
		Facets:      node.Facets,
		Frequencies: node.Frequencies,
		Columns:     node.Columns,
	})
	return nil
}

// RouteMapTable renders entries as the standard four-column route map,
// with the descriptor lists in bracketed literal form so each fits one
// CSV cell.
func RouteMapTable(entries []RouteEntry) *table.Table {
	t := table.New("route", "facet_list", "freq_list", "data_cols")
	for _, e := range entries {
		t.Append(nil, table.Row{
			"route":      e.Route.String(),
			"facet_list": table.ListLiteral(e.Facets),
			"freq_list":  table.ListLiteral(e.Frequencies),
			"data_cols":  table.ListLiteral(e.Columns),
		})
	}
	return t
}
