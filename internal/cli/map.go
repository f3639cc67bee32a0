package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/openeia/eiascout/pkg/eia"
	"github.com/openeia/eiascout/pkg/render"
	"github.com/openeia/eiascout/pkg/table"
)

// mapCommand creates the map command for crawling a route subtree.
func (c *CLI) mapCommand() *cobra.Command {
	var (
		output   string
		graph    string
		detailed bool
	)
	opts := &clientOpts{}

	cmd := &cobra.Command{
		Use:   "map [route]",
		Short: "Crawl a route subtree and write the dataset inventory as CSV",
		Long: `Crawl a route subtree and write the dataset inventory as CSV.

The map command walks every route under the starting point depth-first
and records one row per dataset: its route plus the facet, frequency,
and column identifiers it supports. Without an argument the whole API
is mapped, which takes a while at one call per second; prefer starting
from a category such as electricity.

With --graph the same tree is also rendered with Graphviz as a .dot,
.svg, .png, or .pdf file, chosen by extension.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMap(cmd.Context(), routeArg(args), opts, output, graph, detailed)
		},
	}

	addClientFlags(cmd, opts)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output CSV file (default <route>-routes.csv)")
	cmd.Flags().StringVar(&graph, "graph", "", "also render the tree to this file (.dot, .svg, .png, .pdf)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "annotate graph leaves with descriptor counts")

	return cmd
}

func (c *CLI) runMap(ctx context.Context, route eia.Route, opts *clientOpts, output, graph string, detailed bool) error {
	client, closeClient, err := c.newClient(ctx, opts)
	if err != nil {
		return err
	}
	defer closeClient()

	stats, restore := installTally()
	start := time.Now()

	spinner := startSpinner(ctx, fmt.Sprintf("Mapping %s...", routeLabel(route)))
	entries, err := client.MapTree(ctx, route)
	spinner.Stop()
	restore()
	if err != nil {
		return reportError(err)
	}

	if output == "" {
		output = mapOutputPath(route)
	}
	if err := table.ExportCSV(eia.RouteMapTable(entries), output); err != nil {
		return err
	}

	printSuccess("Mapped %d datasets under %s", len(entries), routeLabel(route))
	printFile(output)

	if graph != "" {
		if err := writeGraph(entries, graph, detailed); err != nil {
			return err
		}
		printFile(graph)
	}

	printRunStats(stats.requests.Load(), stats.hits.Load(), -1, time.Since(start))
	printNewline()
	printNextStep("Fetch a dataset", "eiascout get <route>")
	return nil
}

// mapOutputPath derives the default CSV filename for a map run.
func mapOutputPath(route eia.Route) string {
	if route.IsRoot() {
		return "routes.csv"
	}
	return route.Slug() + "-routes.csv"
}

// writeGraph renders entries to path in the format its extension names.
func writeGraph(entries []eia.RouteEntry, path string, detailed bool) error {
	dot := render.ToDOT(entries, render.Options{Detailed: detailed})

	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".dot":
		data = []byte(dot)
	case ".svg":
		data, err = render.RenderSVG(dot)
	case ".png":
		data, err = render.RenderPNG(dot, 2.0)
	case ".pdf":
		data, err = render.RenderPDF(dot)
	default:
		return fmt.Errorf("unsupported graph format %q (want .dot, .svg, .png, or .pdf)", ext)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
