package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/openeia/eiascout/pkg/creds"
	"github.com/openeia/eiascout/pkg/eia"
	"github.com/openeia/eiascout/pkg/geomap"
)

// geomapCommand creates the geomap command for plotting rows on a map.
func (c *CLI) geomapCommand() *cobra.Command {
	var (
		output  string
		q       queryFlags
		mapOpts geomap.Options
	)
	opts := &clientOpts{}

	cmd := &cobra.Command{
		Use:   "geomap <route>",
		Short: "Plot dataset rows with coordinates on an HTML map",
		Long: `Plot dataset rows with coordinates on an HTML map.

The geomap command downloads rows like 'get', picks out latitude and
longitude columns, and writes a self-contained Leaflet map with one
marker per row. Datasets such as electricity/facility-fuel carry plant
coordinates that render well this way.

Tiles come from MapTiler and need an API key in MAPTILER_API_KEY (or
tile_key in the config file). Any {z}/{x}/{y} tile server works via
--tile-url; keyless URLs skip the key requirement.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := q.build()
			if err != nil {
				return err
			}
			return c.runGeomap(cmd.Context(), eia.ParseRoute(args[0]), query, opts, mapOpts, output)
		},
	}

	addClientFlags(cmd, opts)
	q.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output HTML file (default <route>.html)")
	cmd.Flags().StringVar(&mapOpts.Title, "title", "", "map page title (default the route)")
	cmd.Flags().StringVar(&mapOpts.TileURL, "tile-url", "", "tile server URL template ({z}/{x}/{y}, optional {key})")
	cmd.Flags().StringVar(&mapOpts.LatColumn, "lat-column", "", "latitude column (default auto-detect)")
	cmd.Flags().StringVar(&mapOpts.LonColumn, "lon-column", "", "longitude column (default auto-detect)")
	cmd.Flags().StringVar(&mapOpts.NameColumn, "name-column", "", "marker label column (default auto-detect)")

	return cmd
}

func (c *CLI) runGeomap(ctx context.Context, route eia.Route, query eia.DataQuery, opts *clientOpts, mapOpts geomap.Options, output string) error {
	cred, err := creds.Load()
	if err != nil {
		return err
	}
	if mapOpts.TileKey == "" {
		mapOpts.TileKey = cred.TileKey
	}
	if mapOpts.Title == "" {
		mapOpts.Title = routeLabel(route)
	}

	client, closeClient, err := c.newClient(ctx, opts)
	if err != nil {
		return err
	}
	defer closeClient()

	stats, restore := installTally()
	start := time.Now()

	spinner := startSpinner(ctx, fmt.Sprintf("Fetching %s...", route))
	tbl, err := client.GetData(ctx, route, query)
	spinner.Stop()
	restore()
	if err != nil {
		return reportError(err)
	}

	points, skipped, err := geomap.FromTable(tbl, mapOpts)
	if err != nil {
		return reportError(err)
	}
	if len(points) == 0 {
		printError("No rows with usable coordinates in %s", route)
		printNextStep("Name the columns", fmt.Sprintf("eiascout geomap %s --lat-column <col> --lon-column <col>", route))
		return nil
	}
	if skipped > 0 {
		printWarning("Skipped %d rows without usable coordinates", skipped)
	}

	if output == "" {
		output = route.Slug() + ".html"
	}
	if err := geomap.Export(points, mapOpts, output); err != nil {
		return reportError(err)
	}

	printSuccess("Mapped %d of %d rows from %s", len(points), tbl.Len(), route)
	printFile(output)
	printRunStats(stats.requests.Load(), stats.hits.Load(), tbl.Len(), time.Since(start))
	return nil
}
