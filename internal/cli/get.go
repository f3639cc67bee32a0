package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/openeia/eiascout/pkg/eia"
)

// getCommand creates the get command for downloading dataset rows.
func (c *CLI) getCommand() *cobra.Command {
	var (
		output string
		q      queryFlags
	)
	opts := &clientOpts{}

	cmd := &cobra.Command{
		Use:   "get <route>",
		Short: "Download dataset rows to CSV",
		Long: `Download dataset rows to CSV.

The get command pages through a dataset's data endpoint, repeating the
full filter set on every page, and writes all rows to one CSV file.
Filters mirror the API's own query grammar:

  eiascout get electricity/retail-sales \
      --data revenue --data sales \
      --facet stateid=MA --facet stateid=VT \
      --frequency monthly --start 2020-01 --end 2024-12 \
      --sort period --direction desc

Run 'routes <route>' first to see which facets, frequencies, and value
columns a dataset supports.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := q.build()
			if err != nil {
				return err
			}
			return c.runGet(cmd.Context(), eia.ParseRoute(args[0]), query, opts, output)
		},
	}

	addClientFlags(cmd, opts)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output CSV file (default <route>.csv)")
	q.register(cmd)

	return cmd
}

// queryFlags collects the data-query flag values before validation.
type queryFlags struct {
	columns     []string
	facets      []string
	frequencies []string
	start       string
	end         string
	sortColumn  string
	direction   string
	pageSize    int
	offset      int
}

func (q *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&q.columns, "data", "d", nil, "value column to return (repeatable)")
	cmd.Flags().StringArrayVar(&q.facets, "facet", nil, "facet filter as id=value (repeatable)")
	cmd.Flags().StringSliceVar(&q.frequencies, "frequency", nil, "reporting cadence, e.g. monthly")
	cmd.Flags().StringVar(&q.start, "start", "", "first period to include (dataset period syntax)")
	cmd.Flags().StringVar(&q.end, "end", "", "last period to include")
	cmd.Flags().StringVar(&q.sortColumn, "sort", "", "column to sort by")
	cmd.Flags().StringVar(&q.direction, "direction", "", "sort direction: asc or desc")
	cmd.Flags().IntVar(&q.pageSize, "page-size", 0, fmt.Sprintf("rows per request, up to %d", eia.MaxPageSize))
	cmd.Flags().IntVar(&q.offset, "offset", 0, "first row to fetch")
}

// build validates the collected flags into a query.
func (q *queryFlags) build() (eia.DataQuery, error) {
	facets, err := parseFacets(q.facets)
	if err != nil {
		return eia.DataQuery{}, err
	}

	var dir eia.SortDirection
	switch q.direction {
	case "":
	case "asc":
		dir = eia.SortAsc
	case "desc":
		dir = eia.SortDesc
	default:
		return eia.DataQuery{}, fmt.Errorf("invalid sort direction %q (want asc or desc)", q.direction)
	}

	return eia.DataQuery{
		Columns:       q.columns,
		Facets:        facets,
		Frequencies:   q.frequencies,
		Start:         q.start,
		End:           q.end,
		SortColumn:    q.sortColumn,
		SortDirection: dir,
		Offset:        q.offset,
		PageSize:      q.pageSize,
	}, nil
}

// parseFacets turns repeated id=value pairs into the facet filter map.
func parseFacets(pairs []string) (map[string][]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	facets := make(map[string][]string)
	for _, pair := range pairs {
		id, value, ok := strings.Cut(pair, "=")
		if !ok || id == "" || value == "" {
			return nil, fmt.Errorf("invalid facet %q (want id=value)", pair)
		}
		facets[id] = append(facets[id], value)
	}
	return facets, nil
}

func (c *CLI) runGet(ctx context.Context, route eia.Route, query eia.DataQuery, opts *clientOpts, output string) error {
	client, closeClient, err := c.newClient(ctx, opts)
	if err != nil {
		return err
	}
	defer closeClient()

	stats, restore := installTally()
	start := time.Now()

	spinner := startSpinner(ctx, fmt.Sprintf("Fetching %s...", route))
	tbl, path, err := client.SaveData(ctx, route, query, output)
	spinner.Stop()
	restore()
	if err != nil {
		return reportError(err)
	}

	printSuccess("Fetched %d rows from %s", tbl.Len(), route)
	printFile(path)
	printRunStats(stats.requests.Load(), stats.hits.Load(), tbl.Len(), time.Since(start))
	return nil
}
