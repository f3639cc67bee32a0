package eia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/openeia/eiascout/pkg/observability"
	"github.com/openeia/eiascout/pkg/table"
)

// GetData retrieves dataset rows from a leaf route's data endpoint,
// fetching pages sequentially until a short or empty page arrives.
//
// Every page request repeats the full filter set with a sliding offset.
// The result table carries the union of row columns in first-seen order.
// A failure on any page aborts the retrieval with no partial table. The
// API's total-row hint is logged but never drives the loop.
//
// Calling GetData on a route without a data endpoint surfaces the API's
// own rejection as a [StatusError]; there is no client-side pre-check.
func (c *Client) GetData(ctx context.Context, route Route, q DataQuery) (*table.Table, error) {
	start := time.Now()
	observability.Traversal().OnFetchStart(ctx, route.String())

	tbl, pages, err := c.fetchAll(ctx, route, q)

	rows := 0
	if tbl != nil {
		rows = tbl.Len()
	}
	observability.Traversal().OnFetchComplete(ctx, route.String(), rows, pages, time.Since(start), err)

	if err != nil {
		return nil, err
	}
	return tbl, nil
}

// SaveData retrieves rows and writes them to a CSV file. An empty path
// derives "<route-slug>.csv" in the working directory. Returns the table
// and the path written.
func (c *Client) SaveData(ctx context.Context, route Route, q DataQuery, path string) (*table.Table, string, error) {
	tbl, err := c.GetData(ctx, route, q)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		path = route.Slug() + ".csv"
	}
	if err := table.ExportCSV(tbl, path); err != nil {
		return nil, "", err
	}
	return tbl, path, nil
}

func (c *Client) fetchAll(ctx context.Context, route Route, q DataQuery) (*table.Table, int, error) {
	dataRoute := route.Child("data")
	size := q.effectivePageSize()
	offset := q.effectiveOffset()

	tbl := table.New()
	pages := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, pages, err
		}

		page, err := c.fetchPage(ctx, dataRoute, q, offset, size)
		if err != nil {
			return nil, pages, err
		}
		pages++

		for _, r := range page.rows {
			tbl.Append(r.cols, r.row)
		}

		c.log("%s: %d rows at offset %d (total %d)", dataRoute, len(page.rows), offset, page.total)
		for _, w := range page.warnings {
			c.log("%s: warning: %s", dataRoute, w.text())
		}

		// A short or empty page means the source is exhausted.
		if len(page.rows) == 0 || len(page.rows) < size {
			return tbl, pages, nil
		}
		offset += size
	}
}

type decodedRow struct {
	cols []string
	row  table.Row
}

type dataPage struct {
	rows     []decodedRow
	total    int64
	warnings []warning
}

// fetchPage performs one data call and decodes its rows, preserving each
// row's own key order. Numbers decode as json.Number so values survive
// serialization without rounding.
func (c *Client) fetchPage(ctx context.Context, dataRoute Route, q DataQuery, offset, length int) (*dataPage, error) {
	payload, err := c.call(ctx, dataRoute, q.params(offset, length))
	if err != nil {
		return nil, err
	}

	var body dataPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, &DecodeError{Route: dataRoute, Err: err}
	}

	page := &dataPage{total: int64(body.Total), warnings: body.Warnings}
	for _, raw := range body.Data {
		cols, err := orderedKeys(raw)
		if err != nil {
			return nil, &DecodeError{Route: dataRoute, Err: fmt.Errorf("row keys: %w", err)}
		}

		row := table.Row{}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&row); err != nil {
			return nil, &DecodeError{Route: dataRoute, Err: fmt.Errorf("row: %w", err)}
		}
		page.rows = append(page.rows, decodedRow{cols: cols, row: row})
	}
	return page, nil
}
