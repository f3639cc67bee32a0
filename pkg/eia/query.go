package eia

import (
	"fmt"
	"net/url"
	"strconv"
)

// MaxPageSize is the API's hard per-request row cap.
const MaxPageSize = 5000

// SortDirection orders data results.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// DataQuery filters and pages a dataset retrieval. The zero value asks
// for every row with the API's default columns and ordering.
type DataQuery struct {
	// Columns selects the value columns to return (data[] parameters).
	Columns []string

	// Facets restricts rows by facet id (facets[id][] parameters).
	Facets map[string][]string

	// Frequencies restricts the reporting cadence.
	Frequencies []string

	// Start and End bound the period window, inclusive, in the dataset's
	// own period syntax (for example "2020-01"). Empty means unbounded.
	Start, End string

	// SortColumn orders rows; empty keeps the API's default order.
	SortColumn string

	// SortDirection applies to SortColumn; empty means ascending.
	SortDirection SortDirection

	// Offset is the starting row, default 0.
	Offset int

	// PageSize caps rows per request. Values outside (0, MaxPageSize]
	// become MaxPageSize.
	PageSize int
}

// params encodes the full filter set plus paging for one page request.
func (q DataQuery) params(offset, length int) url.Values {
	v := url.Values{}
	for _, col := range q.Columns {
		v.Add("data[]", col)
	}
	for facet, vals := range q.Facets {
		key := fmt.Sprintf("facets[%s][]", facet)
		for _, val := range vals {
			v.Add(key, val)
		}
	}
	for _, f := range q.Frequencies {
		v.Add("frequency", f)
	}
	if q.Start != "" {
		v.Set("start", q.Start)
	}
	if q.End != "" {
		v.Set("end", q.End)
	}
	if q.SortColumn != "" {
		dir := q.SortDirection
		if dir == "" {
			dir = SortAsc
		}
		v.Set("sort[0][column]", q.SortColumn)
		v.Set("sort[0][direction]", string(dir))
	}
	v.Set("offset", strconv.Itoa(offset))
	v.Set("length", strconv.Itoa(length))
	return v
}

func (q DataQuery) effectivePageSize() int {
	if q.PageSize <= 0 || q.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return q.PageSize
}

func (q DataQuery) effectiveOffset() int {
	if q.Offset < 0 {
		return 0
	}
	return q.Offset
}
