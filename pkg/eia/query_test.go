package eia

import (
	"reflect"
	"testing"
)

func TestDataQueryParams(t *testing.T) {
	q := DataQuery{
		Columns:       []string{"revenue", "sales"},
		Facets:        map[string][]string{"stateid": {"MA", "VT"}, "sectorid": {"RES"}},
		Frequencies:   []string{"monthly"},
		Start:         "2020-01",
		End:           "2024-12",
		SortColumn:    "period",
		SortDirection: SortDesc,
	}

	v := q.params(0, 5000)

	if got := v["data[]"]; !reflect.DeepEqual(got, []string{"revenue", "sales"}) {
		t.Errorf("data[] = %v", got)
	}
	if got := v["facets[stateid][]"]; !reflect.DeepEqual(got, []string{"MA", "VT"}) {
		t.Errorf("facets[stateid][] = %v", got)
	}
	if got := v["facets[sectorid][]"]; !reflect.DeepEqual(got, []string{"RES"}) {
		t.Errorf("facets[sectorid][] = %v", got)
	}
	if got := v["frequency"]; !reflect.DeepEqual(got, []string{"monthly"}) {
		t.Errorf("frequency = %v", got)
	}
	if got := v.Get("start"); got != "2020-01" {
		t.Errorf("start = %q", got)
	}
	if got := v.Get("end"); got != "2024-12" {
		t.Errorf("end = %q", got)
	}
	if got := v.Get("sort[0][column]"); got != "period" {
		t.Errorf("sort[0][column] = %q", got)
	}
	if got := v.Get("sort[0][direction]"); got != "desc" {
		t.Errorf("sort[0][direction] = %q", got)
	}
	if got := v.Get("offset"); got != "0" {
		t.Errorf("offset = %q", got)
	}
	if got := v.Get("length"); got != "5000" {
		t.Errorf("length = %q", got)
	}
}

func TestDataQueryParamsOmissions(t *testing.T) {
	v := DataQuery{}.params(100, 200)

	// Only paging appears for a zero query.
	if len(v) != 2 {
		t.Errorf("zero query should encode paging only, got %v", v)
	}
	if got := v.Get("offset"); got != "100" {
		t.Errorf("offset = %q", got)
	}
	if got := v.Get("length"); got != "200" {
		t.Errorf("length = %q", got)
	}

	// Sort direction defaults to ascending once a column is set.
	v = DataQuery{SortColumn: "period"}.params(0, 10)
	if got := v.Get("sort[0][direction]"); got != "asc" {
		t.Errorf("default sort direction = %q, want asc", got)
	}

	// No sort params without a sort column.
	v = DataQuery{SortDirection: SortDesc}.params(0, 10)
	if v.Has("sort[0][column]") || v.Has("sort[0][direction]") {
		t.Errorf("sort params should be omitted without a column, got %v", v)
	}
}

func TestEffectivePageSize(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{0, MaxPageSize},
		{-5, MaxPageSize},
		{200, 200},
		{MaxPageSize, MaxPageSize},
		{MaxPageSize + 1, MaxPageSize},
		{99999, MaxPageSize},
	}
	for _, tt := range tests {
		q := DataQuery{PageSize: tt.size}
		if got := q.effectivePageSize(); got != tt.want {
			t.Errorf("effectivePageSize(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestEffectiveOffset(t *testing.T) {
	if got := (DataQuery{Offset: -1}).effectiveOffset(); got != 0 {
		t.Errorf("effectiveOffset(-1) = %d, want 0", got)
	}
	if got := (DataQuery{Offset: 7}).effectiveOffset(); got != 7 {
		t.Errorf("effectiveOffset(7) = %d, want 7", got)
	}
}
