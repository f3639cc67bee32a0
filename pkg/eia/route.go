package eia

import (
	"fmt"
	"slices"
	"strings"
)

// Route identifies a node in the API's dataset tree as an ordered list of
// path segments. The zero value addresses the tree root.
//
// Routes are immutable: Child returns a new value and Segments returns a
// copy, so routes can be shared freely across goroutines.
type Route struct {
	segments []string
}

// ParseRoute builds a Route from a slash-separated path such as
// "electricity/retail-sales". Leading, trailing, and repeated slashes are
// ignored, so "/electricity/" parses the same as "electricity". An empty
// path yields the root route.
func ParseRoute(path string) Route {
	parts := strings.Split(path, "/")
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segs = append(segs, p)
		}
	}
	if len(segs) == 0 {
		return Route{}
	}
	return Route{segments: segs}
}

// NewRoute builds a Route from explicit segments. Segments must be
// non-empty and must not contain the path separator.
func NewRoute(segments ...string) (Route, error) {
	for _, s := range segments {
		if s == "" {
			return Route{}, fmt.Errorf("eia: empty route segment")
		}
		if strings.Contains(s, "/") {
			return Route{}, fmt.Errorf("eia: route segment %q contains a separator", s)
		}
	}
	segs := make([]string, len(segments))
	copy(segs, segments)
	return Route{segments: segs}, nil
}

// String joins the segments with slashes. The root route renders as "".
func (r Route) String() string {
	return strings.Join(r.segments, "/")
}

// IsRoot reports whether the route addresses the tree root.
func (r Route) IsRoot() bool {
	return len(r.segments) == 0
}

// Depth returns the number of segments.
func (r Route) Depth() int {
	return len(r.segments)
}

// Segments returns a copy of the path segments.
func (r Route) Segments() []string {
	out := make([]string, len(r.segments))
	copy(out, r.segments)
	return out
}

// Child returns the route one level below r at the given segment.
func (r Route) Child(segment string) Route {
	segs := make([]string, len(r.segments)+1)
	copy(segs, r.segments)
	segs[len(r.segments)] = segment
	return Route{segments: segs}
}

// Parent returns the route one level up. The root is its own parent.
func (r Route) Parent() Route {
	if len(r.segments) == 0 {
		return Route{}
	}
	return Route{segments: slices.Clone(r.segments[:len(r.segments)-1])}
}

// Equal reports whether two routes address the same node.
func (r Route) Equal(other Route) bool {
	return slices.Equal(r.segments, other.segments)
}

// Slug joins the segments with hyphens for use in file names, for example
// "electricity-retail-sales". The root route slugs as "root".
func (r Route) Slug() string {
	if r.IsRoot() {
		return "root"
	}
	return strings.Join(r.segments, "-")
}

// displayRoute renders a route for log lines, showing the root as "/".
func displayRoute(r Route) string {
	if r.IsRoot() {
		return "/"
	}
	return r.String()
}
