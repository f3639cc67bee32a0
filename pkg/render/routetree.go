package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/openeia/eiascout/pkg/eia"
)

// Options configures route tree rendering.
type Options struct {
	// Detailed annotates leaf labels with facet, frequency, and column
	// counts. When false, only the route segment is shown.
	Detailed bool
}

// ToDOT converts mapped route entries to Graphviz DOT format. Branch
// nodes are reconstructed from the leaf routes, so the entry slice from
// [eia.Client.MapTree] is all it needs. The resulting DOT string can be
// rendered with [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Branch nodes are drawn with dashed outlines and grey fill to
// distinguish them from dataset leaves.
func ToDOT(entries []eia.RouteEntry, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	nodes, edges, leaves := layoutTree(entries)
	byRoute := make(map[string]*eia.RouteEntry, len(entries))
	for i := range entries {
		byRoute[entries[i].Route.String()] = &entries[i]
	}

	for _, id := range nodes {
		label := fmtLabel(id, byRoute[id], opts.Detailed)
		attrs := fmtAttrs(label, leaves[id])
		fmt.Fprintf(&buf, "  %q [%s];\n", displayID(id), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", displayID(e[0]), displayID(e[1]))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// layoutTree derives the node and edge lists from the leaf entries. Nodes
// and edges keep first-seen order, which matches the traversal order the
// entries arrived in.
func layoutTree(entries []eia.RouteEntry) (nodes []string, edges [][2]string, leaves map[string]bool) {
	seen := map[string]bool{}
	leaves = map[string]bool{}

	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			nodes = append(nodes, id)
		}
	}
	add("")

	edgeSeen := map[[2]string]bool{}
	for _, entry := range entries {
		segs := entry.Route.Segments()
		parent := ""
		for i := range segs {
			id := strings.Join(segs[:i+1], "/")
			add(id)
			e := [2]string{parent, id}
			if !edgeSeen[e] {
				edgeSeen[e] = true
				edges = append(edges, e)
			}
			parent = id
		}
		leaves[entry.Route.String()] = true
	}
	return nodes, edges, leaves
}

func displayID(id string) string {
	if id == "" {
		return "/"
	}
	return id
}

func fmtLabel(id string, entry *eia.RouteEntry, detailed bool) string {
	if id == "" {
		return "api.eia.gov/v2"
	}
	segs := strings.Split(id, "/")
	label := segs[len(segs)-1]

	if !detailed || entry == nil {
		return label
	}
	parts := []string{
		fmt.Sprintf("facets: %d", len(entry.Facets)),
		fmt.Sprintf("freqs: %d", len(entry.Frequencies)),
		fmt.Sprintf("cols: %d", len(entry.Columns)),
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(label string, isLeaf bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if !isLeaf {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}
