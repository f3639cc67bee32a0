// Package render draws mapped route trees as node-link diagrams.
//
// # Overview
//
// This package turns the route entries produced by a tree mapping into
// visual outputs:
//
//   - Graphviz DOT source ([ToDOT])
//   - SVG via in-process Graphviz ([RenderSVG])
//   - PDF and PNG via rsvg-convert ([RenderPDF], [RenderPNG])
//
// # Usage
//
// Convert mapped entries to DOT, then render:
//
//	dot := render.ToDOT(entries, render.Options{})
//	svg, err := render.RenderSVG(dot)
//	png, err := render.RenderPNG(dot, 2.0)  // 2x scale
//
// # Dependencies
//
// SVG rendering uses [github.com/goccy/go-graphviz], which runs Graphviz
// in-process without cgo. PDF and PNG conversion shell out to
// rsvg-convert and require librsvg.
package render
