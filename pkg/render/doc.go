// Package render groups the visualization renderers.
//
// # Overview
//
// Rendering in Machina turns a projected automaton graph into an artifact a
// human can look at. The work lives in subpackages, one per output style:
//
//   - [statechart]: classic state diagrams (DOT source, SVG, PNG) via
//     Graphviz
//
// # Usage
//
// Renderers consume the {nodes, edges} projection from
// [github.com/nfalab/machina/pkg/graph] and never touch the automaton
// model directly, so a renderer cannot observe an unvalidated
// specification:
//
//	g := graph.Project(spec)
//	dot := statechart.ToDOT(g, statechart.Options{})
//	svg, err := statechart.RenderSVG(dot)
//
// Callers wanting caching, timings, and multiple formats in one call should
// go through [github.com/nfalab/machina/pkg/pipeline] instead of invoking a
// renderer directly.
//
// [statechart]: github.com/nfalab/machina/pkg/render/statechart
package render
