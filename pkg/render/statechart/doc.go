// Package statechart renders automaton graphs as state diagrams.
//
// # Overview
//
// This package produces the classic state diagram picture for a projected
// automaton graph: circles for states, double circles for final states, an
// arrow from an invisible marker into the initial state, and labelled arrows
// for transitions. Layout is delegated to Graphviz.
//
// # Usage
//
// Project an automaton to a graph, convert it to DOT, then render:
//
//	g := graph.Project(spec)
//	dot := statechart.ToDOT(g, statechart.Options{})
//	svg, err := statechart.RenderSVG(dot)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG] or [RenderPNG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// The generated DOT uses left-to-right layout (rankdir=LR), which reads
// naturally for automata whose runs proceed from the initial state.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and
// PNG rendering. No external Graphviz installation is required.
package statechart
