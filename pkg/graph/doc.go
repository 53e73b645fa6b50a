// Package graph projects automaton specifications onto renderable directed
// graphs.
//
// # Overview
//
// The projection is the bridge between the structured model in
// [github.com/nfalab/machina/pkg/automaton] and everything that draws:
// the DOT/SVG renderer, the HTTP graph endpoint, and the external
// visualization widget. [Project] emits one node per state (with a style
// hint distinguishing initial, final, and initial+final states) and one
// directed edge per (from, to) pair, merging parallel transitions into a
// single edge whose label lists the symbols in first-seen order.
//
// The result is derived data. It has no identity, is never edited, and is
// recomputed from the specification on every visualization request, so two
// projections of the same spec are structurally identical.
//
// # Widget Configuration
//
// [WidgetOptions] is the layout/physics configuration object the external
// graph widget consumes next to {nodes, edges}. The widget owns rendering
// and physics; this package only ships plain configuration data, including
// the self-loop bend that keeps loop edges clear of their node.
package graph
