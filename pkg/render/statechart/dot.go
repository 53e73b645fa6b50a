package statechart

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/nfalab/machina/pkg/graph"
)

// Options configures state diagram rendering.
type Options struct {
	// Title is drawn above the diagram when non-empty.
	Title string
}

// ToDOT converts a projected automaton graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// The diagram follows the usual textbook conventions for state diagrams:
// final states are drawn with a double circle, and the initial state is
// marked by an inbound arrow from an invisible point node.
func ToDOT(g graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Automaton {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", opts.Title)
		buf.WriteString("  labelloc=t;\n")
	}
	buf.WriteString("  node [shape=circle, fontsize=14, margin=\"0.1,0.05\"];\n")
	buf.WriteString("  edge [fontsize=12];\n")
	buf.WriteString("\n")

	marker := markerID(g)
	fmt.Fprintf(&buf, "  %q [shape=point, style=invis];\n", marker)
	for _, n := range g.Nodes {
		attrs := fmtAttrs(n)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, n := range g.Nodes {
		if n.IsInitial() {
			fmt.Fprintf(&buf, "  %q -> %q;\n", marker, n.ID)
		}
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From, e.To, e.Label)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n graph.Node) []string {
	attrs := []string{fmt.Sprintf("label=%q", n.DisplayLabel())}
	if n.IsFinal() {
		attrs = append(attrs, "shape=doublecircle")
	}
	return attrs
}

// markerID picks an ID for the invisible start marker that cannot collide
// with a state ID.
func markerID(g graph.Graph) string {
	id := "__start__"
	for hasNode(g, id) {
		id += "_"
	}
	return id
}

func hasNode(g graph.Graph, id string) bool {
	for _, n := range g.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}
