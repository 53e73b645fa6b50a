package graph

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Node style hints. The widget maps these onto its own visual vocabulary
// (arrow marker for initial, double border for final).
const (
	StyleOrdinary     = "ordinary"
	StyleInitial      = "initial"
	StyleFinal        = "final"
	StyleInitialFinal = "initial-final"
)

// LabelSeparator joins the symbols of merged parallel edges.
const LabelSeparator = ", "

// =============================================================================
// Graph - Projection Serialization
// =============================================================================

// Graph is the canonical serialization of a projected automaton.
// Used for API responses, storage, caching, and as renderer input.
//
// The structure is derived data: it is recomputed from a specification on
// every visualization request and carries no identity of its own.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// NodeCount returns the number of nodes.
func (g Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges after merging.
func (g Graph) EdgeCount() int { return len(g.Edges) }

// =============================================================================
// Node
// =============================================================================

// Node is one automaton state, styled for display.
type Node struct {
	ID    string `json:"id" bson:"id"`
	Label string `json:"label,omitempty" bson:"label,omitempty"` // Display label (defaults to ID)
	Style string `json:"style,omitempty" bson:"style,omitempty"` // One of the Style* constants
}

// IsInitial returns true if the node is styled as an initial state.
func (n *Node) IsInitial() bool {
	return n.Style == StyleInitial || n.Style == StyleInitialFinal
}

// IsFinal returns true if the node is styled as a final state.
func (n *Node) IsFinal() bool {
	return n.Style == StyleFinal || n.Style == StyleInitialFinal
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// styleFor maps the two state roles onto a single style hint.
func styleFor(initial, final bool) string {
	switch {
	case initial && final:
		return StyleInitialFinal
	case initial:
		return StyleInitial
	case final:
		return StyleFinal
	default:
		return StyleOrdinary
	}
}

// =============================================================================
// Edge
// =============================================================================

// Edge is a directed transition edge. Parallel transitions between the same
// pair of states are merged into a single edge whose label lists every
// symbol, joined by [LabelSeparator] in first-seen order.
type Edge struct {
	From  string `json:"from" bson:"from"`
	To    string `json:"to" bson:"to"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
}

// SelfLoop returns true if the edge starts and ends on the same state.
// Renderers draw these bent away from the node.
func (e *Edge) SelfLoop() bool { return e.From == e.To }
