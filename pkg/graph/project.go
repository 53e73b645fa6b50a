package graph

import (
	"github.com/nfalab/machina/pkg/automaton"
)

// Project maps an automaton specification onto a renderable directed graph.
//
// Every state becomes exactly one node, styled initial/final/both/ordinary.
// Every (state, symbol) → destination entry becomes one edge, and edges
// sharing a (from, to) pair merge into a single edge whose label
// concatenates the symbols with [LabelSeparator], preserving the order
// symbols were first seen. Self-loops are kept and flagged by
// [Edge.SelfLoop].
//
// Project is total for validated specs and deterministic: iteration follows
// the spec's state and alphabet order, so projecting the same spec twice
// yields structurally identical graphs.
func Project(spec automaton.Spec) Graph {
	g := Graph{
		Nodes: make([]Node, 0, len(spec.States)),
		Edges: make([]Edge, 0),
	}

	for _, st := range spec.States {
		g.Nodes = append(g.Nodes, Node{
			ID:    st,
			Label: st,
			Style: styleFor(st == spec.Initial, spec.IsFinal(st)),
		})
	}

	type pair struct{ from, to string }
	index := make(map[pair]int)
	seen := make(map[[3]string]struct{})

	for _, from := range spec.States {
		bySymbol := spec.Transitions[from]
		if len(bySymbol) == 0 {
			continue
		}
		for _, symbol := range spec.Alphabet {
			for _, to := range bySymbol[symbol] {
				triple := [3]string{from, symbol, to}
				if _, dup := seen[triple]; dup {
					continue
				}
				seen[triple] = struct{}{}

				k := pair{from, to}
				if i, ok := index[k]; ok {
					g.Edges[i].Label += LabelSeparator + symbol
					continue
				}
				index[k] = len(g.Edges)
				g.Edges = append(g.Edges, Edge{From: from, To: to, Label: symbol})
			}
		}
	}

	return g
}
