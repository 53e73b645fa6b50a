package graph_test

import (
	"fmt"

	"github.com/nfalab/machina/pkg/automaton"
	"github.com/nfalab/machina/pkg/graph"
)

func ExampleProject() {
	spec := automaton.Spec{
		Alphabet: []string{"a", "b"},
		States:   []string{"Q", "W"},
		Initial:  "Q",
		Finals:   []string{"W"},
		Transitions: automaton.TransitionMap{
			"Q": {"a": {"W"}, "b": {"W"}},
			"W": {"b": {"Q"}},
		},
	}

	g := graph.Project(spec)

	for _, n := range g.Nodes {
		fmt.Printf("node %s (%s)\n", n.ID, n.Style)
	}
	for _, e := range g.Edges {
		fmt.Printf("edge %s -> %s [%s]\n", e.From, e.To, e.Label)
	}
	// Output:
	// node Q (initial)
	// node W (final)
	// edge Q -> W [a, b]
	// edge W -> Q [b]
}

func ExampleProject_selfLoop() {
	spec := automaton.Spec{
		Alphabet: []string{"0", "1"},
		States:   []string{"even", "odd"},
		Initial:  "even",
		Finals:   []string{"even"},
		Transitions: automaton.TransitionMap{
			"even": {"0": {"even"}, "1": {"odd"}},
			"odd":  {"0": {"odd"}, "1": {"even"}},
		},
	}

	g := graph.Project(spec)

	for _, e := range g.Edges {
		if e.SelfLoop() {
			fmt.Printf("loop on %s [%s]\n", e.From, e.Label)
		}
	}
	// Output:
	// loop on even [0]
	// loop on odd [0]
}
