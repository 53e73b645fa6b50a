// Package pkg provides the core libraries for the Machina automaton workbench.
//
// # Overview
//
// Machina edits, validates, and visualizes finite automata (DFA/NFA) and
// talks to a remote conversion service for determinization and regular
// grammar extraction. The pkg directory is organized into five main areas:
//
//  1. [automaton] - The specification model (parsing, normalization, validation)
//  2. [graph] - Projection of a specification onto a renderable directed graph
//  3. [grammar] - Right-linear grammar results and rule rendering
//  4. [workbench] - The single-writer editing state container
//  5. [pipeline] - Orchestration (compile → project → render)
//
// # Architecture
//
// The typical data flow through Machina:
//
//	Editor text / automaton file
//	         ↓
//	    [automaton] package (compile: parse + normalize + validate)
//	         ↓
//	    [graph] package (project: states → nodes, transitions → merged edges)
//	         ↓
//	    [render/statechart] package (DOT emission + Graphviz rasterization)
//	         ↓
//	    DOT/SVG/PNG/JSON output
//
// Conversions take a different path: the validated specification is POSTed to
// the remote service via [integrations/conversion] and the response flows
// back into the workbench as a fresh result slice.
//
// # Quick Start
//
// Compile an automaton draft and render it:
//
//	import (
//	    "context"
//	    "github.com/nfalab/machina/pkg/automaton"
//	    "github.com/nfalab/machina/pkg/cache"
//	    "github.com/nfalab/machina/pkg/pipeline"
//	)
//
//	// 1. Compile the raw editor text
//	spec, _ := automaton.Compile(automaton.Draft{
//	    Alphabet:    "a, b",
//	    States:      "Q, W",
//	    Initial:     "Q",
//	    Finals:      "W",
//	    Transitions: `{"Q": {"a": ["W"]}, "W": {"b": ["Q"]}}`,
//	})
//
//	// 2. Run the pipeline
//	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, nil)
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Spec:    &spec,
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// # Main Packages
//
// ## Core Domain Logic
//
// [automaton] - The automaton specification: ordered alphabet and states, one
// initial state, a set of finals, and a state → symbol → destinations
// transition map. Owns the parse boundary ([automaton.Compile]), structural
// validation, and the JSON/TOML file codecs.
//
// [graph] - Pure projection of a specification onto {nodes, edges} with
// style hints (initial, final, both) and merged parallel-edge labels, plus
// the layout configuration object handed to graph widgets.
//
// [grammar] - Right-linear grammar results with an order-preserving JSON
// codec and the flattened LHS -> RHS rule rendering.
//
// ## State Management
//
// [workbench] - The editing state container: typed events, a pure reducer
// over immutable snapshots, and monotonic submission identifiers that make
// racing conversion round-trips harmless.
//
// [session] - TTL-leased live sessions tying a UUID to one running workbench
// for the HTTP API.
//
// ## Infrastructure
//
// [cache] - Cache interface with file, memory, Redis, and null backends, and
// the content-addressed key scheme used by the pipeline.
//
// [store] - Durable automaton documents behind one interface, with memory and
// MongoDB backends.
//
// [errors] - Structured error codes shared by every surface, so the CLI,
// the editor, and the HTTP API classify failures the same way.
//
// [observability] - Hook interfaces with no-op defaults, registered at
// startup so libraries never import an observability backend.
//
// ## External Integrations
//
// [integrations] - The base JSON-over-HTTP client (single attempt, status
// mapping, error body extraction).
//
// [integrations/conversion] - The typed conversion service client: ToDFA,
// ToGrammar, and the concurrent Both whose halves fail independently.
//
// ## Visualization
//
// [render/statechart] - State diagram rendering: DOT emission following
// textbook conventions (double circles for finals, an inbound marker for the
// initial state) and SVG/PNG rasterization through Graphviz.
//
// ## Orchestration
//
// [pipeline] - The complete compile → project → render pipeline used by the
// CLI, the HTTP API, and the editor. Ensures consistent behavior across all
// entry points.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/automaton/...   # Specific package
//	go test -run Example          # Examples only
//
// [automaton]: https://pkg.go.dev/github.com/nfalab/machina/pkg/automaton
// [graph]: https://pkg.go.dev/github.com/nfalab/machina/pkg/graph
// [grammar]: https://pkg.go.dev/github.com/nfalab/machina/pkg/grammar
// [workbench]: https://pkg.go.dev/github.com/nfalab/machina/pkg/workbench
// [session]: https://pkg.go.dev/github.com/nfalab/machina/pkg/session
// [cache]: https://pkg.go.dev/github.com/nfalab/machina/pkg/cache
// [store]: https://pkg.go.dev/github.com/nfalab/machina/pkg/store
// [errors]: https://pkg.go.dev/github.com/nfalab/machina/pkg/errors
// [observability]: https://pkg.go.dev/github.com/nfalab/machina/pkg/observability
// [integrations]: https://pkg.go.dev/github.com/nfalab/machina/pkg/integrations
// [integrations/conversion]: https://pkg.go.dev/github.com/nfalab/machina/pkg/integrations/conversion
// [render/statechart]: https://pkg.go.dev/github.com/nfalab/machina/pkg/render/statechart
// [pipeline]: https://pkg.go.dev/github.com/nfalab/machina/pkg/pipeline
package pkg
