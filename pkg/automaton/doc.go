// Package automaton provides the in-memory representation of a finite
// automaton specification and owns its structural validation.
//
// # Overview
//
// Machina edits, visualizes, and remotely converts finite automata. This
// package provides the core data structure shared by every surface: an
// ordered alphabet, an ordered sequence of states, a single initial state,
// a set of final states, and a transition map from (state, symbol) pairs to
// zero or more destination states. A DFA has at most one destination per
// pair; an NFA may have any number.
//
// # Specs and Drafts
//
// [Spec] is the validated, structured form. It is treated as a value: edits
// never mutate a Spec in place, they produce a fresh one. [Draft] is the raw
// editor form, holding exactly what the user typed (comma-separated lists
// and transition-map JSON text). Drafts accept any content; nothing is
// parsed or checked while editing.
//
// The two meet at [Compile], the single submission-time boundary: it parses
// the draft's transition text, normalizes the result (alphabet
// deduplication, whitespace trimming), and validates every structural
// invariant. Rendering and conversion paths only ever see Specs that passed
// through this boundary, so a malformed transition map is a typed validation
// failure, never a crash in a display path.
//
// # Validation
//
// [Validate] checks the invariants in order and reports the first failure
// using the structured codes from [github.com/nfalab/machina/pkg/errors]:
//
//   - EMPTY_STATES: no states declared
//   - DUPLICATE_STATE: a state identifier declared twice
//   - MISSING_INITIAL_STATE: the initial state is not a member of the states
//   - UNKNOWN_FINAL_STATE: a final state is not a member of the states
//   - DANGLING_TRANSITION_REFERENCE: the transition map references an
//     undeclared state or symbol
//
// MALFORMED_TRANSITION_MAP is produced by [Compile] when the raw text fails
// to parse; Validate itself only sees structured data.
//
// # File Formats
//
// [ReadFile] and [WriteFile] load and store specs as JSON (the same shape
// the conversion service speaks: alphabet/states/initial/finals/
// transitionMap) or TOML, selected by file extension.
package automaton
