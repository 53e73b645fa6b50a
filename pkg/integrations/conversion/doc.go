// Package conversion provides an HTTP client for the automaton conversion
// service.
//
// # Overview
//
// This package submits automaton specifications to a remote converter and
// returns the results as domain types. Two operations are supported:
//
//   - [Client.ToDFA]: determinize an NFA into an equivalent DFA
//   - [Client.ToGrammar]: extract the equivalent regular grammar
//
// # Usage
//
//	client, err := conversion.NewClient("http://localhost:9000", conversion.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	dfa, err := client.ToDFA(ctx, spec)
//	g, err := client.ToGrammar(ctx, spec)
//
// [Client.Both] runs the two conversions concurrently with independent
// outcomes, which is what the interactive workbench uses.
//
// # Wire Schema
//
// Requests and DFA responses use the canonical automaton encoding
// (alphabet, states, initial, finals, transitionMap). Grammar responses
// are {"result": {state: [productions]}}, where the JSON object's key
// order defines the displayed production order and "&" denotes epsilon.
//
// # Failure Semantics
//
// Conversion failures carry the REMOTE_CONVERSION_FAILED code and wrap the
// underlying cause (network error, timeout, or the service's own message).
// The client never retries; callers resubmit when they want a fresh
// attempt. Submissions are raced by the workbench, so a stale response is
// discarded there rather than retried here.
package conversion
