// Package workbench implements the stateful editing session behind the
// interactive editor and the session HTTP API.
//
// # Overview
//
// A Workbench holds one automaton draft plus the results of its remote
// conversions. Internally it is a small actor: a single writer goroutine
// consumes typed events (edits, submission starts, submission completions)
// and folds each one through a pure reducer into a fresh immutable State.
// Readers call Snapshot at any time without blocking the writer.
//
// # Submissions
//
// Submit compiles the draft, assigns a monotonically increasing submission
// ID, and launches the remote conversion on its own goroutine. The outcome
// returns to the writer as an event carrying that ID. If a newer submission
// for the same operation started in the meantime, the older completion is
// stale and is discarded without touching the state, so the user is free to
// resubmit while a round-trip is still in flight.
//
// The DFA and grammar operations are fully independent: one can fail while
// the other succeeds, and a failure never clears the previous result of
// either operation.
//
// # Usage
//
//	wb := workbench.New(client, automaton.Draft{})
//	defer wb.Close()
//
//	_ = wb.Dispatch(workbench.EditField{Field: automaton.FieldStates, Value: "q0, q1"})
//
//	id, err := wb.Submit(ctx, workbench.OpDFA)
//	if err != nil {
//		// the draft did not compile; nothing was submitted
//	}
//
//	snap := wb.Snapshot()
//	if snap.DFAOp.Busy() {
//		// submission id is still in flight
//	}
package workbench
