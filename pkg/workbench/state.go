package workbench

import (
	"github.com/nfalab/machina/pkg/automaton"
	"github.com/nfalab/machina/pkg/errors"
	"github.com/nfalab/machina/pkg/grammar"
	"github.com/nfalab/machina/pkg/graph"
)

// Op identifies one conversion operation. The two operations share a
// lifecycle shape but their submissions, results, and failures are fully
// independent.
type Op string

// Conversion operations.
const (
	OpDFA     Op = "dfa"
	OpGrammar Op = "grammar"
)

// ValidOp reports whether op names a conversion operation.
func ValidOp(op Op) bool {
	return op == OpDFA || op == OpGrammar
}

// Phase is the observable lifecycle phase of one operation. Succeeded and
// Failed are quiescent like Idle: a new submission is accepted from any of
// the three, so the last outcome stays visible until it is superseded.
type Phase string

// Operation phases.
const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// OpState is the lifecycle slice of one operation within a snapshot.
type OpState struct {
	Phase Phase `json:"phase"`

	// Pending is the ID of the in-flight submission, zero when none.
	Pending uint64 `json:"pending,omitempty"`

	// Error is the display message of the last failure. Cleared by the
	// next success.
	Error string `json:"error,omitempty"`
}

// Busy reports whether a submission is in flight.
func (o OpState) Busy() bool { return o.Phase == PhaseSubmitting }

// State is one immutable snapshot of a workbench. Every applied event
// produces a new State with a higher Revision; an event that changes
// nothing (a stale completion) leaves the revision alone. Result pointers
// are shared between snapshots and must be treated as read-only.
type State struct {
	Draft    automaton.Draft `json:"draft"`
	Revision uint64          `json:"revision"`

	DFAOp     OpState `json:"dfaOp"`
	GrammarOp OpState `json:"grammarOp"`

	// DFA is the result of the last successful DFA conversion, nil before
	// the first success. A failed submission never clears it.
	DFA *automaton.Spec `json:"dfa,omitempty"`

	// Grammar is the result of the last successful grammar conversion.
	Grammar *grammar.Result `json:"grammar,omitempty"`
}

// Compile parses and validates the current draft.
func (s State) Compile() (automaton.Spec, error) {
	return automaton.Compile(s.Draft)
}

// Visualize compiles the current draft and projects it into a renderable
// graph. The error reports why the draft cannot be drawn.
func (s State) Visualize() (graph.Graph, error) {
	spec, err := s.Compile()
	if err != nil {
		return graph.Graph{}, err
	}
	return graph.Project(spec), nil
}

func (s *State) opState(op Op) *OpState {
	if op == OpGrammar {
		return &s.GrammarOp
	}
	return &s.DFAOp
}

// reduce applies one event to a snapshot and returns the next snapshot. It
// is a pure function: no I/O, no clocks, no mutation of its input. Stale
// completions return the input unchanged, revision included.
func reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case EditField:
		s.Draft = s.Draft.Apply(ev.Field, ev.Value)

	case SetDraft:
		s.Draft = ev.Draft

	case submissionStarted:
		op := s.opState(ev.Op)
		op.Phase = PhaseSubmitting
		// Dispatch order can lag ID assignment when submissions race, so
		// the newest submission is the one with the highest ID, not the
		// last started event to arrive.
		if ev.ID > op.Pending {
			op.Pending = ev.ID
		}

	case submissionFinished:
		op := s.opState(ev.Op)
		if ev.ID != op.Pending {
			return s
		}
		op.Pending = 0
		if ev.Err != nil {
			op.Phase = PhaseFailed
			op.Error = errors.UserMessage(ev.Err)
			break
		}
		op.Phase = PhaseSucceeded
		op.Error = ""
		switch ev.Op {
		case OpDFA:
			s.DFA = ev.DFA
		case OpGrammar:
			s.Grammar = ev.Grammar
		}
	}

	s.Revision++
	return s
}
