package workbench

import (
	"time"

	"github.com/nfalab/machina/pkg/automaton"
	"github.com/nfalab/machina/pkg/grammar"
)

// Event is a state transition request. Every mutation of a workbench,
// whether a keystroke or a conversion result arriving off the wire, is
// expressed as an Event and applied by the single writer goroutine.
type Event interface {
	isEvent()
}

// EditField replaces the raw text of one draft field.
type EditField struct {
	Field automaton.Field
	Value string
}

// SetDraft replaces the entire draft, for loading a document or file into
// the editor.
type SetDraft struct {
	Draft automaton.Draft
}

// submissionStarted marks an operation as in flight under a fresh
// submission ID. Emitted by Submit before the remote call is launched.
type submissionStarted struct {
	Op Op
	ID uint64
}

// submissionFinished delivers the outcome of one remote conversion. Exactly
// one of DFA, Grammar, or Err is set. The reducer discards it when ID no
// longer matches the pending submission.
type submissionFinished struct {
	Op      Op
	ID      uint64
	DFA     *automaton.Spec
	Grammar *grammar.Result
	Err     error
	Elapsed time.Duration
}

func (EditField) isEvent()          {}
func (SetDraft) isEvent()           {}
func (submissionStarted) isEvent()  {}
func (submissionFinished) isEvent() {}
