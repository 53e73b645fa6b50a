package workbench

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nfalab/machina/pkg/automaton"
	"github.com/nfalab/machina/pkg/grammar"
	"github.com/nfalab/machina/pkg/observability"
)

// ErrClosed is returned when dispatching to a workbench after Close.
var ErrClosed = errors.New("workbench closed")

// Converter is the slice of the conversion service client the workbench
// needs. *conversion.Client satisfies it.
type Converter interface {
	ToDFA(ctx context.Context, spec automaton.Spec) (automaton.Spec, error)
	ToGrammar(ctx context.Context, spec automaton.Spec) (grammar.Result, error)
}

// Workbench owns the editing state of one automaton session.
//
// All mutation happens on a single writer goroutine consuming typed events;
// each applied event produces a fresh immutable State, so readers take
// snapshots without ever blocking the writer. Remote conversions run as
// independent goroutines whose completions come back as events tagged with
// the submission ID they belong to; a completion whose ID has been
// superseded is discarded, which is what makes racing resubmissions safe.
type Workbench struct {
	converter Converter

	events chan envelope
	done   chan struct{}
	stop   sync.Once

	state  atomic.Pointer[State]
	nextID atomic.Uint64

	dfa     *opLifecycle
	grammar *opLifecycle
}

type envelope struct {
	ev      Event
	applied chan struct{}
}

// New creates a workbench seeded with draft and starts its event loop.
// Pass automaton.Draft{} for an empty editor.
func New(converter Converter, draft automaton.Draft) *Workbench {
	w := &Workbench{
		converter: converter,
		events:    make(chan envelope),
		done:      make(chan struct{}),
		dfa:       newOpLifecycle(),
		grammar:   newOpLifecycle(),
	}
	initial := State{
		Draft:     draft,
		DFAOp:     OpState{Phase: PhaseIdle},
		GrammarOp: OpState{Phase: PhaseIdle},
	}
	w.state.Store(&initial)
	go w.loop()
	return w
}

// Snapshot returns the current state. The copy is immutable; it never
// changes under the caller, no matter what the writer does next.
func (w *Workbench) Snapshot() State {
	return *w.state.Load()
}

// Dispatch applies one event on the writer goroutine. It returns once the
// event has been applied, so a Snapshot taken afterwards reflects it.
// Returns ErrClosed after Close.
func (w *Workbench) Dispatch(ev Event) error {
	env := envelope{ev: ev, applied: make(chan struct{})}
	select {
	case w.events <- env:
	case <-w.done:
		return ErrClosed
	}
	select {
	case <-env.applied:
		return nil
	case <-w.done:
		return ErrClosed
	}
}

// Submit compiles the current draft and, when it is valid, launches the
// remote conversion for op. The returned ID identifies the submission in
// later snapshots. Compile failures are returned synchronously and nothing
// is submitted.
//
// ctx bounds the remote round-trip, so it must outlive the call that
// triggered the submission: pass a session or application context, not a
// per-request one.
func (w *Workbench) Submit(ctx context.Context, op Op) (uint64, error) {
	spec, err := w.Snapshot().Compile()
	if err != nil {
		return 0, err
	}

	id := w.nextID.Add(1)
	if err := w.Dispatch(submissionStarted{Op: op, ID: id}); err != nil {
		return 0, err
	}

	observability.Workbench().OnSubmitStart(ctx, string(op), id)
	go w.convert(ctx, op, id, spec)
	return id, nil
}

// Close stops the writer goroutine. In-flight conversions are abandoned;
// their completions are dropped. Close is idempotent.
func (w *Workbench) Close() error {
	w.stop.Do(func() { close(w.done) })
	return nil
}

func (w *Workbench) loop() {
	for {
		select {
		case env := <-w.events:
			w.apply(env.ev)
			close(env.applied)
		case <-w.done:
			return
		}
	}
}

// apply runs on the writer goroutine only.
func (w *Workbench) apply(ev Event) {
	cur := w.state.Load()
	next := reduce(*cur, ev)

	switch e := ev.(type) {
	case submissionStarted:
		// Always legal: submit is accepted from every phase.
		_ = w.lifecycle(e.Op).submit(context.Background())

	case submissionFinished:
		if next.Revision == cur.Revision {
			observability.Workbench().OnSubmitComplete(
				context.Background(), string(e.Op), e.ID, true, e.Elapsed, e.Err)
			return
		}
		_ = w.lifecycle(e.Op).finish(context.Background(), e.Err != nil)
		observability.Workbench().OnSubmitComplete(
			context.Background(), string(e.Op), e.ID, false, e.Elapsed, e.Err)
	}

	w.state.Store(&next)
}

func (w *Workbench) lifecycle(op Op) *opLifecycle {
	if op == OpGrammar {
		return w.grammar
	}
	return w.dfa
}

// convert performs one remote round-trip and reports the outcome back to
// the writer. Runs off the writer goroutine.
func (w *Workbench) convert(ctx context.Context, op Op, id uint64, spec automaton.Spec) {
	start := time.Now()
	fin := submissionFinished{Op: op, ID: id}

	switch op {
	case OpGrammar:
		result, err := w.converter.ToGrammar(ctx, spec)
		if err != nil {
			fin.Err = err
		} else {
			fin.Grammar = &result
		}
	default:
		result, err := w.converter.ToDFA(ctx, spec)
		if err != nil {
			fin.Err = err
		} else {
			fin.DFA = &result
		}
	}

	fin.Elapsed = time.Since(start)
	// ErrClosed means the workbench is gone and the result has no audience.
	_ = w.Dispatch(fin)
}
