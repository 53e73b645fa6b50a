package workbench

import (
	"context"
	"errors"

	"github.com/looplab/fsm"
)

// Lifecycle events. submit is legal from every phase so a user can resubmit
// while a previous round-trip is still in flight; succeed and fail are legal
// only while submitting.
const (
	eventSubmit  = "submit"
	eventSucceed = "succeed"
	eventFail    = "fail"
)

// opLifecycle guards the per-operation submission state machine. Every
// phase change the writer applies passes through it first, so a completion
// that arrives with nothing in flight is rejected before it can touch the
// snapshot.
type opLifecycle struct {
	machine *fsm.FSM
}

func newOpLifecycle() *opLifecycle {
	return &opLifecycle{
		machine: fsm.NewFSM(
			string(PhaseIdle),
			fsm.Events([]fsm.EventDesc{
				{
					Name: eventSubmit,
					Src: []string{
						string(PhaseIdle),
						string(PhaseSubmitting),
						string(PhaseSucceeded),
						string(PhaseFailed),
					},
					Dst: string(PhaseSubmitting),
				},
				{Name: eventSucceed, Src: []string{string(PhaseSubmitting)}, Dst: string(PhaseSucceeded)},
				{Name: eventFail, Src: []string{string(PhaseSubmitting)}, Dst: string(PhaseFailed)},
			}),
			fsm.Callbacks{},
		),
	}
}

func (l *opLifecycle) submit(ctx context.Context) error {
	return allowNoTransition(l.machine.Event(ctx, eventSubmit))
}

func (l *opLifecycle) finish(ctx context.Context, failed bool) error {
	name := eventSucceed
	if failed {
		name = eventFail
	}
	return allowNoTransition(l.machine.Event(ctx, name))
}

func (l *opLifecycle) current() Phase {
	return Phase(l.machine.Current())
}

// allowNoTransition treats a self-transition as success. Resubmitting while
// already submitting keeps the machine in the same state, which looplab/fsm
// reports as NoTransitionError rather than silence.
func allowNoTransition(err error) error {
	var noop fsm.NoTransitionError
	if errors.As(err, &noop) {
		return nil
	}
	return err
}
