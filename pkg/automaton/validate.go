package automaton

import (
	"github.com/nfalab/machina/pkg/errors"
)

// Validate checks every structural invariant of the spec and returns the
// first failure as a structured error. It operates on parsed data only;
// turning raw editor text into a Spec is [Compile]'s job.
//
// Checks run in declaration order: states, alphabet, initial, finals,
// transitions. A nil error means the spec is safe to project and submit.
func Validate(s Spec) error {
	if len(s.States) == 0 {
		return errors.New(errors.ErrCodeEmptyStates, "at least one state is required")
	}

	seen := make(map[string]struct{}, len(s.States))
	for _, st := range s.States {
		if err := errors.ValidateStateID(st); err != nil {
			return err
		}
		if _, dup := seen[st]; dup {
			return errors.New(errors.ErrCodeDuplicateState, "state %q is declared more than once", st)
		}
		seen[st] = struct{}{}
	}

	for _, sym := range s.Alphabet {
		if err := errors.ValidateSymbol(sym); err != nil {
			return err
		}
	}

	if _, ok := seen[s.Initial]; !ok {
		return errors.New(errors.ErrCodeMissingInitialState, "initial state %q is not a declared state", s.Initial)
	}

	for _, f := range s.Finals {
		if _, ok := seen[f]; !ok {
			return errors.New(errors.ErrCodeUnknownFinalState, "final state %q is not a declared state", f)
		}
	}

	return validateTransitions(s, seen)
}

// validateTransitions rejects transition entries that reference undeclared
// states or symbols. Passing such a spec through to the conversion service
// would only defer the failure to a collaborator we do not control, so it is
// caught here.
func validateTransitions(s Spec, states map[string]struct{}) error {
	symbols := make(map[string]struct{}, len(s.Alphabet))
	for _, sym := range s.Alphabet {
		symbols[sym] = struct{}{}
	}

	for from, bySymbol := range s.Transitions {
		if _, ok := states[from]; !ok {
			return errors.New(errors.ErrCodeDanglingTransitionReference,
				"transition source %q is not a declared state", from)
		}
		for symbol, dests := range bySymbol {
			if _, ok := symbols[symbol]; !ok {
				return errors.New(errors.ErrCodeDanglingTransitionReference,
					"transition symbol %q on state %q is not in the alphabet", symbol, from)
			}
			for _, to := range dests {
				if _, ok := states[to]; !ok {
					return errors.New(errors.ErrCodeDanglingTransitionReference,
						"transition %q --%s--> %q targets an undeclared state", from, symbol, to)
				}
			}
		}
	}
	return nil
}
