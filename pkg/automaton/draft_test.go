package automaton

import (
	"reflect"
	"testing"

	"github.com/nfalab/machina/pkg/errors"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "a", []string{"a"}},
		{"spaced", "a, b , c", []string{"a", "b", "c"}},
		{"tight", "a,b,c", []string{"a", "b", "c"}},
		{"trailing comma", "a,b,", []string{"a", "b"}},
		{"blank entries", "a,, ,b", []string{"a", "b"}},
		{"order preserved", "z, a, m", []string{"z", "a", "m"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitList(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDraftApply(t *testing.T) {
	base := Draft{Alphabet: "a", States: "q0", Initial: "q0"}

	edited := base.Apply(FieldAlphabet, "a, b")
	if edited.Alphabet != "a, b" {
		t.Errorf("Alphabet = %q, want %q", edited.Alphabet, "a, b")
	}
	if base.Alphabet != "a" {
		t.Errorf("Apply mutated the original draft: %q", base.Alphabet)
	}

	edited = edited.Apply(FieldTransitions, `{"q0":{"a":["q0"]}}`)
	if edited.Transitions == "" {
		t.Error("Transitions not applied")
	}

	// Unknown fields leave the draft untouched.
	same := edited.Apply(Field("bogus"), "zzz")
	if !reflect.DeepEqual(same, edited) {
		t.Errorf("Apply(bogus) changed the draft: %+v", same)
	}
}

func TestValidField(t *testing.T) {
	for _, f := range []Field{FieldAlphabet, FieldStates, FieldInitial, FieldFinals, FieldTransitions} {
		if !ValidField(f) {
			t.Errorf("ValidField(%q) = false, want true", f)
		}
	}
	if ValidField(Field("nope")) {
		t.Error(`ValidField("nope") = true, want false`)
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name     string
		draft    Draft
		wantCode errors.Code
		check    func(t *testing.T, s Spec)
	}{
		{
			name: "full machine",
			draft: Draft{
				Alphabet:    "a, b",
				States:      "Q, W",
				Initial:     "Q",
				Finals:      "W",
				Transitions: `{"Q":{"a":["W"]},"W":{"b":["Q"]}}`,
			},
			check: func(t *testing.T, s Spec) {
				if !reflect.DeepEqual(s.States, []string{"Q", "W"}) {
					t.Errorf("States = %v", s.States)
				}
				if got := s.Transitions.Destinations("Q", "a"); !reflect.DeepEqual(got, []string{"W"}) {
					t.Errorf("Destinations(Q, a) = %v, want [W]", got)
				}
			},
		},
		{
			name: "empty transition text means no transitions",
			draft: Draft{
				Alphabet: "a",
				States:   "q0",
				Initial:  "q0",
			},
			check: func(t *testing.T, s Spec) {
				if s.Transitions == nil || len(s.Transitions) != 0 {
					t.Errorf("Transitions = %v, want empty map", s.Transitions)
				}
			},
		},
		{
			name: "alphabet duplicates deduplicated in order",
			draft: Draft{
				Alphabet: "b, a, b",
				States:   "q0",
				Initial:  "q0",
			},
			check: func(t *testing.T, s Spec) {
				if want := []string{"b", "a"}; !reflect.DeepEqual(s.Alphabet, want) {
					t.Errorf("Alphabet = %v, want %v", s.Alphabet, want)
				}
			},
		},
		{
			name: "initial whitespace trimmed",
			draft: Draft{
				Alphabet: "a",
				States:   "q0",
				Initial:  "  q0  ",
			},
			check: func(t *testing.T, s Spec) {
				if s.Initial != "q0" {
					t.Errorf("Initial = %q, want q0", s.Initial)
				}
			},
		},
		{
			name: "malformed transition JSON",
			draft: Draft{
				Alphabet:    "a",
				States:      "q0",
				Initial:     "q0",
				Transitions: `{"q0": {`,
			},
			wantCode: errors.ErrCodeMalformedTransitionMap,
		},
		{
			name: "transition JSON of wrong shape",
			draft: Draft{
				Alphabet:    "a",
				States:      "q0",
				Initial:     "q0",
				Transitions: `["q0"]`,
			},
			wantCode: errors.ErrCodeMalformedTransitionMap,
		},
		{
			name: "validation failure propagates",
			draft: Draft{
				Alphabet: "a",
				States:   "q0",
				Initial:  "missing",
			},
			wantCode: errors.ErrCodeMissingInitialState,
		},
		{
			name: "dangling symbol rejected at the boundary",
			draft: Draft{
				Alphabet:    "a",
				States:      "q0",
				Initial:     "q0",
				Transitions: `{"q0":{"z":["q0"]}}`,
			},
			wantCode: errors.ErrCodeDanglingTransitionReference,
		},
		{
			name:     "states required",
			draft:    Draft{Alphabet: "a"},
			wantCode: errors.ErrCodeEmptyStates,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Compile(tt.draft)
			if tt.wantCode != "" {
				if err == nil {
					t.Fatalf("Compile() = nil error, want code %s", tt.wantCode)
				}
				if got := errors.GetCode(err); got != tt.wantCode {
					t.Errorf("Compile() code = %s, want %s", got, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			if tt.check != nil {
				tt.check(t, spec)
			}
		})
	}
}

func TestDraftOfRoundTrip(t *testing.T) {
	spec := twoState()

	draft := DraftOf(spec)
	back, err := Compile(draft)
	if err != nil {
		t.Fatalf("Compile(DraftOf(spec)) error = %v", err)
	}

	if !reflect.DeepEqual(back, spec.Normalize()) {
		t.Errorf("round trip drifted:\n got %+v\nwant %+v", back, spec.Normalize())
	}
}
